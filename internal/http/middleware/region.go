package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/catalog"
	"github.com/LeroySteding/medusajs-yn-railway/internal/shared/apperr"
)

const (
	ParamCountryCode  = "countryCode"
	CtxKeyCountryCode = "country_code"
	CtxKeyRegion      = "region"
)

type RegionResolver interface {
	GetRegion(ctx context.Context, countryCode string) (*medusa.Region, error)
}

// Region resolves the :countryCode path segment to its backend region.
// Unknown countries render the not-found page.
func Region(resolver RegionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		cc := strings.ToLower(c.Param(ParamCountryCode))
		region, err := resolver.GetRegion(c.Request.Context(), cc)
		if errors.Is(err, catalog.ErrRegionNotFound) {
			Fail(c, apperr.NotFoundErr("Page not found"))
			return
		}
		if err != nil {
			Fail(c, apperr.UnavailableErr("The shop is temporarily unavailable.", err))
			return
		}
		c.Set(CtxKeyCountryCode, cc)
		c.Set(CtxKeyRegion, region)
		c.Next()
	}
}

func GetCountryCode(c *gin.Context) string { return c.GetString(CtxKeyCountryCode) }

func GetRegion(c *gin.Context) *medusa.Region {
	if v, ok := c.Get(CtxKeyRegion); ok {
		if r, ok := v.(*medusa.Region); ok {
			return r
		}
	}
	return nil
}
