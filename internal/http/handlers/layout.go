package handlers

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/middleware"
	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/catalog"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/customer"
	"github.com/LeroySteding/medusajs-yn-railway/internal/storage"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

// Layouts builds the header and footer data shared by every page.
type Layouts struct {
	Catalog  *catalog.Service
	Customer *customer.Service
	Storage  storage.Storage
	Logger   *slog.Logger
}

func (l *Layouts) Build(c *gin.Context, title string) view.Layout {
	ctx := c.Request.Context()
	cc := middleware.GetCountryCode(c)

	out := view.Layout{
		Title:       title,
		CountryCode: cc,
		CurrentPath: currentPath(c),
		Flash:       middleware.GetFlash(c),
		CartCount:   middleware.GetCartCount(c),
		RequestID:   middleware.GetRequestID(c),
		Year:        time.Now().Year(),
	}
	if l.Storage != nil {
		out.LogoURL = l.Storage.URL("brand/logo.svg")
	}

	var (
		cats      []medusa.Category
		countries []catalog.Country
		cust      *medusa.Customer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cats, err = l.Catalog.Categories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		countries, err = l.Catalog.Countries(gctx)
		return err
	})
	if middleware.HasCustomerToken(c) && l.Customer != nil {
		g.Go(func() error {
			cust = l.Customer.Retrieve(gctx)
			return nil
		})
	}
	// The header degrades to empty menus rather than failing the page.
	if err := g.Wait(); err != nil {
		l.Logger.WarnContext(ctx, "layout_data_failed", "request_id", out.RequestID, "error", err)
	}

	for _, cat := range cats {
		out.Nav = append(out.Nav, view.Link{Label: cat.Name, Href: "/" + cc + "/categories/" + cat.Handle})
	}
	out.Regions = regionOptions(countries, cc)
	if cust != nil {
		out.Customer = &view.CustomerBadge{FirstName: cust.FirstName, Email: cust.Email}
	}
	return out
}

func regionOptions(countries []catalog.Country, selected string) []view.RegionOption {
	out := make([]view.RegionOption, 0, len(countries))
	for _, co := range countries {
		out = append(out, view.RegionOption{CountryCode: co.Code, Label: co.Name, Selected: co.Code == selected})
	}
	return out
}

// currentPath is the request path without its country prefix, used when
// switching regions.
func currentPath(c *gin.Context) string {
	cc := middleware.GetCountryCode(c)
	p := c.Request.URL.Path
	if cc != "" && len(p) >= len(cc)+1 && strings.EqualFold(p[1:len(cc)+1], cc) {
		p = p[len(cc)+1:]
	}
	if p == "" {
		p = "/"
	}
	if q := c.Request.URL.RawQuery; q != "" {
		p += "?" + q
	}
	return p
}
