package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/shared/apperr"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RootRedirect sends / to the default country's home page.
func RootRedirect(defaultCC string) gin.HandlerFunc {
	target := "/" + strings.ToLower(defaultCC)
	return func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, target)
	}
}

// NotFound renders the not-found page for unmatched routes.
func NotFound(c *gin.Context) {
	_ = c.Error(apperr.NotFoundErr("Page not found"))
}
