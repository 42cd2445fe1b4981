// Package render writes pages and redirects for gin handlers.
package render

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/middleware"
	"github.com/LeroySteding/medusajs-yn-railway/internal/shared/apperr"
)

// Component renders comp fully before writing, so a template failure still
// yields a clean error page instead of half a document.
func Component(c *gin.Context, status int, comp templ.Component) {
	var buf bytes.Buffer
	if err := comp.Render(c.Request.Context(), &buf); err != nil {
		middleware.Fail(c, apperr.Wrap(fmt.Errorf("render: %w", err)))
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// Redirect answers with 303 so a POST is followed by a GET.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
