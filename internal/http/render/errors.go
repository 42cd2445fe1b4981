package render

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/middleware"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
	"github.com/LeroySteding/medusajs-yn-railway/templates/pages"
)

// ErrorPage returns the renderer used by middleware.ErrorHandler. Errors can
// happen before the region is resolved, so the layout falls back to
// defaultCC.
func ErrorPage(defaultCC string) middleware.ErrorPage {
	return func(c *gin.Context, status int, msg, requestID string) {
		cc := middleware.GetCountryCode(c)
		if cc == "" {
			cc = defaultCC
		}
		title := http.StatusText(status)
		if status == http.StatusNotFound {
			title = "Page not found"
		}
		p := view.ErrorPage{
			Layout: view.Layout{
				Title:       title,
				CountryCode: cc,
				CurrentPath: "/",
				Flash:       middleware.GetFlash(c),
				CartCount:   middleware.GetCartCount(c),
				RequestID:   requestID,
				Year:        time.Now().Year(),
			},
			Status:    status,
			Title:     title,
			Message:   msg,
			RequestID: requestID,
		}

		var buf bytes.Buffer
		if err := pages.Error(p).Render(c.Request.Context(), &buf); err != nil {
			c.String(status, "%d %s", status, title)
			return
		}
		c.Data(status, "text/html; charset=utf-8", buf.Bytes())
	}
}
