package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/flash"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/middleware"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/render"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/newsletter"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

type Subscriber interface {
	Subscribe(ctx context.Context, email, countryCode string) error
	Unsubscribe(ctx context.Context, email string) (bool, error)
}

// NewsletterHandler serves the footer form. A nil Subscriber means no
// database is configured.
type NewsletterHandler struct {
	subs   Subscriber
	flash  *flash.Codec
	logger *slog.Logger
}

func NewNewsletterHandler(subs Subscriber, flashCodec *flash.Codec, logger *slog.Logger) *NewsletterHandler {
	return &NewsletterHandler{subs: subs, flash: flashCodec, logger: logger}
}

// Subscribe: POST /newsletter
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	cc := c.PostForm("country_code")
	back := backTo(c, "/"+cc)
	if h.subs == nil {
		render.RedirectWithFlash(c, h.flash, back, view.FlashInfo, "The newsletter is not available right now.")
		return
	}

	err := h.subs.Subscribe(c.Request.Context(), c.PostForm("email"), cc)
	switch {
	case err == nil, errors.Is(err, newsletter.ErrAlreadySubscribed):
		render.RedirectWithFlash(c, h.flash, back, view.FlashSuccess, "Thanks for subscribing!")
	case errors.Is(err, newsletter.ErrInvalidEmail):
		render.RedirectWithFlash(c, h.flash, back, view.FlashError, err.Error())
	default:
		h.logger.ErrorContext(c.Request.Context(), "newsletter_subscribe_failed",
			"request_id", middleware.GetRequestID(c), "error", err)
		render.RedirectWithFlash(c, h.flash, back, view.FlashError, "We could not subscribe you. Please try again later.")
	}
}

// Unsubscribe: POST /newsletter/unsubscribe
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	back := backTo(c, "/")
	if h.subs == nil {
		render.RedirectWithFlash(c, h.flash, back, view.FlashInfo, "The newsletter is not available right now.")
		return
	}
	if _, err := h.subs.Unsubscribe(c.Request.Context(), c.PostForm("email")); err != nil && !errors.Is(err, newsletter.ErrInvalidEmail) {
		h.logger.ErrorContext(c.Request.Context(), "newsletter_unsubscribe_failed",
			"request_id", middleware.GetRequestID(c), "error", err)
		render.RedirectWithFlash(c, h.flash, back, view.FlashError, "We could not unsubscribe you. Please try again later.")
		return
	}
	render.RedirectWithFlash(c, h.flash, back, view.FlashSuccess, "You have been unsubscribed.")
}
