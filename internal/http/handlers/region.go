package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/flash"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/middleware"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/render"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/cart"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

type RegionHandler struct {
	carts *cart.Service
	flash *flash.Codec
}

func NewRegionHandler(carts *cart.Service, flashCodec *flash.Codec) *RegionHandler {
	return &RegionHandler{carts: carts, flash: flashCodec}
}

// Update: POST /:countryCode/region. Moves the cart to the chosen country's
// region and reopens the current page under the new prefix.
func (h *RegionHandler) Update(c *gin.Context) {
	cc := middleware.GetCountryCode(c)
	path := safeReturnTo(c.PostForm("current_path"), "/")

	loc, err := h.carts.UpdateRegion(c.Request.Context(), middleware.GetCartID(c), c.PostForm("country_code"), path)
	if err != nil {
		msg := flashMessage(err)
		if errors.Is(err, cart.ErrRegionNotFound) {
			msg = "We do not ship to this country yet."
		}
		render.RedirectWithFlash(c, h.flash, "/"+cc+path, view.FlashError, msg)
		return
	}
	render.Redirect(c, loc)
}
