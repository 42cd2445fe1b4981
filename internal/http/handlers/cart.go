package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/cookie"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/flash"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/middleware"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/render"
	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/cart"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/checkout"
	"github.com/LeroySteding/medusajs-yn-railway/internal/shared/apperr"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
	"github.com/LeroySteding/medusajs-yn-railway/templates/pages"
)

type CartHandler struct {
	carts      *cart.Service
	layouts    *Layouts
	cartCookie *cookie.Codec
	flash      *flash.Codec
}

func NewCartHandler(carts *cart.Service, layouts *Layouts, cartCookie *cookie.Codec, flashCodec *flash.Codec) *CartHandler {
	return &CartHandler{carts: carts, layouts: layouts, cartCookie: cartCookie, flash: flashCodec}
}

func (h *CartHandler) cartPath(c *gin.Context) string {
	return "/" + middleware.GetCountryCode(c) + "/cart"
}

// Show: GET /:countryCode/cart
func (h *CartHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	cc := middleware.GetCountryCode(c)

	p := view.CartPage{CheckoutHref: "/" + cc + "/checkout"}
	if ct := middleware.GetCart(c); ct != nil {
		if err := h.carts.EnrichLineItems(ctx, ct); err != nil {
			h.layouts.Logger.WarnContext(ctx, "enrich_line_items_failed",
				"request_id", middleware.GetRequestID(c), "cart_id", ct.ID, "error", err)
		}
		p.Lines = lineViews(ct.Items, ct.Currency(), cc)
		p.Summary = checkout.CartSummary(ct)
		p.PromoCodes = ct.PromoCodes()
	}
	p.Layout = h.layouts.Build(c, "Cart")
	render.Component(c, http.StatusOK, pages.Cart(p))
}

// Badge: GET /:countryCode/cart/badge
func (h *CartHandler) Badge(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	render.Component(c, http.StatusOK, pages.CartBadge(middleware.GetCountryCode(c), middleware.GetCartCount(c)))
}

// AddLineItem: POST /:countryCode/cart/line-items
func (h *CartHandler) AddLineItem(c *gin.Context) {
	ctx := c.Request.Context()
	cc := middleware.GetCountryCode(c)
	variantID := c.PostForm("variant_id")
	qty := parseQuantity(c.PostForm("quantity"), 1)

	ct, created, err := h.carts.AddToCart(ctx, middleware.GetCartID(c), variantID, qty, cc)
	if created && ct != nil {
		h.cartCookie.Set(c, ct.ID)
	}
	if err != nil {
		h.mutationFailed(c, err, backTo(c, "/"+cc))
		return
	}
	middleware.SetCart(c, ct)

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"cart_id": ct.ID, "cart_count": ct.ItemCount()})
		return
	}
	render.RedirectWithFlash(c, h.flash, backTo(c, h.cartPath(c)), view.FlashSuccess, "Added to cart")
}

// UpdateLineItem: POST /:countryCode/cart/line-items/:id
func (h *CartHandler) UpdateLineItem(c *gin.Context) {
	qty := parseQuantity(c.PostForm("quantity"), -1)
	if qty < 0 {
		h.mutationFailed(c, apperr.InvalidErr("Please enter a valid quantity", map[string]string{"quantity": "Please enter a valid quantity"}), h.cartPath(c))
		return
	}
	if err := h.carts.UpdateLineItem(c.Request.Context(), middleware.GetCartID(c), c.Param("id"), qty); err != nil {
		h.mutationFailed(c, err, h.cartPath(c))
		return
	}
	h.done(c)
}

// DeleteLineItem: POST /:countryCode/cart/line-items/:id/delete
func (h *CartHandler) DeleteLineItem(c *gin.Context) {
	if err := h.carts.DeleteLineItem(c.Request.Context(), middleware.GetCartID(c), c.Param("id")); err != nil {
		h.mutationFailed(c, err, h.cartPath(c))
		return
	}
	h.done(c)
}

// ApplyPromotion: POST /:countryCode/cart/promotions
func (h *CartHandler) ApplyPromotion(c *gin.Context) {
	code := strings.TrimSpace(c.PostForm("code"))
	if code == "" {
		h.mutationFailed(c, apperr.InvalidErr("Please enter a promotion code", nil), h.cartPath(c))
		return
	}
	ct, err := h.carts.ApplyPromotions(c.Request.Context(), middleware.GetCartID(c), code)
	if err != nil {
		h.mutationFailed(c, err, h.cartPath(c))
		return
	}
	if !containsCode(ct.PromoCodes(), code) {
		h.mutationFailed(c, apperr.InvalidErr("The promotion code is not valid", nil), h.cartPath(c))
		return
	}
	middleware.SetCart(c, ct)
	h.done(c)
}

// RemovePromotion: POST /:countryCode/cart/promotions/remove
func (h *CartHandler) RemovePromotion(c *gin.Context) {
	ct, err := h.carts.RemovePromotion(c.Request.Context(), middleware.GetCartID(c), c.PostForm("code"))
	if err != nil {
		h.mutationFailed(c, err, h.cartPath(c))
		return
	}
	middleware.SetCart(c, ct)
	h.done(c)
}

func (h *CartHandler) done(c *gin.Context) {
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}
	render.Redirect(c, h.cartPath(c))
}

// mutationFailed answers JSON clients with the error, and browsers with a
// flash on the page they came from.
func (h *CartHandler) mutationFailed(c *gin.Context, err error, location string) {
	if errors.Is(err, cart.ErrNoCart) && !middleware.WantsJSON(c) {
		render.RedirectWithFlash(c, h.flash, h.cartPath(c), view.FlashWarning, "Your cart has expired. Please add the items again.")
		return
	}
	if middleware.WantsJSON(c) {
		status := http.StatusBadRequest
		if medusa.IsTransport(err) {
			status = http.StatusBadGateway
		} else if ae, ok := apperr.As(err); ok {
			status = apperr.HTTPStatus(ae)
		} else if me, ok := medusa.AsError(err); ok && me.Status >= 500 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": flashMessage(err), "request_id": middleware.GetRequestID(c)})
		return
	}
	h.layouts.Logger.WarnContext(c.Request.Context(), "cart_mutation_failed",
		"request_id", middleware.GetRequestID(c), "cart_id", middleware.GetCartID(c), "error", err)
	render.RedirectWithFlash(c, h.flash, location, view.FlashError, flashMessage(err))
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}
