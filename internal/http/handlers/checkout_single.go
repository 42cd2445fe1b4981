package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/middleware"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/render"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/validation"
	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/cart"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/checkout"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/payments"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
	"github.com/LeroySteding/medusajs-yn-railway/templates/pages"
)

func singlePath(cc string) string { return "/" + cc + "/checkout-single" }

// ensureCardSession makes sure the cart has a pending Stripe card session so
// the card element can be mounted. The returned cart is current.
func (h *CheckoutHandler) ensureCardSession(c *gin.Context, ct *medusa.Cart) (*medusa.Cart, error) {
	if s := payments.PendingSession(ct); s != nil && payments.KindOf(s.ProviderID) == payments.KindCard {
		return ct, nil
	}
	if err := h.startSession(c, ct, payments.AliasStripe); err != nil {
		return ct, err
	}
	updated, err := h.reload(c, ct.ID)
	if err != nil {
		return ct, err
	}
	return updated, nil
}

// SingleCheckout: GET /:countryCode/checkout-single
func (h *CheckoutHandler) SingleCheckout(c *gin.Context) {
	ct := activeCart(c)
	if ct == nil {
		return
	}
	p, err := h.singlePage(c, ct)
	if err != nil {
		middleware.Fail(c, pageErr(err))
		return
	}
	render.Component(c, http.StatusOK, pages.SingleCheckout(*p))
}

func (h *CheckoutHandler) singlePage(c *gin.Context, ct *medusa.Cart) (*view.SingleCheckoutPage, error) {
	ctx := c.Request.Context()
	cc := middleware.GetCountryCode(c)

	p := &view.SingleCheckoutPage{}
	ct, err := h.ensureCardSession(c, ct)
	if err != nil {
		h.layouts.Logger.WarnContext(ctx, "card_session_failed",
			"request_id", middleware.GetRequestID(c), "cart_id", ct.ID, "error", err)
		p.Error = sessionMessage(err)
	}

	if err := h.carts.EnrichLineItems(ctx, ct); err != nil {
		h.layouts.Logger.WarnContext(ctx, "enrich_line_items_failed",
			"request_id", middleware.GetRequestID(c), "cart_id", ct.ID, "error", err)
	}
	opts, err := h.carts.ShippingOptions(ctx, ct.ID)
	if err != nil {
		return nil, err
	}

	p.Layout = h.layouts.Build(c, "Checkout")
	p.Address = addressForm(ct, cc)
	p.ShippingOptions = shippingOptionViews(opts, ct)
	p.Lines = lineViews(ct.Items, ct.Currency(), cc)
	p.Summary = checkout.CartSummary(ct)

	region := ct.Region
	if region == nil {
		region = middleware.GetRegion(c)
	}
	p.Countries = regionCountries(region, p.Address.CountryCode)

	// Address and delivery are saved by the card script right before the
	// payment is confirmed, so the widget is never disabled here.
	if p.Error == "" {
		w, err := h.payments.Widget(ct, h.widgetOptions(cc, false))
		if err != nil {
			p.Error = sessionMessage(err)
		} else {
			p.Widget = w
		}
	}
	return p, nil
}

// SaveSingleCheckout: POST /:countryCode/checkout-single. Stores email,
// addresses and delivery, then refreshes the card session because the
// total may have changed. JSON clients receive the new client secret.
func (h *CheckoutHandler) SaveSingleCheckout(c *gin.Context) {
	ct := activeCart(c)
	if ct == nil {
		return
	}
	ctx := c.Request.Context()
	cc := middleware.GetCountryCode(c)

	var in cart.AddressInput
	if err := c.ShouldBind(&in); err != nil {
		fields := validation.FromBindError(err, &in)
		if middleware.WantsJSON(c) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fields.First(), "fields": fields})
			return
		}
		p, perr := h.singlePage(c, ct)
		if perr != nil {
			middleware.Fail(c, pageErr(perr))
			return
		}
		p.Address = formFromPost(c)
		p.Errors = fields
		render.Component(c, http.StatusUnprocessableEntity, pages.SingleCheckout(*p))
		return
	}

	fail := func(err error) {
		h.layouts.Logger.WarnContext(ctx, "single_checkout_failed",
			"request_id", middleware.GetRequestID(c), "cart_id", ct.ID, "error", err)
		msg := flashMessage(err)
		switch {
		case errors.Is(err, cart.ErrMissingShipping):
			msg = "Please select a delivery method."
		case errors.Is(err, payments.ErrNotOffered), errors.Is(err, payments.ErrUnknownMethod):
			msg = msgMethodNotOffered
		}
		if middleware.WantsJSON(c) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg, "request_id": middleware.GetRequestID(c)})
			return
		}
		render.RedirectWithFlash(c, h.flash, singlePath(cc), view.FlashError, msg)
	}

	if _, err := h.carts.SetAddresses(ctx, ct.ID, in); err != nil {
		fail(err)
		return
	}
	if err := h.carts.SetShippingMethod(ctx, ct.ID, c.PostForm("shipping_option_id")); err != nil {
		fail(err)
		return
	}
	updated, err := h.reload(c, ct.ID)
	if err != nil {
		fail(err)
		return
	}
	if err := h.startSession(c, updated, payments.AliasStripe); err != nil {
		fail(err)
		return
	}
	if updated, err = h.reload(c, ct.ID); err != nil {
		fail(err)
		return
	}

	if middleware.WantsJSON(c) {
		secret := ""
		if s := payments.PendingSession(updated); s != nil {
			secret = s.ClientSecret()
		}
		c.JSON(http.StatusOK, gin.H{
			"client_secret":   secret,
			"place_order_url": "/" + cc + "/checkout/place-order",
		})
		return
	}
	render.Redirect(c, singlePath(cc))
}
