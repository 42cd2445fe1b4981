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
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/validation"
	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/internal/metrics"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/cart"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/checkout"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/payments"
	"github.com/LeroySteding/medusajs-yn-railway/internal/shared/apperr"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
	"github.com/LeroySteding/medusajs-yn-railway/templates/pages"
)

const (
	msgPaymentFailed    = "Payment failed. Please try again or choose another payment method."
	msgMethodNotOffered = "This payment method is not available."
)

type CheckoutOptions struct {
	Carts      *cart.Service
	Payments   *payments.Registry
	Layouts    *Layouts
	CartCookie *cookie.Codec
	Flash      *flash.Codec
	Metrics    *metrics.Metrics
	// BaseURL is the public origin, used for provider return URLs.
	BaseURL string
}

// CheckoutHandler serves the step checkout, the single page checkout and
// the standalone payment flow. All three share the order placement.
type CheckoutHandler struct {
	carts      *cart.Service
	payments   *payments.Registry
	layouts    *Layouts
	cartCookie *cookie.Codec
	flash      *flash.Codec
	metrics    *metrics.Metrics
	baseURL    string
}

func NewCheckoutHandler(opts CheckoutOptions) *CheckoutHandler {
	return &CheckoutHandler{
		carts:      opts.Carts,
		payments:   opts.Payments,
		layouts:    opts.Layouts,
		cartCookie: opts.CartCookie,
		flash:      opts.Flash,
		metrics:    opts.Metrics,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
	}
}

func (h *CheckoutHandler) event(name string) {
	if h.metrics != nil {
		h.metrics.CheckoutEvent(name)
	}
}

func checkoutPath(cc string, step checkout.Step) string {
	return "/" + cc + "/checkout?step=" + string(step)
}

func (h *CheckoutHandler) widgetOptions(cc string, notReady bool) payments.WidgetOptions {
	return payments.WidgetOptions{
		ReturnURL:     h.baseURL + "/" + cc + "/checkout/return",
		PlaceOrderURL: "/" + cc + "/checkout/place-order",
		NotReady:      notReady,
	}
}

// activeCart is the request's cart; checkout pages without a cart with
// items are not found.
func activeCart(c *gin.Context) *medusa.Cart {
	ct := middleware.GetCart(c)
	if ct == nil || len(ct.Items) == 0 {
		middleware.Fail(c, apperr.NotFoundErr("Page not found"))
		return nil
	}
	return ct
}

// reload fetches the cart again after a mutation.
func (h *CheckoutHandler) reload(c *gin.Context, cartID string) (*medusa.Cart, error) {
	ct, err := h.carts.Retrieve(c.Request.Context(), cartID)
	if err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, cart.ErrNoCart
	}
	middleware.SetCart(c, ct)
	return ct, nil
}

// Show: GET /:countryCode/checkout?step=
func (h *CheckoutHandler) Show(c *gin.Context) {
	ct := activeCart(c)
	if ct == nil {
		return
	}
	step := checkout.ResolveStep(c.Query("step"), ct)
	p, err := h.checkoutPage(c, ct, step)
	if err != nil {
		middleware.Fail(c, pageErr(err))
		return
	}
	render.Component(c, http.StatusOK, pages.Checkout(*p))
}

func (h *CheckoutHandler) checkoutPage(c *gin.Context, ct *medusa.Cart, step checkout.Step) (*view.CheckoutPage, error) {
	ctx := c.Request.Context()
	cc := middleware.GetCountryCode(c)

	if err := h.carts.EnrichLineItems(ctx, ct); err != nil {
		h.layouts.Logger.WarnContext(ctx, "enrich_line_items_failed",
			"request_id", middleware.GetRequestID(c), "cart_id", ct.ID, "error", err)
	}

	region := ct.Region
	if region == nil {
		region = middleware.GetRegion(c)
	}
	p := &view.CheckoutPage{
		Layout:     h.layouts.Build(c, "Checkout"),
		Step:       string(step),
		Steps:      stepViews(cc, step, ct),
		Address:    addressForm(ct, cc),
		Lines:      lineViews(ct.Items, ct.Currency(), cc),
		Summary:    checkout.CartSummary(ct),
		PromoCodes: ct.PromoCodes(),
		NotReady:   checkout.NotReady(ct),
		ActionBase: "/" + cc + "/checkout",
	}
	p.Countries = regionCountries(region, p.Address.CountryCode)

	switch step {
	case checkout.StepDelivery:
		opts, err := h.carts.ShippingOptions(ctx, ct.ID)
		if err != nil {
			return nil, err
		}
		p.ShippingOptions = shippingOptionViews(opts, ct)
	case checkout.StepPayment:
		providers, err := h.carts.PaymentProviders(ctx, ct.RegionID)
		if err != nil {
			return nil, err
		}
		active := payments.ActiveProviderID(ct)
		for _, m := range h.payments.Methods(providers) {
			p.PaymentMethods = append(p.PaymentMethods, view.PaymentMethod{ID: m.ID, Label: m.Label, Selected: m.ID == active})
		}
	case checkout.StepReview:
		w, err := h.payments.Widget(ct, h.widgetOptions(cc, p.NotReady))
		if err != nil {
			h.layouts.Logger.WarnContext(ctx, "payment_widget_unavailable",
				"request_id", middleware.GetRequestID(c), "cart_id", ct.ID, "error", err)
			p.Layout.Flash = &view.Flash{Kind: view.FlashError, Message: msgMethodNotOffered}
			break
		}
		p.Widget = w
	}
	return p, nil
}

// Email: POST /:countryCode/checkout/email
func (h *CheckoutHandler) Email(c *gin.Context) {
	cc := middleware.GetCountryCode(c)
	// the posted country decides the next storefront; a missing one is
	// rejected by SetEmail
	in := cart.EmailInput{Email: c.PostForm("email"), CountryCode: c.PostForm("country_code")}
	loc, err := h.carts.SetEmail(c.Request.Context(), middleware.GetCartID(c), in)
	if err != nil {
		render.RedirectWithFlash(c, h.flash, checkoutPath(cc, checkout.StepAddress), view.FlashError, flashMessage(err))
		return
	}
	render.Redirect(c, loc)
}

// Addresses: POST /:countryCode/checkout/addresses
func (h *CheckoutHandler) Addresses(c *gin.Context) {
	ct := activeCart(c)
	if ct == nil {
		return
	}
	cc := middleware.GetCountryCode(c)

	var in cart.AddressInput
	if err := c.ShouldBind(&in); err != nil {
		p, perr := h.checkoutPage(c, ct, checkout.StepAddress)
		if perr != nil {
			middleware.Fail(c, pageErr(perr))
			return
		}
		p.Address = formFromPost(c)
		p.Errors = validation.FromBindError(err, &in)
		render.Component(c, http.StatusUnprocessableEntity, pages.Checkout(*p))
		return
	}

	loc, err := h.carts.SetAddresses(c.Request.Context(), ct.ID, in)
	if err != nil {
		render.RedirectWithFlash(c, h.flash, checkoutPath(cc, checkout.StepAddress), view.FlashError, flashMessage(err))
		return
	}
	render.Redirect(c, loc)
}

// ShippingMethod: POST /:countryCode/checkout/shipping-method
func (h *CheckoutHandler) ShippingMethod(c *gin.Context) {
	cc := middleware.GetCountryCode(c)
	err := h.carts.SetShippingMethod(c.Request.Context(), middleware.GetCartID(c), c.PostForm("shipping_option_id"))
	if err != nil {
		msg := flashMessage(err)
		if errors.Is(err, cart.ErrMissingShipping) {
			msg = "Please select a delivery method."
		}
		render.RedirectWithFlash(c, h.flash, checkoutPath(cc, checkout.StepDelivery), view.FlashError, msg)
		return
	}
	render.Redirect(c, checkoutPath(cc, checkout.StepPayment))
}

// PaymentSession: POST /:countryCode/checkout/payment-session
func (h *CheckoutHandler) PaymentSession(c *gin.Context) {
	ct := activeCart(c)
	if ct == nil {
		return
	}
	cc := middleware.GetCountryCode(c)
	if err := h.startSession(c, ct, c.PostForm("provider_id")); err != nil {
		render.RedirectWithFlash(c, h.flash, checkoutPath(cc, checkout.StepPayment), view.FlashError, sessionMessage(err))
		return
	}
	render.Redirect(c, checkoutPath(cc, checkout.StepReview))
}

// startSession resolves a provider id or picker alias against the region's
// providers and opens a payment session for it.
func (h *CheckoutHandler) startSession(c *gin.Context, ct *medusa.Cart, method string) error {
	ctx := c.Request.Context()
	providers, err := h.carts.PaymentProviders(ctx, ct.RegionID)
	if err != nil {
		return err
	}
	providerID, err := h.payments.ResolveProvider(method, providers)
	if err != nil {
		return err
	}
	if _, err := h.carts.InitiatePaymentSession(ctx, ct, providerID, nil); err != nil {
		return err
	}
	h.event("payment_session_initiated")
	return nil
}

func sessionMessage(err error) string {
	if errors.Is(err, payments.ErrNotOffered) || errors.Is(err, payments.ErrUnknownMethod) {
		return msgMethodNotOffered
	}
	return flashMessage(err)
}

// PlaceOrder: POST /:countryCode/checkout/place-order
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	h.placeOrder(c, backTo(c, checkoutPath(middleware.GetCountryCode(c), checkout.StepReview)))
}

// Return: GET /:countryCode/checkout/return, the landing page of redirect
// based methods such as iDEAL.
func (h *CheckoutHandler) Return(c *gin.Context) {
	cc := middleware.GetCountryCode(c)
	if !payments.RedirectSucceeded(c.Query("redirect_status")) {
		h.event("payment_redirect_failed")
		render.RedirectWithFlash(c, h.flash, checkoutPath(cc, checkout.StepPayment), view.FlashError, msgPaymentFailed)
		return
	}
	h.placeOrder(c, checkoutPath(cc, checkout.StepPayment))
}

// placeOrder completes the cart and drops the cart cookie. failedTo is
// where the shopper lands when the order could not be placed.
func (h *CheckoutHandler) placeOrder(c *gin.Context, failedTo string) {
	ctx := c.Request.Context()
	cc := middleware.GetCountryCode(c)
	cartID := middleware.GetCartID(c)

	placed, err := h.carts.PlaceOrder(ctx, cartID, cc)
	if err != nil {
		h.event("order_failed")
		h.layouts.Logger.WarnContext(ctx, "place_order_failed",
			"request_id", middleware.GetRequestID(c), "cart_id", cartID, "error", err)
		if errors.Is(err, cart.ErrNoCart) {
			middleware.Fail(c, apperr.NotFoundErr("Page not found"))
			return
		}
		msg := flashMessage(err)
		if middleware.WantsJSON(c) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg, "request_id": middleware.GetRequestID(c)})
			return
		}
		render.RedirectWithFlash(c, h.flash, failedTo, view.FlashError, msg)
		return
	}

	h.cartCookie.Clear(c)
	h.event("order_placed")
	h.layouts.Logger.InfoContext(ctx, "order_placed",
		"request_id", middleware.GetRequestID(c), "cart_id", cartID, "order_id", placed.Order.ID)

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"order_id": placed.Order.ID, "location": placed.Location})
		return
	}
	render.Redirect(c, placed.Location)
}
