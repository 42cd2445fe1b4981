package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/middleware"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/render"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/checkout"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/payments"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
	"github.com/LeroySteding/medusajs-yn-railway/templates/pages"
)

func flowPath(cc string) string { return "/" + cc + "/checkout-v2" }

// PaymentFlow: GET /:countryCode/checkout-v2?step=
func (h *CheckoutHandler) PaymentFlow(c *gin.Context) {
	ct := activeCart(c)
	if ct == nil {
		return
	}
	cc := middleware.GetCountryCode(c)
	step, session := checkout.ResolvePaymentStep(ct, c.Query("step"))

	p := view.PaymentFlowPage{
		Layout:   h.layouts.Build(c, "Payment"),
		Step:     string(step),
		Summary:  checkout.CartSummary(ct),
		NotReady: checkout.NotReady(ct),
	}
	for _, m := range h.payments.PickerMethods() {
		p.Methods = append(p.Methods, view.PaymentMethod{
			ID:       m.ID,
			Label:    m.Label,
			Selected: session != nil && payments.KindOf(session.ProviderID) == m.Kind,
		})
	}
	if step == checkout.PaymentDetails {
		w, err := h.payments.Widget(ct, h.widgetOptions(cc, p.NotReady))
		if err != nil {
			h.layouts.Logger.WarnContext(c.Request.Context(), "payment_widget_unavailable",
				"request_id", middleware.GetRequestID(c), "cart_id", ct.ID, "error", err)
			p.Step = string(checkout.MethodSelection)
			p.Error = msgMethodNotOffered
		} else {
			p.Widget = w
		}
	}
	render.Component(c, http.StatusOK, pages.PaymentFlow(p))
}

// SelectMethod: POST /:countryCode/checkout-v2/method
func (h *CheckoutHandler) SelectMethod(c *gin.Context) {
	ct := activeCart(c)
	if ct == nil {
		return
	}
	cc := middleware.GetCountryCode(c)
	if err := h.startSession(c, ct, c.PostForm("method")); err != nil {
		h.layouts.Logger.WarnContext(c.Request.Context(), "select_payment_method_failed",
			"request_id", middleware.GetRequestID(c), "cart_id", ct.ID, "error", err)
		render.RedirectWithFlash(c, h.flash, flowPath(cc)+"?step="+string(checkout.MethodSelection), view.FlashError, sessionMessage(err))
		return
	}
	render.Redirect(c, flowPath(cc))
}
