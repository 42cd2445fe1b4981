package checkout

import (
	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/payments"
)

// PaymentStep is the position in the standalone payment flow.
type PaymentStep string

const (
	MethodSelection PaymentStep = "method_selection"
	PaymentDetails  PaymentStep = "payment_details"
	Confirmation    PaymentStep = "confirmation"
)

// ResolvePaymentStep: a pending session means the method is chosen and the
// SDK should collect details; otherwise the shopper picks a method.
// Confirmation is reached by redirect to the order page, never from cart state.
func ResolvePaymentStep(c *medusa.Cart, requested string) (PaymentStep, *medusa.PaymentSession) {
	session := payments.PendingSession(c)
	if session == nil {
		return MethodSelection, nil
	}
	if PaymentStep(requested) == MethodSelection {
		return MethodSelection, session
	}
	return PaymentDetails, session
}
