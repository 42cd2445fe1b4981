// Package checkout decides which checkout step a cart can be on.
package checkout

import "github.com/LeroySteding/medusajs-yn-railway/internal/medusa"

type Step string

const (
	StepAddress  Step = "address"
	StepDelivery Step = "delivery"
	StepPayment  Step = "payment"
	StepReview   Step = "review"
)

var Steps = []Step{StepAddress, StepDelivery, StepPayment, StepReview}

func (s Step) Label() string {
	switch s {
	case StepAddress:
		return "Shipping Address"
	case StepDelivery:
		return "Delivery"
	case StepPayment:
		return "Payment"
	case StepReview:
		return "Review"
	}
	return string(s)
}

func (s Step) index() int {
	for i, st := range Steps {
		if st == s {
			return i
		}
	}
	return -1
}

// Before reports whether s comes before other in the flow.
func (s Step) Before(other Step) bool { return s.index() < other.index() }

func HasAddresses(c *medusa.Cart) bool {
	return c != nil && c.Email != "" && !c.ShippingAddress.Empty() && !c.BillingAddress.Empty()
}

func HasShippingMethod(c *medusa.Cart) bool {
	return c != nil && len(c.ShippingMethods) > 0
}

func HasPaymentSession(c *medusa.Cart) bool {
	return c != nil && c.PaymentCollection != nil && len(c.PaymentCollection.PaymentSessions) > 0
}

// NotReady is true while the cart cannot be paid for.
func NotReady(c *medusa.Cart) bool {
	return !HasAddresses(c) || !HasShippingMethod(c)
}

// FirstIncomplete is the earliest step whose data is missing.
func FirstIncomplete(c *medusa.Cart) Step {
	switch {
	case !HasAddresses(c):
		return StepAddress
	case !HasShippingMethod(c):
		return StepDelivery
	case !HasPaymentSession(c):
		return StepPayment
	default:
		return StepReview
	}
}

// ResolveStep returns the requested step when everything before it is
// complete, otherwise the first incomplete step. An empty or unknown request
// resolves to the first incomplete step.
func ResolveStep(requested string, c *medusa.Cart) Step {
	first := FirstIncomplete(c)
	req := Step(requested)
	if req.index() < 0 {
		return first
	}
	if first.Before(req) {
		return first
	}
	return req
}
