// Package payments maps backend payment providers onto the browser SDKs
// that collect the payment. Card data never reaches this server.
package payments

import (
	"strings"

	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
)

type Kind string

const (
	KindCard    Kind = "card"
	KindIdeal   Kind = "ideal"
	KindPayPal  Kind = "paypal"
	KindManual  Kind = "manual"
	KindUnknown Kind = "unknown"
)

// Aliases used by the payment method picker.
const (
	AliasStripe      = "stripe"
	AliasStripeIdeal = "stripe_ideal"
	AliasPayPal      = "paypal"
)

// KindOf classifies a backend provider id (or picker alias).
func KindOf(providerID string) Kind {
	id := strings.ToLower(providerID)
	switch {
	case id == "":
		return KindUnknown
	case strings.Contains(id, "ideal"):
		return KindIdeal
	case IsStripe(id):
		return KindCard
	case strings.Contains(id, "paypal"):
		return KindPayPal
	case id == "pp_system_default" || strings.HasPrefix(id, "manual"):
		return KindManual
	}
	return KindUnknown
}

func IsStripe(providerID string) bool {
	id := strings.ToLower(providerID)
	return strings.HasPrefix(id, "pp_stripe") || strings.HasPrefix(id, "stripe")
}

func (k Kind) Label() string {
	switch k {
	case KindCard:
		return "Credit Card"
	case KindIdeal:
		return "iDEAL"
	case KindPayPal:
		return "PayPal"
	case KindManual:
		return "Manual Payment"
	}
	return "Other"
}

// PendingSession is the session the browser SDK confirms, i.e. the first
// with status "pending".
func PendingSession(c *medusa.Cart) *medusa.PaymentSession {
	if c == nil || c.PaymentCollection == nil {
		return nil
	}
	for i := range c.PaymentCollection.PaymentSessions {
		if c.PaymentCollection.PaymentSessions[i].Status == "pending" {
			return &c.PaymentCollection.PaymentSessions[i]
		}
	}
	return nil
}

// ActiveProviderID is the provider of the pending session, if any.
func ActiveProviderID(c *medusa.Cart) string {
	if s := PendingSession(c); s != nil {
		return s.ProviderID
	}
	return ""
}
