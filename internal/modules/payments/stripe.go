package payments

import (
	"strings"

	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
)

type StripeAddress struct {
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	State      string `json:"state,omitempty"`
}

type BillingDetails struct {
	Name    string        `json:"name,omitempty"`
	Email   string        `json:"email,omitempty"`
	Phone   string        `json:"phone,omitempty"`
	Address StripeAddress `json:"address"`
}

type StripeConfig struct {
	PublishableKey     string         `json:"publishableKey"`
	AccountID          string         `json:"stripeAccount,omitempty"`
	ClientSecret       string         `json:"clientSecret"`
	PaymentMethodTypes []string       `json:"paymentMethodTypes"`
	BillingDetails     BillingDetails `json:"billingDetails"`
	ReturnURL          string         `json:"returnUrl,omitempty"`
	PlaceOrderURL      string         `json:"placeOrderUrl"`
}

// StripeBillingDetails copies the cart's billing address in the shape
// stripe.confirmCardPayment / confirmIdealPayment expect.
func StripeBillingDetails(c *medusa.Cart) BillingDetails {
	bd := BillingDetails{Email: c.Email}
	a := c.BillingAddress
	if a == nil {
		return bd
	}
	bd.Name = strings.TrimSpace(a.FirstName + " " + a.LastName)
	bd.Phone = a.Phone
	bd.Address = StripeAddress{
		City:       a.City,
		Country:    strings.ToUpper(a.CountryCode),
		Line1:      a.Address1,
		Line2:      a.Address2,
		PostalCode: a.PostalCode,
		State:      a.Province,
	}
	return bd
}

func (r *Registry) stripeConfig(c *medusa.Cart, s *medusa.PaymentSession, kind Kind, opts WidgetOptions) StripeConfig {
	cfg := StripeConfig{
		PublishableKey:     r.keys.StripePublishableKey,
		AccountID:          r.keys.StripeAccountID,
		ClientSecret:       s.ClientSecret(),
		PaymentMethodTypes: []string{"card"},
		BillingDetails:     StripeBillingDetails(c),
		PlaceOrderURL:      opts.PlaceOrderURL,
	}
	if kind == KindIdeal {
		cfg.PaymentMethodTypes = []string{"ideal"}
		cfg.ReturnURL = opts.ReturnURL
	}
	return cfg
}
