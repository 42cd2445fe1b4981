package payments

import (
	"fmt"
	"strings"

	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
)

type PayPalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type PayPalAddress struct {
	AddressLine1 string `json:"address_line_1,omitempty"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	AdminArea2   string `json:"admin_area_2,omitempty"` // city
	AdminArea1   string `json:"admin_area_1,omitempty"` // province
	PostalCode   string `json:"postal_code,omitempty"`
	CountryCode  string `json:"country_code"`
}

type PayPalShipping struct {
	Name struct {
		FullName string `json:"full_name"`
	} `json:"name"`
	Address PayPalAddress `json:"address"`
}

type PurchaseUnit struct {
	ReferenceID string          `json:"reference_id,omitempty"`
	Amount      PayPalAmount    `json:"amount"`
	Shipping    *PayPalShipping `json:"shipping,omitempty"`
}

type PayPalConfig struct {
	ClientID      string         `json:"clientId"`
	Currency      string         `json:"currency"`
	Intent        string         `json:"intent"`
	PurchaseUnits []PurchaseUnit `json:"purchaseUnits"`
	PlaceOrderURL string         `json:"placeOrderUrl"`
}

// PayPalCurrency is the region currency upper-cased, USD without a region.
func PayPalCurrency(c *medusa.Cart) string {
	if cur := c.Currency(); cur != "" {
		return strings.ToUpper(cur)
	}
	return "USD"
}

// BuildPurchaseUnit describes the cart as a PayPal order: total in major
// units plus the shipping name and address when a shipping country is known.
func BuildPurchaseUnit(c *medusa.Cart) PurchaseUnit {
	pu := PurchaseUnit{
		ReferenceID: c.ID,
		Amount: PayPalAmount{
			CurrencyCode: PayPalCurrency(c),
			Value:        fmt.Sprintf("%d.%02d", c.Total/100, c.Total%100),
		},
	}
	a := c.ShippingAddress
	if a == nil || a.CountryCode == "" {
		return pu
	}
	sh := &PayPalShipping{
		Address: PayPalAddress{
			AddressLine1: a.Address1,
			AddressLine2: a.Address2,
			AdminArea2:   a.City,
			AdminArea1:   a.Province,
			PostalCode:   a.PostalCode,
			CountryCode:  strings.ToUpper(a.CountryCode),
		},
	}
	sh.Name.FullName = strings.TrimSpace(a.FirstName + " " + a.LastName)
	pu.Shipping = sh
	return pu
}

func (r *Registry) paypalConfig(c *medusa.Cart, _ *medusa.PaymentSession, opts WidgetOptions) PayPalConfig {
	return PayPalConfig{
		ClientID:      r.keys.PayPalClientID,
		Currency:      PayPalCurrency(c),
		Intent:        "capture",
		PurchaseUnits: []PurchaseUnit{BuildPurchaseUnit(c)},
		PlaceOrderURL: opts.PlaceOrderURL,
	}
}

// RedirectSucceeded interprets Stripe's redirect_status on the return URL.
func RedirectSucceeded(status string) bool {
	return status == "succeeded" || status == "processing"
}
