package payments

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
)

func TestKindOf(t *testing.T) {
	cases := map[string]Kind{
		"pp_stripe_stripe":       KindCard,
		"stripe":                 KindCard,
		"pp_stripe-ideal_stripe": KindIdeal,
		"stripe_ideal":           KindIdeal,
		"paypal":                 KindPayPal,
		"pp_paypal_paypal":       KindPayPal,
		"pp_system_default":      KindManual,
		"manual":                 KindManual,
		"pp_klarna_klarna":       KindUnknown,
		"":                       KindUnknown,
	}
	for id, want := range cases {
		assert.Equal(t, want, KindOf(id), id)
	}
}

func cartWithSessions(sessions ...medusa.PaymentSession) *medusa.Cart {
	return &medusa.Cart{
		ID:     "cart_1",
		Email:  "shopper@younithy.com",
		Region: &medusa.Region{CurrencyCode: "eur"},
		Total:  4995,
		ShippingAddress: &medusa.Address{
			FirstName: "Sam", LastName: "Jansen", Address1: "Damrak 1",
			City: "Amsterdam", PostalCode: "1012 LG", CountryCode: "nl",
		},
		BillingAddress: &medusa.Address{
			FirstName: "Sam", LastName: "Jansen", Address1: "Damrak 1",
			City: "Amsterdam", PostalCode: "1012 LG", CountryCode: "nl", Phone: "+31 20 000",
		},
		PaymentCollection: &medusa.PaymentCollection{ID: "paycol_1", PaymentSessions: sessions},
	}
}

func TestPendingSession(t *testing.T) {
	assert.Nil(t, PendingSession(nil))
	assert.Nil(t, PendingSession(&medusa.Cart{}))

	c := cartWithSessions(
		medusa.PaymentSession{ID: "ps_old", Status: "canceled"},
		medusa.PaymentSession{ID: "ps_1", ProviderID: "pp_paypal_paypal", Status: "pending"},
	)
	s := PendingSession(c)
	require.NotNil(t, s)
	assert.Equal(t, "ps_1", s.ID)
	assert.Equal(t, "pp_paypal_paypal", ActiveProviderID(c))
}

func TestMethodsFilterByConfiguredKeys(t *testing.T) {
	available := []medusa.PaymentProvider{
		{ID: "pp_stripe_stripe"}, {ID: "pp_stripe-ideal_stripe"}, {ID: "pp_paypal_paypal"}, {ID: "pp_system_default"},
	}

	none := NewRegistry(Keys{})
	got := none.Methods(available)
	require.Len(t, got, 1)
	assert.Equal(t, KindManual, got[0].Kind)
	assert.Empty(t, none.PickerMethods())

	stripeOnly := NewRegistry(Keys{StripePublishableKey: "pk_test"})
	assert.Len(t, stripeOnly.Methods(available), 3)
	picker := stripeOnly.PickerMethods()
	require.Len(t, picker, 2)
	assert.Equal(t, AliasStripeIdeal, picker[0].ID)

	all := NewRegistry(Keys{StripePublishableKey: "pk_test", PayPalClientID: "pp"})
	assert.Len(t, all.Methods(available), 4)
	assert.Len(t, all.PickerMethods(), 3)
}

func TestResolveProvider(t *testing.T) {
	available := []medusa.PaymentProvider{{ID: "pp_stripe_stripe"}, {ID: "pp_stripe-ideal_stripe"}, {ID: "pp_paypal_paypal"}}
	r := NewRegistry(Keys{StripePublishableKey: "pk_test"})

	id, err := r.ResolveProvider(AliasStripeIdeal, available)
	require.NoError(t, err)
	assert.Equal(t, "pp_stripe-ideal_stripe", id)

	id, err = r.ResolveProvider(AliasStripe, available)
	require.NoError(t, err)
	assert.Equal(t, "pp_stripe_stripe", id)

	id, err = r.ResolveProvider("pp_stripe_stripe", available)
	require.NoError(t, err)
	assert.Equal(t, "pp_stripe_stripe", id)

	_, err = r.ResolveProvider(AliasPayPal, available)
	assert.ErrorIs(t, err, ErrNotOffered, "paypal key missing")

	_, err = r.ResolveProvider("bitcoin", available)
	assert.ErrorIs(t, err, ErrUnknownMethod)

	_, err = r.ResolveProvider(AliasStripeIdeal, []medusa.PaymentProvider{{ID: "pp_stripe_stripe"}})
	assert.ErrorIs(t, err, ErrNotOffered)
}

func TestStripeWidget(t *testing.T) {
	r := NewRegistry(Keys{StripePublishableKey: "pk_test", StripeAccountID: "acct_1"})
	c := cartWithSessions(medusa.PaymentSession{
		ProviderID: "pp_stripe_stripe", Status: "pending",
		Data: map[string]any{"client_secret": "pi_1_secret"},
	})

	w, err := r.Widget(c, WidgetOptions{PlaceOrderURL: "/nl/checkout/place-order", ReturnURL: "https://shop/nl/checkout/return"})
	require.NoError(t, err)
	assert.Equal(t, "card", w.Kind)

	var cfg StripeConfig
	require.NoError(t, json.Unmarshal([]byte(w.ConfigJSON), &cfg))
	assert.Equal(t, "pk_test", cfg.PublishableKey)
	assert.Equal(t, "acct_1", cfg.AccountID)
	assert.Equal(t, "pi_1_secret", cfg.ClientSecret)
	assert.Equal(t, []string{"card"}, cfg.PaymentMethodTypes)
	assert.Empty(t, cfg.ReturnURL, "card payments confirm in place")
	assert.Equal(t, "Sam Jansen", cfg.BillingDetails.Name)
	assert.Equal(t, "NL", cfg.BillingDetails.Address.Country)
	assert.Equal(t, "shopper@younithy.com", cfg.BillingDetails.Email)
}

func TestIdealWidgetUsesReturnURL(t *testing.T) {
	r := NewRegistry(Keys{StripePublishableKey: "pk_test"})
	c := cartWithSessions(medusa.PaymentSession{ProviderID: "pp_stripe-ideal_stripe", Status: "pending", Data: map[string]any{"client_secret": "s"}})

	w, err := r.Widget(c, WidgetOptions{ReturnURL: "https://shop/nl/checkout/return", NotReady: true})
	require.NoError(t, err)
	assert.Equal(t, "ideal", w.Kind)
	assert.True(t, w.Disabled)

	var cfg StripeConfig
	require.NoError(t, json.Unmarshal([]byte(w.ConfigJSON), &cfg))
	assert.Equal(t, []string{"ideal"}, cfg.PaymentMethodTypes)
	assert.Equal(t, "https://shop/nl/checkout/return", cfg.ReturnURL)
}

func TestPayPalWidget(t *testing.T) {
	r := NewRegistry(Keys{PayPalClientID: "paypal-client"})
	c := cartWithSessions(medusa.PaymentSession{ProviderID: "pp_paypal_paypal", Status: "pending"})

	w, err := r.Widget(c, WidgetOptions{})
	require.NoError(t, err)

	var cfg PayPalConfig
	require.NoError(t, json.Unmarshal([]byte(w.ConfigJSON), &cfg))
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, "capture", cfg.Intent)
	require.Len(t, cfg.PurchaseUnits, 1)
	pu := cfg.PurchaseUnits[0]
	assert.Equal(t, "49.95", pu.Amount.Value)
	require.NotNil(t, pu.Shipping)
	assert.Equal(t, "Sam Jansen", pu.Shipping.Name.FullName)
	assert.Equal(t, "NL", pu.Shipping.Address.CountryCode)
	assert.Equal(t, "Amsterdam", pu.Shipping.Address.AdminArea2)
}

func TestPurchaseUnitWithoutShipping(t *testing.T) {
	pu := BuildPurchaseUnit(&medusa.Cart{ID: "cart_1", Total: 1005})
	assert.Equal(t, "USD", pu.Amount.CurrencyCode)
	assert.Equal(t, "10.05", pu.Amount.Value)
	assert.Nil(t, pu.Shipping)
}

func TestWidgetErrors(t *testing.T) {
	r := NewRegistry(Keys{})
	_, err := r.Widget(cartWithSessions(), WidgetOptions{})
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = r.Widget(cartWithSessions(medusa.PaymentSession{ProviderID: "pp_stripe_stripe", Status: "pending"}), WidgetOptions{})
	assert.ErrorIs(t, err, ErrNotOffered)

	w, err := r.Widget(cartWithSessions(medusa.PaymentSession{ProviderID: "pp_system_default", Status: "pending"}), WidgetOptions{PlaceOrderURL: "/nl/checkout/place-order"})
	require.NoError(t, err)
	assert.Equal(t, "manual", w.Kind)
}

func TestRedirectSucceeded(t *testing.T) {
	assert.True(t, RedirectSucceeded("succeeded"))
	assert.True(t, RedirectSucceeded("processing"))
	assert.False(t, RedirectSucceeded("failed"))
	assert.False(t, RedirectSucceeded(""))
}
