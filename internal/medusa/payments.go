package medusa

import (
	"context"
	"net/url"
)

func (c *Client) ListPaymentProviders(ctx context.Context, regionID string) ([]PaymentProvider, error) {
	var env struct {
		PaymentProviders []PaymentProvider `json:"payment_providers"`
	}
	q := url.Values{"region_id": {regionID}}
	if err := c.get(ctx, "payment_providers.list", "/store/payment-providers", q, &env); err != nil {
		return nil, err
	}
	return env.PaymentProviders, nil
}

type paymentCollectionEnvelope struct {
	PaymentCollection PaymentCollection `json:"payment_collection"`
}

// InitiatePaymentSession creates the cart's payment collection when missing,
// then a session for providerID. data is passed to the provider as-is.
func (c *Client) InitiatePaymentSession(ctx context.Context, cart *Cart, providerID string, data map[string]any) (*PaymentCollection, error) {
	collectionID := ""
	if cart.PaymentCollection != nil {
		collectionID = cart.PaymentCollection.ID
	}
	if collectionID == "" {
		var env paymentCollectionEnvelope
		body := map[string]string{"cart_id": cart.ID}
		if err := c.post(ctx, "payment_collections.create", "/store/payment-collections", nil, body, &env); err != nil {
			return nil, err
		}
		collectionID = env.PaymentCollection.ID
	}

	body := map[string]any{"provider_id": providerID}
	if len(data) > 0 {
		body["data"] = data
	}
	var env paymentCollectionEnvelope
	q := url.Values{"fields": {"*payment_sessions"}}
	if err := c.post(ctx, "payment_sessions.create", idPath("/store/payment-collections/%s/payment-sessions", collectionID), q, body, &env); err != nil {
		return nil, err
	}
	return &env.PaymentCollection, nil
}
