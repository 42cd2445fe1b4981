package medusa

import (
	"context"
	"net/http"
	"net/url"
)

const cartFields = "*items,*region,*items.product,*items.variant,+items.thumbnail,*promotions,*shipping_methods,*payment_collection.payment_sessions"

type cartEnvelope struct {
	Cart Cart `json:"cart"`
}

func cartQuery() url.Values {
	return url.Values{"fields": {cartFields}}
}

func (c *Client) RetrieveCart(ctx context.Context, id string) (*Cart, error) {
	var env cartEnvelope
	if err := c.get(ctx, "carts.retrieve", idPath("/store/carts/%s", id), cartQuery(), &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

func (c *Client) CreateCart(ctx context.Context, regionID string) (*Cart, error) {
	var env cartEnvelope
	body := map[string]string{"region_id": regionID}
	if err := c.post(ctx, "carts.create", "/store/carts", cartQuery(), body, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

func (c *Client) UpdateCart(ctx context.Context, id string, data CartUpdate) (*Cart, error) {
	var env cartEnvelope
	if err := c.post(ctx, "carts.update", idPath("/store/carts/%s", id), cartQuery(), data, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

func (c *Client) AddLineItem(ctx context.Context, cartID, variantID string, quantity int) (*Cart, error) {
	var env cartEnvelope
	body := map[string]any{"variant_id": variantID, "quantity": quantity}
	if err := c.post(ctx, "carts.line_items.create", idPath("/store/carts/%s/line-items", cartID), cartQuery(), body, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

func (c *Client) UpdateLineItem(ctx context.Context, cartID, lineID string, quantity int) (*Cart, error) {
	var env cartEnvelope
	body := map[string]any{"quantity": quantity}
	if err := c.post(ctx, "carts.line_items.update", idPath("/store/carts/%s/line-items/%s", cartID, lineID), cartQuery(), body, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

func (c *Client) DeleteLineItem(ctx context.Context, cartID, lineID string) error {
	return c.do(ctx, "carts.line_items.delete", http.MethodDelete, idPath("/store/carts/%s/line-items/%s", cartID, lineID), nil, nil, nil)
}

func (c *Client) AddShippingMethod(ctx context.Context, cartID, optionID string) (*Cart, error) {
	var env cartEnvelope
	body := map[string]string{"option_id": optionID}
	if err := c.post(ctx, "carts.shipping_methods.create", idPath("/store/carts/%s/shipping-methods", cartID), cartQuery(), body, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

// CompleteCart turns the cart into an order. A payment that is not yet
// authorized yields a result of type "cart" with an error message.
func (c *Client) CompleteCart(ctx context.Context, cartID string) (*CompleteCartResult, error) {
	var res CompleteCartResult
	if err := c.post(ctx, "carts.complete", idPath("/store/carts/%s/complete", cartID), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// TransferCart assigns the cart to the customer of the context token.
func (c *Client) TransferCart(ctx context.Context, cartID string) (*Cart, error) {
	var env cartEnvelope
	if err := c.post(ctx, "carts.transfer", idPath("/store/carts/%s/customer", cartID), nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}
