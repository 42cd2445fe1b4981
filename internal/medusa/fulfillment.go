package medusa

import (
	"context"
	"net/url"
)

func (c *Client) ListShippingOptions(ctx context.Context, cartID string) ([]ShippingOption, error) {
	var env struct {
		ShippingOptions []ShippingOption `json:"shipping_options"`
	}
	q := url.Values{"cart_id": {cartID}}
	if err := c.get(ctx, "shipping_options.list", "/store/shipping-options", q, &env); err != nil {
		return nil, err
	}
	return env.ShippingOptions, nil
}
