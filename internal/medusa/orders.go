package medusa

import (
	"context"
	"net/url"
)

func (c *Client) RetrieveOrder(ctx context.Context, id string) (*Order, error) {
	var env struct {
		Order Order `json:"order"`
	}
	q := url.Values{"fields": {"*items,*shipping_address,*shipping_methods"}}
	if err := c.get(ctx, "orders.retrieve", idPath("/store/orders/%s", id), q, &env); err != nil {
		return nil, err
	}
	return &env.Order, nil
}
