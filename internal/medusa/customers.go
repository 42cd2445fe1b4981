package medusa

import (
	"context"
	"net/url"
)

// Login exchanges email and password for a customer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var env struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "auth.customer.login", "/auth/customer/emailpass", nil, body, &env); err != nil {
		return "", err
	}
	return env.Token, nil
}

// RetrieveCustomer needs a token in ctx (see WithToken).
func (c *Client) RetrieveCustomer(ctx context.Context) (*Customer, error) {
	var env struct {
		Customer Customer `json:"customer"`
	}
	q := url.Values{"fields": {"*addresses"}}
	if err := c.get(ctx, "customers.me", "/store/customers/me", q, &env); err != nil {
		return nil, err
	}
	return &env.Customer, nil
}
