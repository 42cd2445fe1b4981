package medusa

import (
	"context"
	"net/url"
)

func (c *Client) ListRegions(ctx context.Context) ([]Region, error) {
	var env struct {
		Regions []Region `json:"regions"`
	}
	q := url.Values{"fields": {"*countries"}}
	if err := c.get(ctx, "regions.list", "/store/regions", q, &env); err != nil {
		return nil, err
	}
	return env.Regions, nil
}

func (c *Client) RetrieveRegion(ctx context.Context, id string) (*Region, error) {
	var env struct {
		Region Region `json:"region"`
	}
	q := url.Values{"fields": {"*countries"}}
	if err := c.get(ctx, "regions.retrieve", idPath("/store/regions/%s", id), q, &env); err != nil {
		return nil, err
	}
	return &env.Region, nil
}
