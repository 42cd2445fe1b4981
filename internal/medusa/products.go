package medusa

import (
	"context"
	"net/url"
	"strconv"
)

const productFields = "*variants.calculated_price,+variants.inventory_quantity,*collection,*images,*options.values"

func (q ProductQuery) values() url.Values {
	v := url.Values{"fields": {productFields}}
	for _, id := range q.IDs {
		v.Add("id[]", id)
	}
	if q.Handle != "" {
		v.Set("handle", q.Handle)
	}
	if q.CategoryID != "" {
		v.Add("category_id[]", q.CategoryID)
	}
	if q.CollectionID != "" {
		v.Add("collection_id[]", q.CollectionID)
	}
	if q.RegionID != "" {
		v.Set("region_id", q.RegionID)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	return v
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*ProductList, error) {
	var out ProductList
	if err := c.get(ctx, "products.list", "/store/products", q.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var env struct {
		ProductCategories []Category `json:"product_categories"`
	}
	q := url.Values{"fields": {"*category_children"}, "limit": {"100"}}
	if err := c.get(ctx, "categories.list", "/store/product-categories", q, &env); err != nil {
		return nil, err
	}
	return env.ProductCategories, nil
}

// CategoriesByHandle returns the categories matching handle (normally zero or one).
func (c *Client) CategoriesByHandle(ctx context.Context, handle string) ([]Category, error) {
	var env struct {
		ProductCategories []Category `json:"product_categories"`
	}
	q := url.Values{"handle": {handle}, "fields": {"*category_children"}}
	if err := c.get(ctx, "categories.by_handle", "/store/product-categories", q, &env); err != nil {
		return nil, err
	}
	return env.ProductCategories, nil
}

func (c *Client) ListCollections(ctx context.Context, handle string) ([]Collection, error) {
	var env struct {
		Collections []Collection `json:"collections"`
	}
	q := url.Values{"limit": {"100"}}
	if handle != "" {
		q.Set("handle", handle)
	}
	if err := c.get(ctx, "collections.list", "/store/collections", q, &env); err != nil {
		return nil, err
	}
	return env.Collections, nil
}
