// Package cart is the data layer over the backend cart: every mutation
// forwards to the Store API and invalidates the cart's cache tag.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/LeroySteding/medusajs-yn-railway/internal/cache"
	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/catalog"
)

const MaxQuantity = 99

type Backend interface {
	RetrieveCart(ctx context.Context, id string) (*medusa.Cart, error)
	CreateCart(ctx context.Context, regionID string) (*medusa.Cart, error)
	UpdateCart(ctx context.Context, id string, data medusa.CartUpdate) (*medusa.Cart, error)
	AddLineItem(ctx context.Context, cartID, variantID string, quantity int) (*medusa.Cart, error)
	UpdateLineItem(ctx context.Context, cartID, lineID string, quantity int) (*medusa.Cart, error)
	DeleteLineItem(ctx context.Context, cartID, lineID string) error
	AddShippingMethod(ctx context.Context, cartID, optionID string) (*medusa.Cart, error)
	CompleteCart(ctx context.Context, cartID string) (*medusa.CompleteCartResult, error)
	TransferCart(ctx context.Context, cartID string) (*medusa.Cart, error)
	ListShippingOptions(ctx context.Context, cartID string) ([]medusa.ShippingOption, error)
	ListPaymentProviders(ctx context.Context, regionID string) ([]medusa.PaymentProvider, error)
	InitiatePaymentSession(ctx context.Context, cart *medusa.Cart, providerID string, data map[string]any) (*medusa.PaymentCollection, error)
}

type Catalog interface {
	GetRegion(ctx context.Context, countryCode string) (*medusa.Region, error)
	ProductsByIDs(ctx context.Context, ids []string, regionID string) ([]medusa.Product, error)
}

type Service struct {
	backend  Backend
	catalog  Catalog
	cache    *cache.Cache
	validate *validator.Validate
	logger   *slog.Logger
}

func NewService(backend Backend, cat Catalog, c *cache.Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	v := validator.New()
	v.SetTagName("binding")
	return &Service{backend: backend, catalog: cat, cache: c, validate: v, logger: logger}
}

// logOperation logs start, completion and failure of a cart operation.
func (s *Service) logOperation(ctx context.Context, op string, fn func() error, attrs ...slog.Attr) error {
	start := time.Now()
	s.logger.LogAttrs(ctx, slog.LevelDebug, "cart_op_start", append(attrs, slog.String("op", op))...)
	err := fn()
	attrs = append(attrs, slog.String("op", op), slog.Duration("took", time.Since(start)))
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "cart_op_failed", append(attrs, slog.Any("err", err))...)
		return err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "cart_op_done", attrs...)
	return nil
}

func (s *Service) invalidate(ctx context.Context, cartID string) {
	s.cache.Invalidate(ctx, cache.CartTag(cartID))
}

// Retrieve returns nil without error when there is no cart id or the backend
// no longer knows the cart.
func (s *Service) Retrieve(ctx context.Context, cartID string) (*medusa.Cart, error) {
	if cartID == "" {
		return nil, nil
	}
	c, err := cache.Fetch(ctx, s.cache, "cart:"+cartID, []string{cache.CartTag(cartID)},
		func(ctx context.Context) (*medusa.Cart, error) {
			return s.backend.RetrieveCart(ctx, cartID)
		})
	if medusa.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "cart_retrieve_failed", slog.String("cart_id", cartID), slog.Any("err", err))
		return nil, err
	}
	return c, nil
}

// GetOrSetCart returns the cart for cartID, creating one in the region of
// countryCode when missing. created reports that the caller must persist the
// new id. A cart in another region is moved to the requested region.
func (s *Service) GetOrSetCart(ctx context.Context, cartID, countryCode string) (c *medusa.Cart, created bool, err error) {
	region, err := s.catalog.GetRegion(ctx, countryCode)
	if errors.Is(err, catalog.ErrRegionNotFound) {
		return nil, false, fmt.Errorf("%w for country code: %s", ErrRegionNotFound, countryCode)
	}
	if err != nil {
		return nil, false, err
	}

	c, err = s.Retrieve(ctx, cartID)
	if err != nil {
		return nil, false, err
	}

	if c == nil {
		err = s.logOperation(ctx, "create_cart", func() error {
			c, err = s.backend.CreateCart(ctx, region.ID)
			return err
		}, slog.String("region_id", region.ID))
		if err != nil {
			return nil, false, err
		}
		return c, true, nil
	}

	if c.RegionID != region.ID {
		err = s.logOperation(ctx, "update_cart_region", func() error {
			c, err = s.backend.UpdateCart(ctx, c.ID, medusa.CartUpdate{RegionID: medusa.String(region.ID)})
			return err
		}, slog.String("cart_id", c.ID), slog.String("region_id", region.ID))
		if err != nil {
			return nil, false, err
		}
		s.invalidate(ctx, c.ID)
	}
	return c, false, nil
}

func (s *Service) Update(ctx context.Context, cartID string, data medusa.CartUpdate) (*medusa.Cart, error) {
	if cartID == "" {
		return nil, ErrNoCart
	}
	var c *medusa.Cart
	err := s.logOperation(ctx, "update_cart", func() (err error) {
		c, err = s.backend.UpdateCart(ctx, cartID, data)
		return err
	}, slog.String("cart_id", cartID))
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cartID)
	return c, nil
}

// AddToCart adds quantity of variantID, creating the cart when needed.
// When a new cart was created but the add failed, the new cart is returned
// with created set alongside the error.
func (s *Service) AddToCart(ctx context.Context, cartID, variantID string, quantity int, countryCode string) (c *medusa.Cart, created bool, err error) {
	if variantID == "" {
		return nil, false, ErrMissingVariant
	}
	c, created, err = s.GetOrSetCart(ctx, cartID, countryCode)
	if err != nil {
		return nil, false, err
	}
	quantity = clamp(quantity, 1, MaxQuantity)

	base := c
	err = s.logOperation(ctx, "add_line_item", func() error {
		c, err = s.backend.AddLineItem(ctx, base.ID, variantID, quantity)
		return err
	}, slog.String("cart_id", base.ID), slog.String("variant_id", variantID), slog.Int("quantity", quantity))
	if err != nil {
		// a new cart exists even when the item could not be added; callers
		// persist it so it is not orphaned
		if created {
			return base, true, err
		}
		return nil, false, err
	}
	id := base.ID
	s.invalidate(ctx, id)
	return c, created, nil
}

// UpdateLineItem sets the quantity of a line; zero or less removes it.
func (s *Service) UpdateLineItem(ctx context.Context, cartID, lineID string, quantity int) error {
	if lineID == "" {
		return ErrMissingLineItem
	}
	if cartID == "" {
		return ErrNoCart
	}
	if quantity <= 0 {
		return s.DeleteLineItem(ctx, cartID, lineID)
	}
	quantity = clamp(quantity, 1, MaxQuantity)
	err := s.logOperation(ctx, "update_line_item", func() error {
		_, err := s.backend.UpdateLineItem(ctx, cartID, lineID, quantity)
		return err
	}, slog.String("cart_id", cartID), slog.String("line_id", lineID), slog.Int("quantity", quantity))
	if err != nil {
		return err
	}
	s.invalidate(ctx, cartID)
	return nil
}

func (s *Service) DeleteLineItem(ctx context.Context, cartID, lineID string) error {
	if lineID == "" {
		return ErrMissingLineItem
	}
	if cartID == "" {
		return ErrNoCart
	}
	err := s.logOperation(ctx, "delete_line_item", func() error {
		return s.backend.DeleteLineItem(ctx, cartID, lineID)
	}, slog.String("cart_id", cartID), slog.String("line_id", lineID))
	if err != nil {
		return err
	}
	s.invalidate(ctx, cartID)
	return nil
}

// EnrichLineItems attaches product and variant details to the cart lines.
// Lines whose product is gone keep their backend fields only.
func (s *Service) EnrichLineItems(ctx context.Context, c *medusa.Cart) error {
	if c == nil || len(c.Items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(c.Items))
	ids := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ProductID != "" && !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	products, err := s.catalog.ProductsByIDs(ctx, ids, c.RegionID)
	if err != nil {
		return fmt.Errorf("enrich line items: %w", err)
	}
	byID := make(map[string]*medusa.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range c.Items {
		it := &c.Items[i]
		p, ok := byID[it.ProductID]
		if !ok {
			continue
		}
		it.Product = p
		for j := range p.Variants {
			if p.Variants[j].ID == it.VariantID {
				it.Variant = &p.Variants[j]
				break
			}
		}
	}
	return nil
}

func (s *Service) ShippingOptions(ctx context.Context, cartID string) ([]medusa.ShippingOption, error) {
	if cartID == "" {
		return nil, ErrNoCart
	}
	return s.backend.ListShippingOptions(ctx, cartID)
}

func (s *Service) PaymentProviders(ctx context.Context, regionID string) ([]medusa.PaymentProvider, error) {
	return s.backend.ListPaymentProviders(ctx, regionID)
}

func (s *Service) SetShippingMethod(ctx context.Context, cartID, optionID string) error {
	if cartID == "" || optionID == "" {
		return ErrMissingShipping
	}
	err := s.logOperation(ctx, "set_shipping_method", func() error {
		_, err := s.backend.AddShippingMethod(ctx, cartID, optionID)
		return err
	}, slog.String("cart_id", cartID), slog.String("option_id", optionID))
	if err != nil {
		return shippingError(err)
	}
	s.invalidate(ctx, cartID)
	return nil
}

func shippingError(err error) error {
	if apiErr, ok := medusa.AsError(err); ok {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Status)
		}
		return &ShippingError{Message: "Server error: " + msg, Err: err}
	}
	if medusa.IsTransport(err) {
		return &ShippingError{Message: "No response received from server. Please check your connection.", Err: err}
	}
	return &ShippingError{Message: "Error setting shipping method: " + err.Error(), Err: err}
}

func (s *Service) InitiatePaymentSession(ctx context.Context, c *medusa.Cart, providerID string, data map[string]any) (*medusa.PaymentCollection, error) {
	if c == nil {
		return nil, ErrNoCart
	}
	var pc *medusa.PaymentCollection
	err := s.logOperation(ctx, "initiate_payment_session", func() (err error) {
		pc, err = s.backend.InitiatePaymentSession(ctx, c, providerID, data)
		return err
	}, slog.String("cart_id", c.ID), slog.String("provider_id", providerID))
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, c.ID)
	return pc, nil
}

// ApplyPromotions adds codes to the ones already on the cart.
func (s *Service) ApplyPromotions(ctx context.Context, cartID string, codes ...string) (*medusa.Cart, error) {
	if cartID == "" {
		return nil, ErrNoCart
	}
	current, err := s.Retrieve(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoCart
	}
	merged := current.PromoCodes()
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code != "" && !contains(merged, code) {
			merged = append(merged, code)
		}
	}
	return s.Update(ctx, cartID, medusa.CartUpdate{PromoCodes: medusa.Codes(merged...)})
}

func (s *Service) RemovePromotion(ctx context.Context, cartID, code string) (*medusa.Cart, error) {
	if cartID == "" {
		return nil, ErrNoCart
	}
	current, err := s.Retrieve(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoCart
	}
	kept := []string{}
	for _, c := range current.PromoCodes() {
		if !strings.EqualFold(c, code) {
			kept = append(kept, c)
		}
	}
	return s.Update(ctx, cartID, medusa.CartUpdate{PromoCodes: medusa.Codes(kept...)})
}

// SetEmail stores the checkout email and returns the next location.
func (s *Service) SetEmail(ctx context.Context, cartID string, in EmailInput) (string, error) {
	cc := strings.ToLower(strings.TrimSpace(in.CountryCode))
	if len(cc) < 2 {
		return "", ErrInvalidCountryCode
	}
	email := strings.TrimSpace(in.Email)
	if len(email) < 3 || s.validate.Var(email, "email") != nil {
		return "", ErrInvalidEmail
	}
	if _, err := s.Update(ctx, cartID, medusa.CartUpdate{Email: medusa.String(email)}); err != nil {
		return "", err
	}
	return "/" + cc + "/checkout?step=delivery", nil
}

// SetAddresses stores email plus shipping and billing addresses and returns
// the next location, in the shipping country's storefront.
func (s *Service) SetAddresses(ctx context.Context, cartID string, in AddressInput) (string, error) {
	if cartID == "" {
		return "", ErrNoCart
	}
	if err := s.validate.Struct(in); err != nil {
		return "", err
	}
	email := strings.TrimSpace(in.Email)
	shipping := in.ShippingAddress()
	data := medusa.CartUpdate{
		Email:           &email,
		ShippingAddress: shipping,
		BillingAddress:  in.BillingAddress(),
	}
	if _, err := s.Update(ctx, cartID, data); err != nil {
		return "", err
	}
	return "/" + shipping.CountryCode + "/checkout?step=delivery", nil
}

type PlacedOrder struct {
	Order    *medusa.Order
	Location string
}

// PlaceOrder completes the cart. The confirmation location uses the order's
// shipping country, or fallbackCC without one. The caller must drop the cart
// cookie on success.
func (s *Service) PlaceOrder(ctx context.Context, cartID, fallbackCC string) (*PlacedOrder, error) {
	if cartID == "" {
		return nil, ErrNoCart
	}
	var res *medusa.CompleteCartResult
	err := s.logOperation(ctx, "place_order", func() (err error) {
		res, err = s.backend.CompleteCart(ctx, cartID)
		return err
	}, slog.String("cart_id", cartID))
	s.invalidate(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !res.IsOrder() {
		msg := ""
		if res.Error != nil {
			msg = res.Error.Message
		}
		return nil, &OrderError{Message: msg}
	}

	cc := strings.ToLower(fallbackCC)
	if a := res.Order.ShippingAddress; a != nil && a.CountryCode != "" {
		cc = strings.ToLower(a.CountryCode)
	}
	return &PlacedOrder{
		Order:    res.Order,
		Location: "/" + cc + "/order/confirmed/" + res.Order.ID,
	}, nil
}

// UpdateRegion moves the cart (if any) to the region of countryCode and
// returns currentPath under the new country prefix.
func (s *Service) UpdateRegion(ctx context.Context, cartID, countryCode, currentPath string) (string, error) {
	cc := strings.ToLower(strings.TrimSpace(countryCode))
	region, err := s.catalog.GetRegion(ctx, cc)
	if errors.Is(err, catalog.ErrRegionNotFound) {
		return "", fmt.Errorf("%w for country code: %s", ErrRegionNotFound, cc)
	}
	if err != nil {
		return "", err
	}
	if cartID != "" {
		if _, err := s.Update(ctx, cartID, medusa.CartUpdate{RegionID: medusa.String(region.ID)}); err != nil {
			return "", err
		}
	}
	s.cache.Invalidate(ctx, cache.TagRegions, cache.TagProducts)
	return "/" + cc + currentPath, nil
}

// Transfer binds the cart to the customer whose token is in ctx.
func (s *Service) Transfer(ctx context.Context, cartID string) error {
	if cartID == "" {
		return nil
	}
	err := s.logOperation(ctx, "transfer_cart", func() error {
		_, err := s.backend.TransferCart(ctx, cartID)
		return err
	}, slog.String("cart_id", cartID))
	if err != nil {
		return err
	}
	s.invalidate(ctx, cartID)
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
