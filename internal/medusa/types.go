package medusa

import "time"

type Country struct {
	ID          string `json:"id,omitempty"`
	ISO2        string `json:"iso_2"`
	ISO3        string `json:"iso_3,omitempty"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

type Region struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CurrencyCode string    `json:"currency_code"`
	Countries    []Country `json:"countries"`
}

type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type CalculatedPrice struct {
	CalculatedAmount Amount `json:"calculated_amount"`
	OriginalAmount   Amount `json:"original_amount"`
	CurrencyCode     string `json:"currency_code"`
	CalculatedPrice  struct {
		PriceListType string `json:"price_list_type"`
	} `json:"calculated_price"`
}

type VariantOption struct {
	ID       string `json:"id"`
	Value    string `json:"value"`
	OptionID string `json:"option_id"`
}

type Variant struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	SKU               string           `json:"sku,omitempty"`
	ProductID         string           `json:"product_id,omitempty"`
	ManageInventory   bool             `json:"manage_inventory"`
	AllowBackorder    bool             `json:"allow_backorder"`
	InventoryQuantity int              `json:"inventory_quantity"`
	Options           []VariantOption  `json:"options,omitempty"`
	CalculatedPrice   *CalculatedPrice `json:"calculated_price,omitempty"`
}

// InStock reports whether the variant can be added to a cart.
func (v Variant) InStock() bool {
	return !v.ManageInventory || v.AllowBackorder || v.InventoryQuantity > 0
}

type ProductOption struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Values []struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"values"`
}

type Product struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Subtitle     string          `json:"subtitle,omitempty"`
	Handle       string          `json:"handle"`
	Description  string          `json:"description,omitempty"`
	Thumbnail    string          `json:"thumbnail,omitempty"`
	CollectionID string          `json:"collection_id,omitempty"`
	Collection   *Collection     `json:"collection,omitempty"`
	Images       []Image         `json:"images,omitempty"`
	Options      []ProductOption `json:"options,omitempty"`
	Variants     []Variant       `json:"variants,omitempty"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
}

type Category struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Handle           string     `json:"handle"`
	Description      string     `json:"description,omitempty"`
	ParentCategoryID string     `json:"parent_category_id,omitempty"`
	CategoryChildren []Category `json:"category_children,omitempty"`
}

type Collection struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

type Address struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Company     string `json:"company"`
	Address1    string `json:"address_1"`
	Address2    string `json:"address_2"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Province    string `json:"province"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
}

// Empty is true for addresses the backend returned without a street line.
func (a *Address) Empty() bool {
	return a == nil || a.Address1 == ""
}

type LineItem struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle,omitempty"`
	Thumbnail     string     `json:"thumbnail,omitempty"`
	Quantity      int        `json:"quantity"`
	UnitPrice     Amount     `json:"unit_price"`
	Subtotal      Amount     `json:"subtotal"`
	Total         Amount     `json:"total"`
	VariantID     string     `json:"variant_id"`
	ProductID     string     `json:"product_id"`
	ProductTitle  string     `json:"product_title,omitempty"`
	ProductHandle string     `json:"product_handle,omitempty"`
	VariantTitle  string     `json:"variant_title,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`

	// Set by the cart layer from the product listing, never sent by the backend.
	Variant *Variant `json:"-"`
	Product *Product `json:"-"`
}

type ShippingMethod struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ShippingOptionID string `json:"shipping_option_id"`
	Amount           Amount `json:"amount"`
}

type PaymentSession struct {
	ID         string         `json:"id"`
	ProviderID string         `json:"provider_id"`
	Status     string         `json:"status"`
	Amount     Amount         `json:"amount"`
	Data       map[string]any `json:"data"`
}

// ClientSecret returns the Stripe client secret stored in the session data.
func (s PaymentSession) ClientSecret() string {
	if v, ok := s.Data["client_secret"].(string); ok {
		return v
	}
	return ""
}

type PaymentCollection struct {
	ID              string           `json:"id"`
	Status          string           `json:"status,omitempty"`
	Amount          Amount           `json:"amount,omitempty"`
	PaymentSessions []PaymentSession `json:"payment_sessions"`
}

type Promotion struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

type Cart struct {
	ID                string             `json:"id"`
	Email             string             `json:"email"`
	CustomerID        string             `json:"customer_id,omitempty"`
	RegionID          string             `json:"region_id"`
	Region            *Region            `json:"region,omitempty"`
	CurrencyCode      string             `json:"currency_code"`
	Items             []LineItem         `json:"items"`
	ShippingAddress   *Address           `json:"shipping_address"`
	BillingAddress    *Address           `json:"billing_address"`
	ShippingMethods   []ShippingMethod   `json:"shipping_methods"`
	PaymentCollection *PaymentCollection `json:"payment_collection"`
	Promotions        []Promotion        `json:"promotions"`
	Subtotal          Amount             `json:"subtotal"`
	ItemSubtotal      Amount             `json:"item_subtotal"`
	ShippingTotal     Amount             `json:"shipping_total"`
	DiscountTotal     Amount             `json:"discount_total"`
	TaxTotal          Amount             `json:"tax_total"`
	Total             Amount             `json:"total"`
	CompletedAt       *time.Time         `json:"completed_at,omitempty"`
}

// Currency prefers the region currency, as prices are quoted per region.
func (c *Cart) Currency() string {
	if c.Region != nil && c.Region.CurrencyCode != "" {
		return c.Region.CurrencyCode
	}
	return c.CurrencyCode
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// PromoCodes lists the codes currently applied to the cart.
func (c *Cart) PromoCodes() []string {
	out := make([]string, 0, len(c.Promotions))
	for _, p := range c.Promotions {
		if p.Code != "" {
			out = append(out, p.Code)
		}
	}
	return out
}

type ShippingOption struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Amount     Amount `json:"amount"`
	PriceType  string `json:"price_type"`
	ProviderID string `json:"provider_id,omitempty"`
}

type PaymentProvider struct {
	ID        string `json:"id"`
	IsEnabled bool   `json:"is_enabled"`
}

type Order struct {
	ID              string           `json:"id"`
	DisplayID       int              `json:"display_id"`
	Email           string           `json:"email"`
	Status          string           `json:"status"`
	CurrencyCode    string           `json:"currency_code"`
	Items           []LineItem       `json:"items"`
	ShippingAddress *Address         `json:"shipping_address"`
	BillingAddress  *Address         `json:"billing_address"`
	ShippingMethods []ShippingMethod `json:"shipping_methods"`
	Subtotal        Amount           `json:"subtotal"`
	ShippingTotal   Amount           `json:"shipping_total"`
	DiscountTotal   Amount           `json:"discount_total"`
	TaxTotal        Amount           `json:"tax_total"`
	Total           Amount           `json:"total"`
	CreatedAt       time.Time        `json:"created_at"`
}

type Customer struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Addresses []Address `json:"addresses,omitempty"`
}

// CompleteCartResult is either an order or the cart with the reason it
// could not be completed.
type CompleteCartResult struct {
	Type  string `json:"type"`
	Order *Order `json:"order,omitempty"`
	Cart  *Cart  `json:"cart,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Name    string `json:"name"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (r CompleteCartResult) IsOrder() bool { return r.Type == "order" && r.Order != nil }

// CartUpdate is the partial body for POST /store/carts/{id}. Nil fields are omitted;
// a non-nil empty PromoCodes clears every applied code.
type CartUpdate struct {
	RegionID        *string   `json:"region_id,omitempty"`
	Email           *string   `json:"email,omitempty"`
	ShippingAddress *Address  `json:"shipping_address,omitempty"`
	BillingAddress  *Address  `json:"billing_address,omitempty"`
	PromoCodes      *[]string `json:"promo_codes,omitempty"`
}

func String(s string) *string { return &s }

func Codes(codes ...string) *[]string {
	if codes == nil {
		codes = []string{}
	}
	return &codes
}

// ProductQuery filters the product listing.
type ProductQuery struct {
	IDs          []string
	Handle       string
	CategoryID   string
	CollectionID string
	RegionID     string
	Limit        int
	Offset       int
	Order        string
}

type ProductList struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
	Offset   int       `json:"offset"`
	Limit    int       `json:"limit"`
}
