package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
)

// fakeStore is an in-memory Store API with one region, one category and
// one product in two variants.
type fakeStore struct {
	mu           sync.Mutex
	regions      []medusa.Region
	categories   []medusa.Category
	collections  []medusa.Collection
	products     []medusa.Product
	shipping     []medusa.ShippingOption
	providers    []medusa.PaymentProvider
	carts        map[string]*medusa.Cart
	orders       map[string]*medusa.Order
	nextID       int
	completeFail string
	mux          *http.ServeMux
}

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()
	created := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	price := func(amount medusa.Amount) *medusa.CalculatedPrice {
		return &medusa.CalculatedPrice{CalculatedAmount: amount, OriginalAmount: amount, CurrencyCode: "eur"}
	}
	col := &medusa.Collection{ID: "pcol_1", Title: "Summer", Handle: "summer"}

	f := &fakeStore{
		regions: []medusa.Region{
			{ID: "reg_eu", Name: "Europe", CurrencyCode: "eur", Countries: []medusa.Country{
				{ISO2: "nl", DisplayName: "Netherlands"},
				{ISO2: "de", DisplayName: "Germany"},
			}},
		},
		categories:  []medusa.Category{{ID: "pcat_1", Name: "Shirts", Handle: "shirts", Description: "All shirts"}},
		collections: []medusa.Collection{*col},
		products: []medusa.Product{
			{
				ID: "prod_1", Title: "Linen Tee", Handle: "linen-tee", Thumbnail: "/img/tee.jpg",
				CollectionID: col.ID, Collection: col, CreatedAt: &created,
				Variants: []medusa.Variant{
					{ID: "variant_s", Title: "S", CalculatedPrice: price(2500)},
					{ID: "variant_m", Title: "M", CalculatedPrice: price(2700), ManageInventory: true},
				},
			},
			{
				ID: "prod_2", Title: "Canvas Tote", Handle: "canvas-tote", CollectionID: col.ID, Collection: col, CreatedAt: &created,
				Variants: []medusa.Variant{{ID: "variant_tote", Title: "One size", CalculatedPrice: price(1500)}},
			},
		},
		shipping: []medusa.ShippingOption{{ID: "so_standard", Name: "Standard", Amount: 495}},
		providers: []medusa.PaymentProvider{
			{ID: "pp_stripe_stripe", IsEnabled: true},
			{ID: "pp_stripe-ideal_stripe", IsEnabled: true},
			{ID: "pp_system_default", IsEnabled: true},
		},
		carts:  map[string]*medusa.Cart{},
		orders: map[string]*medusa.Order{},
	}
	f.routes()
	return f
}

func (f *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusNotFound, map[string]string{"type": "not_found", "message": what + " not found"})
}

func (f *fakeStore) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s_%d", prefix, f.nextID)
}

func (f *fakeStore) variant(id string) (*medusa.Product, *medusa.Variant) {
	for i := range f.products {
		for j := range f.products[i].Variants {
			if f.products[i].Variants[j].ID == id {
				return &f.products[i], &f.products[i].Variants[j]
			}
		}
	}
	return nil, nil
}

func (f *fakeStore) recalc(c *medusa.Cart) {
	var sub medusa.Amount
	for i := range c.Items {
		it := &c.Items[i]
		it.Subtotal = it.UnitPrice * medusa.Amount(it.Quantity)
		it.Total = it.Subtotal
		sub += it.Subtotal
	}
	var ship medusa.Amount
	for _, m := range c.ShippingMethods {
		ship += m.Amount
	}
	c.Subtotal, c.ItemSubtotal, c.ShippingTotal = sub, sub, ship
	c.Total = sub + ship
}

func (f *fakeStore) cart(w http.ResponseWriter, r *http.Request) *medusa.Cart {
	c, ok := f.carts[r.PathValue("id")]
	if !ok {
		notFound(w, "Cart")
		return nil
	}
	return c
}

func (f *fakeStore) writeCart(w http.ResponseWriter, c *medusa.Cart) {
	f.recalc(c)
	writeJSON(w, http.StatusOK, map[string]any{"cart": c})
}

func (f *fakeStore) routes() {
	m := http.NewServeMux()

	m.HandleFunc("GET /store/regions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"regions": f.regions})
	})
	m.HandleFunc("GET /store/product-categories", func(w http.ResponseWriter, r *http.Request) {
		out := []medusa.Category{}
		for _, c := range f.categories {
			if h := r.URL.Query().Get("handle"); h == "" || h == c.Handle {
				out = append(out, c)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"product_categories": out})
	})
	m.HandleFunc("GET /store/collections", func(w http.ResponseWriter, r *http.Request) {
		out := []medusa.Collection{}
		for _, c := range f.collections {
			if h := r.URL.Query().Get("handle"); h == "" || h == c.Handle {
				out = append(out, c)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"collections": out})
	})
	m.HandleFunc("GET /store/products", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		ids := q["id[]"]
		out := []medusa.Product{}
		for _, p := range f.products {
			if h := q.Get("handle"); h != "" && h != p.Handle {
				continue
			}
			if len(ids) > 0 && !containsString(ids, p.ID) {
				continue
			}
			if cid := q.Get("collection_id[]"); cid != "" && cid != p.CollectionID {
				continue
			}
			out = append(out, p)
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": out, "count": len(out), "offset": 0, "limit": 12})
	})

	m.HandleFunc("POST /store/carts", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			RegionID string `json:"region_id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		c := &medusa.Cart{ID: f.id("cart"), RegionID: body.RegionID, Region: &f.regions[0], CurrencyCode: "eur"}
		f.carts[c.ID] = c
		f.writeCart(w, c)
	})
	m.HandleFunc("GET /store/carts/{id}", func(w http.ResponseWriter, r *http.Request) {
		if c := f.cart(w, r); c != nil {
			f.writeCart(w, c)
		}
	})
	m.HandleFunc("POST /store/carts/{id}", func(w http.ResponseWriter, r *http.Request) {
		c := f.cart(w, r)
		if c == nil {
			return
		}
		var up medusa.CartUpdate
		_ = json.NewDecoder(r.Body).Decode(&up)
		if up.Email != nil {
			c.Email = *up.Email
		}
		if up.ShippingAddress != nil {
			c.ShippingAddress = up.ShippingAddress
		}
		if up.BillingAddress != nil {
			c.BillingAddress = up.BillingAddress
		}
		if up.RegionID != nil {
			c.RegionID = *up.RegionID
		}
		if up.PromoCodes != nil {
			c.Promotions = nil
			for _, code := range *up.PromoCodes {
				if code == "WELCOME10" {
					c.Promotions = append(c.Promotions, medusa.Promotion{ID: "promo_1", Code: code})
				}
			}
		}
		f.writeCart(w, c)
	})
	m.HandleFunc("POST /store/carts/{id}/line-items", func(w http.ResponseWriter, r *http.Request) {
		c := f.cart(w, r)
		if c == nil {
			return
		}
		var body struct {
			VariantID string `json:"variant_id"`
			Quantity  int    `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		p, v := f.variant(body.VariantID)
		if v == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"type": "invalid_data", "message": "Variant does not exist"})
			return
		}
		for i := range c.Items {
			if c.Items[i].VariantID == v.ID {
				c.Items[i].Quantity += body.Quantity
				f.writeCart(w, c)
				return
			}
		}
		c.Items = append(c.Items, medusa.LineItem{
			ID: f.id("item"), Title: p.Title, ProductTitle: p.Title, ProductID: p.ID, ProductHandle: p.Handle,
			VariantID: v.ID, VariantTitle: v.Title, Quantity: body.Quantity, UnitPrice: v.CalculatedPrice.CalculatedAmount,
		})
		f.writeCart(w, c)
	})
	m.HandleFunc("POST /store/carts/{id}/line-items/{line}", func(w http.ResponseWriter, r *http.Request) {
		c := f.cart(w, r)
		if c == nil {
			return
		}
		var body struct {
			Quantity int `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		for i := range c.Items {
			if c.Items[i].ID == r.PathValue("line") {
				c.Items[i].Quantity = body.Quantity
			}
		}
		f.writeCart(w, c)
	})
	m.HandleFunc("DELETE /store/carts/{id}/line-items/{line}", func(w http.ResponseWriter, r *http.Request) {
		c := f.cart(w, r)
		if c == nil {
			return
		}
		kept := c.Items[:0]
		for _, it := range c.Items {
			if it.ID != r.PathValue("line") {
				kept = append(kept, it)
			}
		}
		c.Items = kept
		writeJSON(w, http.StatusOK, map[string]any{"id": r.PathValue("line"), "deleted": true})
	})
	m.HandleFunc("POST /store/carts/{id}/shipping-methods", func(w http.ResponseWriter, r *http.Request) {
		c := f.cart(w, r)
		if c == nil {
			return
		}
		var body struct {
			OptionID string `json:"option_id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		for _, o := range f.shipping {
			if o.ID == body.OptionID {
				c.ShippingMethods = []medusa.ShippingMethod{{ID: f.id("sm"), Name: o.Name, ShippingOptionID: o.ID, Amount: o.Amount}}
				f.writeCart(w, c)
				return
			}
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"type": "invalid_data", "message": "Shipping option is not valid"})
	})
	m.HandleFunc("POST /store/carts/{id}/complete", func(w http.ResponseWriter, r *http.Request) {
		c := f.cart(w, r)
		if c == nil {
			return
		}
		f.recalc(c)
		if f.completeFail != "" {
			writeJSON(w, http.StatusOK, map[string]any{"type": "cart", "cart": c, "error": map[string]string{"message": f.completeFail}})
			return
		}
		o := &medusa.Order{
			ID: "order_1", DisplayID: 1001, Email: c.Email, CurrencyCode: "eur", Items: c.Items,
			ShippingAddress: c.ShippingAddress, BillingAddress: c.BillingAddress, ShippingMethods: c.ShippingMethods,
			Subtotal: c.Subtotal, ShippingTotal: c.ShippingTotal, Total: c.Total,
			CreatedAt: time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC),
		}
		f.orders[o.ID] = o
		delete(f.carts, c.ID)
		writeJSON(w, http.StatusOK, map[string]any{"type": "order", "order": o})
	})
	m.HandleFunc("POST /store/carts/{id}/customer", func(w http.ResponseWriter, r *http.Request) {
		c := f.cart(w, r)
		if c == nil {
			return
		}
		if r.Header.Get("Authorization") != "Bearer jwt_1" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"type": "unauthorized", "message": "Unauthorized"})
			return
		}
		c.CustomerID = "cus_1"
		f.writeCart(w, c)
	})

	m.HandleFunc("GET /store/shipping-options", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"shipping_options": f.shipping})
	})
	m.HandleFunc("GET /store/payment-providers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"payment_providers": f.providers})
	})
	m.HandleFunc("POST /store/payment-collections", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			CartID string `json:"cart_id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		c, ok := f.carts[body.CartID]
		if !ok {
			notFound(w, "Cart")
			return
		}
		c.PaymentCollection = &medusa.PaymentCollection{ID: f.id("paycol")}
		writeJSON(w, http.StatusOK, map[string]any{"payment_collection": c.PaymentCollection})
	})
	m.HandleFunc("POST /store/payment-collections/{id}/payment-sessions", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ProviderID string `json:"provider_id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		for _, c := range f.carts {
			if c.PaymentCollection == nil || c.PaymentCollection.ID != r.PathValue("id") {
				continue
			}
			f.recalc(c)
			c.PaymentCollection.PaymentSessions = []medusa.PaymentSession{{
				ID: f.id("payses"), ProviderID: body.ProviderID, Status: "pending", Amount: c.Total,
				Data: map[string]any{"client_secret": "pi_secret_" + body.ProviderID},
			}}
			writeJSON(w, http.StatusOK, map[string]any{"payment_collection": c.PaymentCollection})
			return
		}
		notFound(w, "Payment collection")
	})

	m.HandleFunc("GET /store/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		o, ok := f.orders[r.PathValue("id")]
		if !ok {
			notFound(w, "Order")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"order": o})
	})

	m.HandleFunc("POST /auth/customer/emailpass", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "jane@example.com" || body.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"type": "unauthorized", "message": "Invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": "jwt_1"})
	})
	m.HandleFunc("GET /store/customers/me", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.Header.Get("Authorization"), "jwt_1") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"type": "unauthorized", "message": "Unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"customer": medusa.Customer{ID: "cus_1", Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"}})
	})

	f.mux = m
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// cartByID returns a copy of the stored cart, or an empty cart.
func (f *fakeStore) cartByID(id string) medusa.Cart {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.carts[id]; ok {
		return *c
	}
	return medusa.Cart{}
}

func (f *fakeStore) failCompletion(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completeFail = msg
}
