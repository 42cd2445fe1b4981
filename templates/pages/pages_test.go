package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestCartBadge(t *testing.T) {
	got := renderString(t, CartBadge("nl", 3))
	assert.Equal(t, `<a href="/nl/cart" class="cart-link">Cart (3)</a>`, got)
}

func TestBase_WrapsChildren(t *testing.T) {
	l := view.Layout{Title: "Cart", CountryCode: "de", CartCount: 1, Year: 2026,
		Flash: &view.Flash{Kind: view.FlashSuccess, Message: "Added to cart"}}
	body := component(func(o *out) { o.raw(`<p id="body">hi</p>`) })

	got := renderString(t, page(l, body, nil))

	assert.Contains(t, got, "<title>Cart | Store</title>")
	assert.Contains(t, got, `<main><p id="body">hi</p></main>`)
	assert.Contains(t, got, `<div class="flash flash-success" role="status">Added to cart</div>`)
	assert.Contains(t, got, "Cart (1)")
	assert.Contains(t, got, "Sign in")
	assert.Contains(t, got, "&copy; 2026 Store")
}

func TestProduct_EscapesBackendText(t *testing.T) {
	p := view.ProductDetailPage{
		Layout: view.Layout{CountryCode: "nl"},
		Product: view.ProductDetail{
			Title:       `<script>alert("x")</script>`,
			Description: "Soft & light",
			Variants: []view.VariantChoice{
				{ID: "v1", Title: "S", Price: "€25.00", InStock: true, Selected: true},
				{ID: "v2", Title: "M", Price: "€27.00"},
			},
		},
	}
	got := renderString(t, Product(p))

	assert.NotContains(t, got, "<script>alert")
	assert.Contains(t, got, "&lt;script&gt;")
	assert.Contains(t, got, "Soft &amp; light")
	assert.Contains(t, got, `value="v1" checked>`)
	assert.Contains(t, got, `value="v2" disabled>`)
	assert.Contains(t, got, "(out of stock)")
}

func TestURLAttributesAreSanitized(t *testing.T) {
	got := renderString(t, productCard(view.ProductCard{Title: "Tee", Href: "javascript:alert(1)", Price: "€1.00"}))
	assert.NotContains(t, got, "javascript:")
	assert.Contains(t, got, string(templ.URL("javascript:alert(1)")))
}

func TestProductGrid_Empty(t *testing.T) {
	assert.Contains(t, renderString(t, productGrid(nil)), "No products found.")
}

func TestCheckout_StepsAndWidget(t *testing.T) {
	p := view.CheckoutPage{
		Layout: view.Layout{CountryCode: "nl"},
		Step:   "review",
		Steps: []view.CheckoutStep{
			{Name: "address", Label: "Address", Href: "/nl/checkout?step=address", Done: true},
			{Name: "review", Label: "Review", Active: true},
		},
		Widget:     &view.PaymentWidget{Kind: "card", ConfigJSON: `{"key":"pk"}`},
		ActionBase: "/nl/checkout",
	}
	got := renderString(t, Checkout(p))

	assert.Contains(t, got, `<li class="done"><a href="/nl/checkout?step=address">Address</a></li>`)
	assert.Contains(t, got, `<li class="active">Review</li>`)
	assert.Contains(t, got, `data-kind="card"`)
	assert.Contains(t, got, `data-config="{&#34;key&#34;:&#34;pk&#34;}"`)
	assert.Contains(t, got, `<script src="https://js.stripe.com/v3/"></script>`)
	assert.Contains(t, got, `action="/nl/checkout/place-order"`)
}

func TestAddressFields_BillingHiddenWhenSame(t *testing.T) {
	countries := []view.RegionOption{{CountryCode: "nl", Label: "Netherlands", Selected: true}, {CountryCode: "de", Label: "Germany"}}

	got := renderString(t, addressFields(view.AddressForm{SameAsBilling: true}, countries, nil))
	assert.Contains(t, got, `<fieldset class="address billing" hidden>`)
	assert.Contains(t, got, `<option value="nl" selected>Netherlands</option>`)

	got = renderString(t, addressFields(view.AddressForm{BillingCountryCode: "de"}, countries,
		map[string]string{"billing_address.city": "City is required"}))
	assert.Contains(t, got, `<fieldset class="address billing">`)
	assert.Contains(t, got, `<option value="de" selected>Germany</option>`)
	assert.Contains(t, got, `<span class="field-error">City is required</span>`)
}
