package pages

import (
	"github.com/a-h/templ"

	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

// countryOptions renders <option>s. With an empty match the options'
// own Selected flags apply.
func countryOptions(opts []view.RegionOption, match string) templ.Component {
	return component(func(o *out) {
		for _, opt := range opts {
			sel := opt.Selected
			if match != "" {
				sel = opt.CountryCode == match
			}
			o.raw("<option")
			o.attr("value", opt.CountryCode)
			o.flag("selected", sel)
			o.raw(">")
			o.text(opt.Label)
			o.raw("</option>")
		}
	})
}

func linkList(class string, links []view.Link) templ.Component {
	return component(func(o *out) {
		o.raw("<ul")
		o.class(class)
		o.raw(">")
		for _, l := range links {
			o.raw("<li>")
			o.render(anchor(l.Href, l.Label))
			o.raw("</li>")
		}
		o.raw("</ul>")
	})
}

func fieldError(errs map[string]string, key string) templ.Component {
	return component(func(o *out) {
		if msg := errs[key]; msg != "" {
			o.raw(`<span class="field-error">`)
			o.text(msg)
			o.raw("</span>")
		}
	})
}

func productCard(p view.ProductCard) templ.Component {
	return component(func(o *out) {
		o.raw(`<article class="product-card"><a`)
		o.url("href", p.Href)
		o.raw(">")
		if p.Thumbnail != "" {
			o.raw("<img")
			o.url("src", p.Thumbnail)
			o.attr("alt", p.Title)
			o.raw(` loading="lazy">`)
		}
		o.raw("<h3>")
		o.text(p.Title)
		o.raw(`</h3></a><p class="price">`)
		if p.OnSale {
			o.raw("<s>")
			o.text(p.OriginalPrice)
			o.raw(`</s> <strong class="sale">`)
			o.text(p.Price)
			o.raw(`</strong> <span class="badge">-`)
			o.int(p.PercentageDiff)
			o.raw("%</span>")
		} else {
			o.text(p.Price)
		}
		o.raw("</p></article>")
	})
}

func productGrid(cards []view.ProductCard) templ.Component {
	return component(func(o *out) {
		if len(cards) == 0 {
			o.raw(`<p class="empty">No products found.</p>`)
			return
		}
		o.raw(`<div class="product-grid">`)
		for _, c := range cards {
			o.render(productCard(c))
		}
		o.raw("</div>")
	})
}

func summary(s view.Summary) templ.Component {
	return component(func(o *out) {
		row := func(label, value, class string) {
			o.raw("<dt")
			o.class(class)
			o.raw(">", label, "</dt><dd")
			o.class(class)
			o.raw(">")
			o.text(value)
			o.raw("</dd>")
		}
		o.raw(`<dl class="summary">`)
		row("Subtotal", s.Subtotal, "")
		row("Shipping", s.Shipping, "")
		if s.Discount != "" {
			o.raw("<dt>Discount</dt><dd")
			o.class("discount")
			o.raw(">")
			o.text(s.Discount)
			o.raw("</dd>")
		}
		row("Taxes", s.Tax, "")
		row("Total", s.Total, "total")
		o.raw("</dl>")
	})
}

func lineItems(lines []view.CartLine) templ.Component {
	return component(func(o *out) {
		o.raw(`<ul class="line-items">`)
		for _, l := range lines {
			o.raw("<li>")
			if l.Thumbnail != "" {
				o.raw("<img")
				o.url("src", l.Thumbnail)
				o.raw(` alt="" width="48">`)
			}
			o.raw(`<span class="title">`)
			if l.Href != "" {
				o.render(anchor(l.Href, l.Title))
			} else {
				o.text(l.Title)
			}
			o.raw("</span>")
			if l.VariantTitle != "" {
				o.raw(`<span class="variant">`)
				o.text(l.VariantTitle)
				o.raw("</span>")
			}
			o.raw(`<span class="qty">`)
			o.int(l.Quantity)
			o.raw(" &times; ")
			o.text(l.UnitPrice)
			o.raw(`</span><span class="line-total">`)
			o.text(l.Total)
			o.raw("</span></li>")
		}
		o.raw("</ul>")
	})
}

func paymentWidget(w *view.PaymentWidget) templ.Component {
	return component(func(o *out) {
		if w == nil {
			return
		}
		o.raw(`<div id="payment-widget"`)
		o.attr("data-kind", w.Kind)
		o.attr("data-config", w.ConfigJSON)
		if w.Disabled {
			o.raw(` data-disabled="true"`)
		}
		o.raw(">")
		switch w.Kind {
		case "card":
			o.raw(`<div id="card-element"></div>`)
		case "paypal":
			o.raw(`<div id="paypal-buttons"></div>`)
		}
		o.raw(`<p id="payment-error" class="error" role="alert" hidden></p>`)
		switch w.Kind {
		case "manual":
			o.raw(`<button type="submit" form="place-order"`)
			o.flag("disabled", w.Disabled)
			o.raw(">Place order</button>")
		case "paypal":
		default:
			o.raw(`<button id="payment-submit" type="button"`)
			o.flag("disabled", w.Disabled)
			o.raw(">Place order</button>")
		}
		o.raw("</div>")
	})
}

func paymentScripts(w *view.PaymentWidget) templ.Component {
	return component(func(o *out) {
		if w == nil {
			return
		}
		if w.Kind == "card" || w.Kind == "ideal" {
			o.raw(`<script src="https://js.stripe.com/v3/"></script>`)
		}
		o.raw(`<script src="/static/js/payments.js" defer></script>`)
	})
}

func shippingOptions(opts []view.ShippingOption) templ.Component {
	return component(func(o *out) {
		o.raw(`<fieldset class="shipping-options"><legend>Delivery</legend>`)
		if len(opts) == 0 {
			o.raw("<p>No delivery options are available for this address.</p>")
		}
		for _, opt := range opts {
			o.raw(`<label><input type="radio" name="shipping_option_id"`)
			o.attr("value", opt.ID)
			o.flag("checked", opt.Selected)
			o.raw(" required> ")
			o.text(opt.Name)
			o.raw(" &middot; ")
			o.text(opt.Price)
			o.raw("</label>")
		}
		o.raw("</fieldset>")
	})
}

type addressInput struct {
	label, field, value, autocomplete string
	required                          bool
}

func addressFieldset(legend, prefix, class string, shipping, hide bool, inputs []addressInput, countries []view.RegionOption, country string, errs map[string]string) templ.Component {
	return component(func(o *out) {
		o.raw("<fieldset")
		o.attr("class", class)
		o.flag("hidden", hide)
		o.raw("><legend>", legend, "</legend>")
		for i, in := range inputs {
			if i == len(inputs)-1 {
				o.raw("<label>Country <select")
				o.attr("name", prefix+".country_code")
				if shipping {
					o.raw(` required autocomplete="country"`)
				}
				o.raw(">")
				o.render(countryOptions(countries, country))
				o.raw("</select></label>")
				o.render(fieldError(errs, prefix+".country_code"))
			}
			name := prefix + "." + in.field
			o.raw("<label>", in.label, " <input")
			o.attr("name", name)
			o.attr("value", in.value)
			o.flag("required", in.required)
			if in.autocomplete != "" {
				o.attr("autocomplete", in.autocomplete)
			}
			o.raw("></label>")
			o.render(fieldError(errs, name))
		}
		o.raw("</fieldset>")
	})
}

// addressFields renders the shipping fieldset, the same-as-billing toggle
// and the billing fieldset. The last input of each set (phone) follows
// the country select.
func addressFields(a view.AddressForm, countries []view.RegionOption, errs map[string]string) templ.Component {
	shipping := []addressInput{
		{"First name", "first_name", a.FirstName, "given-name", true},
		{"Last name", "last_name", a.LastName, "family-name", true},
		{"Company", "company", a.Company, "organization", false},
		{"Address", "address_1", a.Address1, "address-line1", true},
		{"Postal code", "postal_code", a.PostalCode, "postal-code", true},
		{"City", "city", a.City, "address-level2", true},
		{"Province", "province", a.Province, "address-level1", false},
		{"Phone", "phone", a.Phone, "tel", false},
	}
	billing := []addressInput{
		{"First name", "first_name", a.BillingFirstName, "", false},
		{"Last name", "last_name", a.BillingLastName, "", false},
		{"Company", "company", a.BillingCompany, "", false},
		{"Address", "address_1", a.BillingAddress1, "", false},
		{"Postal code", "postal_code", a.BillingPostalCode, "", false},
		{"City", "city", a.BillingCity, "", false},
		{"Province", "province", a.BillingProvince, "", false},
		{"Phone", "phone", a.BillingPhone, "", false},
	}
	return component(func(o *out) {
		o.render(addressFieldset("Shipping address", "shipping_address", "address", true, false, shipping, countries, "", errs))
		o.raw(`<label class="checkbox"><input type="checkbox" name="same_as_billing" value="on"`)
		o.flag("checked", a.SameAsBilling)
		o.raw("> Billing address same as shipping address</label>")
		o.render(addressFieldset("Billing address", "billing_address", "address billing", false, a.SameAsBilling, billing, countries, a.BillingCountryCode, errs))
	})
}
