package pages

import (
	"github.com/a-h/templ"

	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

func Cart(p view.CartPage) templ.Component {
	cc := p.Layout.CountryCode
	return page(p.Layout, component(func(o *out) {
		o.raw(`<section class="cart"><h1>Cart</h1>`)
		if p.Empty() {
			o.raw(`<p class="empty">Your cart is empty.</p><a class="button"`)
			o.url("href", storePath(cc, ""))
			o.raw(">Explore products</a></section>")
			return
		}
		o.raw(`<table class="cart-lines"><thead><tr><th>Item</th><th>Quantity</th><th>Price</th><th>Total</th><th></th></tr></thead><tbody>`)
		for _, l := range p.Lines {
			o.render(cartRow(cc, l))
		}
		o.raw("</tbody></table>")

		o.raw(`<aside class="cart-side"><form method="post"`)
		o.url("action", storePath(cc, "/cart/promotions"))
		o.raw(` class="promo"><label for="promo-code">Promotion code</label>`,
			`<input id="promo-code" name="code" required><button type="submit">Apply</button>`)
		o.render(fieldError(p.Errors, "code"))
		o.raw("</form>")
		if len(p.PromoCodes) > 0 {
			o.raw(`<ul class="promo-codes">`)
			for _, code := range p.PromoCodes {
				o.render(promoCode(cc, code))
			}
			o.raw("</ul>")
		}
		o.render(summary(p.Summary))
		o.raw(`<a class="button primary"`)
		o.url("href", p.CheckoutHref)
		o.raw(">Go to checkout</a></aside></section>")
	}), nil)
}

func cartRow(cc string, l view.CartLine) templ.Component {
	action := storePath(cc, "/cart/line-items/"+l.ID)
	return component(func(o *out) {
		o.raw("<tr><td>")
		if l.Thumbnail != "" {
			o.raw("<img")
			o.url("src", l.Thumbnail)
			o.raw(` alt="" width="64">`)
		}
		o.render(anchor(l.Href, l.Title))
		if l.VariantTitle != "" {
			o.raw("<br><small>")
			o.text(l.VariantTitle)
			o.raw("</small>")
		}
		o.raw(`</td><td><form method="post"`)
		o.url("action", action)
		o.raw(`><input type="number" name="quantity"`)
		o.attr("value", itoa(l.Quantity))
		o.raw(` min="0" max="99" aria-label="Quantity"><button type="submit">Update</button></form></td><td>`)
		o.text(l.UnitPrice)
		o.raw("</td><td>")
		o.text(l.Total)
		o.raw(`</td><td><form method="post"`)
		o.url("action", action+"/delete")
		o.raw(`><button type="submit">Remove</button></form></td></tr>`)
	})
}

func promoCode(cc, code string) templ.Component {
	return component(func(o *out) {
		o.raw("<li>")
		o.text(code)
		o.raw(`<form method="post"`)
		o.url("action", storePath(cc, "/cart/promotions/remove"))
		o.raw(` class="inline"><input type="hidden" name="code"`)
		o.attr("value", code)
		o.raw(`><button type="submit"`)
		o.attr("aria-label", "Remove "+code)
		o.raw(">&times;</button></form></li>")
	})
}
