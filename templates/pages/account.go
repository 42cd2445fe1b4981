package pages

import (
	"github.com/a-h/templ"

	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

func Login(p view.LoginPage) templ.Component {
	return page(p.Layout, component(func(o *out) {
		o.raw(`<section class="login"><h1>Sign in</h1>`)
		o.render(fieldError(p.Errors, "_"))
		o.raw(`<form method="post"`)
		o.url("action", storePath(p.Layout.CountryCode, "/account/login"))
		o.raw(`><input type="hidden" name="return_to"`)
		o.attr("value", p.ReturnTo)
		o.raw(">")
		o.render(emailField(p.Email))
		o.render(fieldError(p.Errors, "email"))
		o.raw(`<label>Password <input type="password" name="password" required autocomplete="current-password"></label>`)
		o.render(fieldError(p.Errors, "password"))
		o.raw(`<button type="submit">Sign in</button></form></section>`)
	}), nil)
}

func Account(p view.AccountPage) templ.Component {
	return page(p.Layout, component(func(o *out) {
		o.raw(`<section class="account"><h1>Hello`)
		if p.FirstName != "" {
			o.raw(" ")
			o.text(p.FirstName)
		}
		o.raw("</h1><dl><dt>Name</dt><dd>")
		o.text(p.FirstName + " " + p.LastName)
		o.raw("</dd><dt>Email</dt><dd>")
		o.text(p.Email)
		o.raw("</dd>")
		if p.Phone != "" {
			o.raw("<dt>Phone</dt><dd>")
			o.text(p.Phone)
			o.raw("</dd>")
		}
		o.raw(`</dl><form method="post"`)
		o.url("action", storePath(p.Layout.CountryCode, "/account/logout"))
		o.raw(`><button type="submit">Sign out</button></form></section>`)
	}), nil)
}

func OrderConfirmed(p view.OrderConfirmedPage) templ.Component {
	return page(p.Layout, component(func(o *out) {
		o.raw(`<section class="order-confirmed"><h1>Thank you!</h1><p>Your order was placed successfully.</p>`,
			`<dl class="order-meta"><dt>Order number</dt><dd>#`)
		o.int(p.DisplayID)
		o.raw("</dd><dt>Order date</dt><dd>")
		o.text(p.Date)
		o.raw("</dd>")
		if p.Email != "" {
			o.raw("<dt>Confirmation sent to</dt><dd>")
			o.text(p.Email)
			o.raw("</dd>")
		}
		o.raw("</dl>")
		o.render(lineItems(p.Lines))
		o.render(summary(p.Summary))

		if len(p.ShippingAddress) > 0 {
			o.raw(`<section class="delivery"><h2>Delivery</h2><address>`)
			for _, line := range p.ShippingAddress {
				o.text(line)
				o.raw("<br>")
			}
			o.raw("</address>")
			if p.ShippingMethod != "" {
				o.raw("<p>")
				o.text(p.ShippingMethod)
				o.raw("</p>")
			}
			o.raw("</section>")
		}
		o.raw(`<a class="button"`)
		o.url("href", p.ContinueHref)
		o.raw(">Continue shopping</a></section>")
	}), nil)
}
