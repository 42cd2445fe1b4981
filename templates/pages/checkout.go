package pages

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

func Checkout(p view.CheckoutPage) templ.Component {
	return page(p.Layout, component(func(o *out) {
		o.raw(`<section class="checkout"><ol class="steps">`)
		for _, s := range p.Steps {
			o.raw("<li")
			o.class(templ.KV("active", s.Active), templ.KV("done", s.Done))
			o.raw(">")
			if s.Done && !s.Active {
				o.render(anchor(s.Href, s.Label))
			} else {
				o.text(s.Label)
			}
			o.raw("</li>")
		}
		o.raw(`</ol><div class="checkout-main">`)
		o.render(checkoutStep(p))
		o.raw(`</div><aside class="checkout-side"><h2>In your cart</h2>`)
		o.render(lineItems(p.Lines))
		if len(p.PromoCodes) > 0 {
			o.raw(`<p class="promo-codes">Codes: `)
			o.text(strings.Join(p.PromoCodes, ", "))
			o.raw("</p>")
		}
		o.render(summary(p.Summary))
		o.raw("</aside></section>")
	}), paymentScripts(p.Widget))
}

func checkoutStep(p view.CheckoutPage) templ.Component {
	return component(func(o *out) {
		form := func(path string) {
			o.raw(`<form method="post"`)
			o.url("action", p.ActionBase+path)
			o.raw(">")
		}
		switch p.Step {
		case "address":
			form("/addresses")
			o.render(emailField(p.Address.Email))
			o.render(fieldError(p.Errors, "email"))
			o.render(addressFields(p.Address, p.Countries, p.Errors))
			o.raw(`<button type="submit">Continue to delivery</button></form>`)
		case "delivery":
			form("/shipping-method")
			o.render(shippingOptions(p.ShippingOptions))
			o.render(fieldError(p.Errors, "shipping_option_id"))
			o.raw(`<button type="submit">Continue to payment</button></form>`)
		case "payment":
			form("/payment-session")
			o.raw(`<fieldset class="payment-methods"><legend>Payment</legend>`)
			if len(p.PaymentMethods) == 0 {
				o.raw("<p>No payment methods are available for this region.</p>")
			}
			for _, m := range p.PaymentMethods {
				o.raw(`<label><input type="radio" name="provider_id"`)
				o.attr("value", m.ID)
				o.flag("checked", m.Selected)
				o.raw(" required> ")
				o.text(m.Label)
				o.raw("</label>")
			}
			o.raw("</fieldset>")
			o.render(fieldError(p.Errors, "provider_id"))
			o.raw(`<button type="submit">Continue to review</button></form>`)
		default:
			o.raw("<h2>Review</h2><p>By placing your order you confirm that you agree to our terms of sale.</p>")
			if p.NotReady {
				o.raw(`<p class="warning">Please complete your address, delivery and payment details first.</p>`)
			}
			o.render(paymentWidget(p.Widget))
			o.raw(`<form id="place-order" method="post"`)
			o.url("action", p.ActionBase+"/place-order")
			o.raw("></form>")
		}
	})
}

func emailField(value string) templ.Component {
	return component(func(o *out) {
		o.raw(`<label>Email <input type="email" name="email"`)
		o.attr("value", value)
		o.raw(` required autocomplete="email"></label>`)
	})
}

func alert(msg string) templ.Component {
	return component(func(o *out) {
		if msg == "" {
			return
		}
		o.raw(`<p class="error" role="alert">`)
		o.text(msg)
		o.raw("</p>")
	})
}

func SingleCheckout(p view.SingleCheckoutPage) templ.Component {
	return page(p.Layout, component(func(o *out) {
		o.raw(`<section class="checkout single"><h1>Checkout</h1>`)
		o.render(alert(p.Error))
		o.raw(`<form id="single-checkout" method="post"`)
		o.url("action", storePath(p.Layout.CountryCode, "/checkout-single"))
		o.raw(">")
		o.render(emailField(p.Address.Email))
		o.render(addressFields(p.Address, p.Countries, p.Errors))
		o.render(shippingOptions(p.ShippingOptions))
		o.raw("</form>")
		o.render(paymentWidget(p.Widget))
		o.raw(`<aside class="checkout-side">`)
		o.render(lineItems(p.Lines))
		o.render(summary(p.Summary))
		o.raw("</aside></section>")
	}), paymentScripts(p.Widget))
}

func PaymentFlow(p view.PaymentFlowPage) templ.Component {
	cc := p.Layout.CountryCode
	return page(p.Layout, component(func(o *out) {
		o.raw(`<section class="checkout payment-flow"><ol class="steps">`)
		for _, s := range []struct{ name, label string }{
			{"method_selection", "Method"},
			{"payment_details", "Details"},
			{"confirmation", "Confirmation"},
		} {
			o.raw("<li")
			o.class(templ.KV("active", p.Step == s.name))
			o.raw(">", s.label, "</li>")
		}
		o.raw("</ol>")
		o.render(alert(p.Error))

		switch p.Step {
		case "method_selection":
			o.raw(`<form method="post"`)
			o.url("action", storePath(cc, "/checkout-v2/method"))
			o.raw(` class="method-picker">`)
			if len(p.Methods) == 0 {
				o.raw("<p>No payment methods are configured.</p>")
			}
			for _, m := range p.Methods {
				o.raw(`<button type="submit" name="method"`)
				o.attr("value", m.ID)
				o.class(templ.KV("selected", m.Selected))
				o.raw(">")
				o.text(m.Label)
				o.raw("</button>")
			}
			o.raw("</form>")
		case "payment_details":
			if p.NotReady {
				o.raw(`<p class="warning">Your address or delivery details are incomplete. <a`)
				o.url("href", storePath(cc, "/checkout"))
				o.raw(">Complete checkout</a></p>")
			}
			o.render(paymentWidget(p.Widget))
			o.raw(`<form id="place-order" method="post"`)
			o.url("action", storePath(cc, "/checkout/place-order"))
			o.raw("></form><p>")
			o.render(anchor(storePath(cc, "/checkout-v2?step=method_selection"), "Choose another method"))
			o.raw("</p>")
		default:
			o.raw("<p>Your payment is being confirmed.</p>")
		}

		o.raw(`<aside class="checkout-side">`)
		o.render(summary(p.Summary))
		o.raw("</aside></section>")
	}), paymentScripts(p.Widget))
}
