package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

// page renders content inside the shared layout. scripts may be nil.
func page(l view.Layout, content, scripts templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Base(l, scripts).Render(templ.WithChildren(ctx, content), w)
	})
}

// Base is the document shell; the page body comes from its children.
func Base(l view.Layout, scripts templ.Component) templ.Component {
	return component(func(o *out) {
		children := templ.GetChildren(o.ctx)
		o.ctx = templ.ClearChildren(o.ctx)
		home := storePath(l.CountryCode, "")

		o.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		if l.Title != "" {
			o.text(l.Title)
			o.raw(" | ")
		}
		o.raw(`Store</title><link rel="stylesheet" href="/static/css/store.css"></head><body>`)

		o.raw(`<header class="site-header"><a class="brand"`)
		o.url("href", home)
		o.raw(">")
		if l.LogoURL != "" {
			o.raw("<img")
			o.url("src", l.LogoURL)
			o.raw(` alt="Store" height="32">`)
		} else {
			o.raw("Store")
		}
		o.raw(`</a><nav class="main-nav">`)
		for _, link := range l.Nav {
			o.render(anchor(link.Href, link.Label))
		}
		o.raw(`</nav><div class="header-actions">`)
		o.render(regionSelect(l))
		if l.Customer != nil {
			label := l.Customer.FirstName
			if label == "" {
				label = "Account"
			}
			o.render(anchor(storePath(l.CountryCode, "/account"), label))
		} else {
			o.render(anchor(storePath(l.CountryCode, "/account/login"), "Sign in"))
		}
		o.raw(`<span id="cart-badge">`)
		o.render(CartBadge(l.CountryCode, l.CartCount))
		o.raw(`</span></div></header>`)

		if f := l.Flash; f != nil {
			o.raw(`<div`)
			o.attr("class", "flash flash-"+string(f.Kind))
			o.raw(` role="status">`)
			o.text(f.Message)
			o.raw(`</div>`)
		}

		o.raw("<main>")
		o.render(children)
		o.raw("</main>")

		o.raw(`<footer class="site-footer"><form method="post" action="/newsletter" class="newsletter">`,
			`<input type="hidden" name="country_code"`)
		o.attr("value", l.CountryCode)
		o.raw(`><label for="newsletter-email">Get new arrivals in your inbox</label>`,
			`<input id="newsletter-email" type="email" name="email" required placeholder="you@example.com">`,
			`<button type="submit">Subscribe</button></form><p>&copy; `)
		o.int(l.Year)
		o.raw(" Store")
		if l.RequestID != "" {
			o.raw(" &middot; <small>ref ")
			o.text(l.RequestID)
			o.raw("</small>")
		}
		o.raw("</p></footer>")
		o.render(scripts)
		o.raw("</body></html>")
	})
}

func regionSelect(l view.Layout) templ.Component {
	return component(func(o *out) {
		if len(l.Regions) == 0 {
			return
		}
		o.raw(`<form method="post"`)
		o.url("action", storePath(l.CountryCode, "/region"))
		o.raw(` class="region-select"><input type="hidden" name="current_path"`)
		o.attr("value", l.CurrentPath)
		o.raw(`><select name="country_code" onchange="this.form.submit()" aria-label="Shipping country">`)
		o.render(countryOptions(l.Regions, ""))
		o.raw(`</select><noscript><button type="submit">Go</button></noscript></form>`)
	})
}

// CartBadge is the header fragment refreshed after cart mutations.
func CartBadge(countryCode string, count int) templ.Component {
	return component(func(o *out) {
		o.raw("<a")
		o.url("href", storePath(countryCode, "/cart"))
		o.raw(` class="cart-link">Cart (`)
		o.int(count)
		o.raw(")</a>")
	})
}

func anchor(href, label string) templ.Component {
	return component(func(o *out) {
		o.raw("<a")
		o.url("href", href)
		o.raw(">")
		o.text(label)
		o.raw("</a>")
	})
}

// Error is the error page rendered by the error handler.
func Error(p view.ErrorPage) templ.Component {
	return page(p.Layout, component(func(o *out) {
		o.raw(`<section class="error-page"><h1>`)
		o.int(p.Status)
		o.raw(" &middot; ")
		o.text(p.Title)
		o.raw("</h1><p>")
		o.text(p.Message)
		o.raw(`</p><a class="button"`)
		o.url("href", storePath(p.Layout.CountryCode, ""))
		o.raw(">Back to the shop</a>")
		if p.RequestID != "" {
			o.raw("<p><small>Request ID: ")
			o.text(p.RequestID)
			o.raw("</small></p>")
		}
		o.raw("</section>")
	}), nil)
}
