package pages

import (
	"github.com/a-h/templ"

	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

func Home(p view.HomePage) templ.Component {
	return page(p.Layout, component(func(o *out) {
		if len(p.Slides) > 0 {
			o.raw(`<section class="hero">`)
			for _, s := range p.Slides {
				o.render(heroSlide(s))
			}
			o.raw("</section>")
		}
		if len(p.Categories) > 0 {
			o.raw(`<section class="categories"><h2>Shop by category</h2>`)
			o.render(linkList("", p.Categories))
			o.raw("</section>")
		}
		o.raw(`<section class="featured" id="featured"><h2>Featured</h2>`)
		o.render(productGrid(p.Featured))
		o.raw("</section>")
		if len(p.Collections) > 0 {
			o.raw(`<section class="collections"><h2>Collections</h2>`)
			o.render(linkList("", p.Collections))
			o.raw("</section>")
		}
	}), nil)
}

func heroSlide(s view.HeroSlide) templ.Component {
	return component(func(o *out) {
		o.raw(`<div class="hero-slide">`)
		if s.ImageURL != "" {
			o.raw("<img")
			o.url("src", s.ImageURL)
			o.raw(` alt="">`)
		}
		o.raw("<h1>")
		o.text(s.Title)
		o.raw("</h1>")
		if s.Subtitle != "" {
			o.raw("<p>")
			o.text(s.Subtitle)
			o.raw("</p>")
		}
		if s.Href != "" {
			cta := s.CTA
			if cta == "" {
				cta = "Shop now"
			}
			o.raw(`<a class="button"`)
			o.url("href", s.Href)
			o.raw(">")
			o.text(cta)
			o.raw("</a>")
		}
		o.raw("</div>")
	})
}

func ProductList(p view.ProductListPage) templ.Component {
	return page(p.Layout, component(func(o *out) {
		o.raw(`<section class="listing"><header><h1>`)
		o.text(p.Heading)
		o.raw("</h1>")
		if p.Description != "" {
			o.raw("<p>")
			o.text(p.Description)
			o.raw("</p>")
		}
		if len(p.Children) > 0 {
			o.render(linkList("subcategories", p.Children))
		}
		o.raw(`</header><nav class="sort" aria-label="Sort products">`)
		for _, s := range p.SortOptions {
			if s.Selected {
				o.raw("<strong>")
				o.text(s.Label)
				o.raw("</strong>")
			} else {
				o.render(anchor(s.Href, s.Label))
			}
			o.raw(" ")
		}
		o.raw(`</nav><p class="count">`)
		o.int(p.Count)
		o.raw(" product")
		if p.Count != 1 {
			o.raw("s")
		}
		o.raw("</p>")
		o.render(productGrid(p.Products))
		o.render(pagination(p))
		o.raw("</section>")
	}), nil)
}

func pagination(p view.ProductListPage) templ.Component {
	return component(func(o *out) {
		if p.TotalPages <= 1 {
			return
		}
		o.raw(`<nav class="pagination" aria-label="Pages">`)
		if p.PrevHref != "" {
			o.raw(`<a rel="prev"`)
			o.url("href", p.PrevHref)
			o.raw(">Previous</a>")
		}
		o.raw("<span>")
		o.textf("Page %d of %d", p.Page, p.TotalPages)
		o.raw("</span>")
		if p.NextHref != "" {
			o.raw(`<a rel="next"`)
			o.url("href", p.NextHref)
			o.raw(">Next</a>")
		}
		o.raw("</nav>")
	})
}

func Product(p view.ProductDetailPage) templ.Component {
	d := p.Product
	return page(p.Layout, component(func(o *out) {
		o.raw(`<article class="product-detail"><div class="gallery">`)
		for _, src := range d.Images {
			o.raw("<img")
			o.url("src", src)
			o.attr("alt", d.Title)
			o.raw(">")
		}
		o.raw(`</div><div class="info">`)
		if c := d.Collection; c != nil {
			o.raw(`<a class="collection"`)
			o.url("href", c.Href)
			o.raw(">")
			o.text(c.Label)
			o.raw("</a>")
		}
		o.raw("<h1>")
		o.text(d.Title)
		o.raw("</h1>")
		if d.Subtitle != "" {
			o.raw(`<p class="subtitle">`)
			o.text(d.Subtitle)
			o.raw("</p>")
		}
		o.raw(`<p class="price">`)
		o.text(d.Price)
		o.raw("</p>")

		o.raw(`<form method="post"`)
		o.url("action", storePath(p.Layout.CountryCode, "/cart/line-items"))
		o.raw(">")
		o.render(variantPicker(d.Variants))
		o.render(fieldError(p.Errors, "variant_id"))
		o.raw(`<label>Quantity <input type="number" name="quantity" value="1" min="1" max="99"></label>`,
			`<button type="submit">Add to cart</button></form>`)

		if d.Description != "" {
			o.raw(`<div class="description"><p>`)
			o.text(d.Description)
			o.raw("</p></div>")
		}
		o.raw("</div></article>")

		if len(p.Related) > 0 {
			o.raw(`<section class="related"><h2>You might also like</h2>`)
			o.render(productGrid(p.Related))
			o.raw("</section>")
		}
	}), nil)
}

// variantPicker offers radios for multi-variant products and a hidden
// input otherwise.
func variantPicker(variants []view.VariantChoice) templ.Component {
	return component(func(o *out) {
		if len(variants) <= 1 {
			for _, v := range variants {
				o.raw(`<input type="hidden" name="variant_id"`)
				o.attr("value", v.ID)
				o.raw(">")
			}
			return
		}
		o.raw(`<fieldset class="variants"><legend>Options</legend>`)
		for _, v := range variants {
			o.raw(`<label><input type="radio" name="variant_id"`)
			o.attr("value", v.ID)
			o.flag("checked", v.Selected)
			o.flag("disabled", !v.InStock)
			o.raw("> ")
			o.text(v.Title)
			o.raw(" &middot; ")
			o.text(v.Price)
			if !v.InStock {
				o.raw(" (out of stock)")
			}
			o.raw("</label>")
		}
		o.raw("</fieldset>")
	})
}
