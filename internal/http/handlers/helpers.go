package handlers

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/catalog"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/checkout"
	"github.com/LeroySteding/medusajs-yn-railway/internal/shared/apperr"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

const msgNoResponse = "No response received from server. Please check your connection."

// pageErr maps a failed read of the Store API to the error page shown.
func pageErr(err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, catalog.ErrRegionNotFound), medusa.IsNotFound(err):
		return apperr.NotFoundErr("Page not found")
	case medusa.IsTransport(err):
		return apperr.UnavailableErr(msgNoResponse, err)
	}
	if me, ok := medusa.AsError(err); ok && me.Status >= 500 {
		return apperr.UnavailableErr("The shop is temporarily unavailable.", err)
	}
	return apperr.Wrap(err)
}

// flashMessage is the text shown after a failed mutation: the backend's own
// message when it sent one, the error text of domain errors otherwise.
func flashMessage(err error) string {
	if medusa.IsTransport(err) {
		return msgNoResponse
	}
	if me, ok := medusa.AsError(err); ok {
		if me.Message != "" && me.Status < 500 {
			return me.Message
		}
		return apperr.PublicMessage(nil)
	}
	if ae, ok := apperr.As(err); ok {
		return apperr.PublicMessage(ae)
	}
	return err.Error()
}

func parseQuantity(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func parsePage(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return min(n, catalog.MaxPage)
}

// safeReturnTo accepts only paths on this host.
func safeReturnTo(s, fallback string) string {
	if !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") || strings.Contains(s, "\\") {
		return fallback
	}
	return s
}

// backTo is the local page the form was posted from.
func backTo(c *gin.Context, fallback string) string {
	ref := c.Request.Referer()
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) {
		return fallback
	}
	return safeReturnTo(u.RequestURI(), fallback)
}

func productHref(cc, handle string) string { return "/" + cc + "/products/" + handle }

func collectionLink(cc string, col *medusa.Collection) *view.Link {
	if col == nil || col.Handle == "" {
		return nil
	}
	return &view.Link{Label: col.Title, Href: "/" + cc + "/collections/" + col.Handle}
}

func productCard(p medusa.Product, cc string) view.ProductCard {
	card := view.ProductCard{
		Title:      p.Title,
		Href:       productHref(cc, p.Handle),
		Thumbnail:  p.Thumbnail,
		Collection: collectionLink(cc, p.Collection),
	}
	if price, ok := catalog.CheapestPrice(p); ok {
		card.Price = view.FormatAmount(price.Amount, price.Currency)
		card.OnSale = price.OnSale
		card.PercentageDiff = price.PercentageDiff
		if price.OnSale {
			card.OriginalPrice = view.FormatAmount(price.OriginalAmount, price.Currency)
		}
	}
	return card
}

func productCards(products []medusa.Product, cc string) []view.ProductCard {
	out := make([]view.ProductCard, 0, len(products))
	for _, p := range products {
		out = append(out, productCard(p, cc))
	}
	return out
}

func lineViews(items []medusa.LineItem, currency, cc string) []view.CartLine {
	out := make([]view.CartLine, 0, len(items))
	for _, it := range items {
		line := view.CartLine{
			ID:           it.ID,
			Title:        it.ProductTitle,
			VariantTitle: it.VariantTitle,
			Thumbnail:    it.Thumbnail,
			Quantity:     it.Quantity,
			UnitPrice:    view.FormatAmount(it.UnitPrice, currency),
			Total:        view.FormatAmount(it.Total, currency),
		}
		if line.Title == "" {
			line.Title = it.Title
		}
		handle := it.ProductHandle
		if it.Product != nil {
			handle = it.Product.Handle
			if line.Thumbnail == "" {
				line.Thumbnail = it.Product.Thumbnail
			}
		}
		if handle != "" {
			line.Href = productHref(cc, handle)
		}
		if line.VariantTitle == "" && it.Variant != nil {
			line.VariantTitle = it.Variant.Title
		}
		out = append(out, line)
	}
	return out
}

func addressLines(a *medusa.Address) []string {
	if a.Empty() {
		return nil
	}
	lines := []string{strings.TrimSpace(a.FirstName + " " + a.LastName)}
	if a.Company != "" {
		lines = append(lines, a.Company)
	}
	lines = append(lines, a.Address1)
	if a.Address2 != "" {
		lines = append(lines, a.Address2)
	}
	return append(lines, strings.TrimSpace(a.PostalCode+" "+a.City), strings.ToUpper(a.CountryCode))
}

func sameAddress(a, b *medusa.Address) bool {
	if b.Empty() {
		return true
	}
	if a.Empty() {
		return false
	}
	return a.FirstName == b.FirstName && a.LastName == b.LastName && a.Address1 == b.Address1 &&
		a.City == b.City && a.PostalCode == b.PostalCode && strings.EqualFold(a.CountryCode, b.CountryCode)
}

// addressForm prefills the address step from the cart.
func addressForm(c *medusa.Cart, defaultCC string) view.AddressForm {
	f := view.AddressForm{
		Email:         c.Email,
		CountryCode:   defaultCC,
		SameAsBilling: sameAddress(c.ShippingAddress, c.BillingAddress),
	}
	if s := c.ShippingAddress; s != nil {
		f.FirstName, f.LastName, f.Company = s.FirstName, s.LastName, s.Company
		f.Address1, f.City, f.PostalCode = s.Address1, s.City, s.PostalCode
		f.Province, f.Phone = s.Province, s.Phone
		if s.CountryCode != "" {
			f.CountryCode = strings.ToLower(s.CountryCode)
		}
	}
	if b := c.BillingAddress; b != nil && !f.SameAsBilling {
		f.BillingFirstName, f.BillingLastName, f.BillingCompany = b.FirstName, b.LastName, b.Company
		f.BillingAddress1, f.BillingCity, f.BillingPostalCode = b.Address1, b.City, b.PostalCode
		f.BillingProvince, f.BillingPhone = b.Province, b.Phone
		f.BillingCountryCode = strings.ToLower(b.CountryCode)
	}
	return f
}

// formFromPost echoes a rejected address form back into the page.
func formFromPost(c *gin.Context) view.AddressForm {
	return view.AddressForm{
		Email:              c.PostForm("email"),
		FirstName:          c.PostForm("shipping_address.first_name"),
		LastName:           c.PostForm("shipping_address.last_name"),
		Company:            c.PostForm("shipping_address.company"),
		Address1:           c.PostForm("shipping_address.address_1"),
		City:               c.PostForm("shipping_address.city"),
		PostalCode:         c.PostForm("shipping_address.postal_code"),
		Province:           c.PostForm("shipping_address.province"),
		CountryCode:        c.PostForm("shipping_address.country_code"),
		Phone:              c.PostForm("shipping_address.phone"),
		SameAsBilling:      c.PostForm("same_as_billing") == "on",
		BillingFirstName:   c.PostForm("billing_address.first_name"),
		BillingLastName:    c.PostForm("billing_address.last_name"),
		BillingCompany:     c.PostForm("billing_address.company"),
		BillingAddress1:    c.PostForm("billing_address.address_1"),
		BillingCity:        c.PostForm("billing_address.city"),
		BillingPostalCode:  c.PostForm("billing_address.postal_code"),
		BillingProvince:    c.PostForm("billing_address.province"),
		BillingCountryCode: c.PostForm("billing_address.country_code"),
		BillingPhone:       c.PostForm("billing_address.phone"),
	}
}

// regionCountries lists the countries the cart's region ships to.
func regionCountries(r *medusa.Region, selected string) []view.RegionOption {
	if r == nil {
		return nil
	}
	out := make([]view.RegionOption, 0, len(r.Countries))
	for _, co := range r.Countries {
		code := strings.ToLower(co.ISO2)
		label := co.DisplayName
		if label == "" {
			label = strings.ToUpper(code)
		}
		out = append(out, view.RegionOption{CountryCode: code, Label: label, Selected: code == selected})
	}
	return out
}

func shippingOptionViews(opts []medusa.ShippingOption, c *medusa.Cart) []view.ShippingOption {
	chosen := ""
	if len(c.ShippingMethods) > 0 {
		chosen = c.ShippingMethods[0].ShippingOptionID
	}
	out := make([]view.ShippingOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, view.ShippingOption{
			ID:       o.ID,
			Name:     o.Name,
			Price:    view.FormatAmount(o.Amount, c.Currency()),
			Selected: o.ID == chosen,
		})
	}
	return out
}

// stepViews marks every step before the first incomplete one as done.
func stepViews(cc string, current checkout.Step, c *medusa.Cart) []view.CheckoutStep {
	first := checkout.FirstIncomplete(c)
	out := make([]view.CheckoutStep, 0, len(checkout.Steps))
	for _, st := range checkout.Steps {
		out = append(out, view.CheckoutStep{
			Name:   string(st),
			Label:  st.Label(),
			Href:   "/" + cc + "/checkout?step=" + string(st),
			Active: st == current,
			Done:   st.Before(first),
		})
	}
	return out
}
