package checkout

import (
	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

func CartSummary(c *medusa.Cart) view.Summary {
	if c == nil {
		return view.Summary{}
	}
	cur := c.Currency()
	s := view.Summary{
		Subtotal: view.FormatAmount(itemSubtotal(c), cur),
		Shipping: view.FormatAmount(c.ShippingTotal, cur),
		Tax:      view.FormatAmount(c.TaxTotal, cur),
		Total:    view.FormatAmount(c.Total, cur),
		Items:    c.ItemCount(),
	}
	if c.DiscountTotal > 0 {
		s.Discount = "-" + view.FormatAmount(c.DiscountTotal, cur)
	}
	return s
}

func OrderSummary(o *medusa.Order) view.Summary {
	if o == nil {
		return view.Summary{}
	}
	cur := o.CurrencyCode
	items := 0
	for _, it := range o.Items {
		items += it.Quantity
	}
	s := view.Summary{
		Subtotal: view.FormatAmount(o.Subtotal, cur),
		Shipping: view.FormatAmount(o.ShippingTotal, cur),
		Tax:      view.FormatAmount(o.TaxTotal, cur),
		Total:    view.FormatAmount(o.Total, cur),
		Items:    items,
	}
	if o.DiscountTotal > 0 {
		s.Discount = "-" + view.FormatAmount(o.DiscountTotal, cur)
	}
	return s
}

func itemSubtotal(c *medusa.Cart) medusa.Amount {
	if c.ItemSubtotal > 0 {
		return c.ItemSubtotal
	}
	return c.Subtotal
}
