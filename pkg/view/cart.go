package view

type CartLine struct {
	ID           string
	Title        string
	VariantTitle string
	Thumbnail    string
	Href         string
	Quantity     int
	UnitPrice    string
	Total        string
}

type Summary struct {
	Subtotal string
	Shipping string
	Discount string // empty when no discount applies
	Tax      string
	Total    string
	Items    int
}

type CartPage struct {
	Layout       Layout
	Lines        []CartLine
	Summary      Summary
	PromoCodes   []string
	CheckoutHref string
	Errors       map[string]string
}

func (p CartPage) Empty() bool { return len(p.Lines) == 0 }
