package catalog

import (
	"math"
	"sort"

	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
)

type Price struct {
	Amount         medusa.Amount
	OriginalAmount medusa.Amount
	Currency       string
	OnSale         bool
	PercentageDiff int
}

// VariantPrice reads the region-calculated price of a variant.
func VariantPrice(v medusa.Variant) (Price, bool) {
	cp := v.CalculatedPrice
	if cp == nil {
		return Price{}, false
	}
	p := Price{
		Amount:         cp.CalculatedAmount,
		OriginalAmount: cp.OriginalAmount,
		Currency:       cp.CurrencyCode,
		OnSale:         cp.CalculatedPrice.PriceListType == "sale",
	}
	if p.OriginalAmount > 0 && p.OriginalAmount > p.Amount {
		p.PercentageDiff = int(math.Round(float64(p.OriginalAmount-p.Amount) / float64(p.OriginalAmount) * 100))
		p.OnSale = true
	}
	return p, true
}

// CheapestPrice is the lowest variant price, used on product cards.
func CheapestPrice(p medusa.Product) (Price, bool) {
	var (
		best  Price
		found bool
	)
	for _, v := range p.Variants {
		vp, ok := VariantPrice(v)
		if !ok {
			continue
		}
		if !found || vp.Amount < best.Amount {
			best, found = vp, true
		}
	}
	return best, found
}

type SortBy string

const (
	SortCreatedAt SortBy = "created_at"
	SortPriceAsc  SortBy = "price_asc"
	SortPriceDesc SortBy = "price_desc"
)

func ParseSortBy(s string) SortBy {
	switch SortBy(s) {
	case SortPriceAsc, SortPriceDesc:
		return SortBy(s)
	default:
		return SortCreatedAt
	}
}

func (s SortBy) Label() string {
	switch s {
	case SortPriceAsc:
		return "Price: Low -> High"
	case SortPriceDesc:
		return "Price: High -> Low"
	default:
		return "Latest Arrivals"
	}
}

var SortOptions = []SortBy{SortCreatedAt, SortPriceAsc, SortPriceDesc}

// SortProducts orders products in place. Unpriced products go last for price sorts.
func SortProducts(products []medusa.Product, by SortBy) {
	switch by {
	case SortPriceAsc, SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			pi, iok := CheapestPrice(products[i])
			pj, jok := CheapestPrice(products[j])
			if iok != jok {
				return iok
			}
			if by == SortPriceAsc {
				return pi.Amount < pj.Amount
			}
			return pi.Amount > pj.Amount
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			ci, cj := products[i].CreatedAt, products[j].CreatedAt
			if ci == nil || cj == nil {
				return ci != nil
			}
			return ci.After(*cj)
		})
	}
}
