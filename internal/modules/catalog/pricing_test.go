package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
)

func TestCheapestPrice(t *testing.T) {
	p := priced("shirt", 3000, 1500, 2500)
	price, ok := CheapestPrice(p)
	require.True(t, ok)
	assert.Equal(t, medusa.Amount(1500), price.Amount)
	assert.False(t, price.OnSale)

	_, ok = CheapestPrice(medusa.Product{ID: "no-variants"})
	assert.False(t, ok)
}

func TestVariantPriceSale(t *testing.T) {
	v := medusa.Variant{CalculatedPrice: &medusa.CalculatedPrice{CalculatedAmount: 750, OriginalAmount: 1000, CurrencyCode: "eur"}}
	p, ok := VariantPrice(v)
	require.True(t, ok)
	assert.True(t, p.OnSale)
	assert.Equal(t, 25, p.PercentageDiff)
}

func TestParseSortBy(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSortBy("price_asc"))
	assert.Equal(t, SortPriceDesc, ParseSortBy("price_desc"))
	assert.Equal(t, SortCreatedAt, ParseSortBy(""))
	assert.Equal(t, SortCreatedAt, ParseSortBy("bogus"))
}
