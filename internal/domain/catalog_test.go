package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testPrices() []ServicePrice {
	return []ServicePrice{
		{ServiceName: "B/N A4", BasePrice: d("0.50")},
		{ServiceName: "Color A4", BasePrice: d("1.20")},
		{ServiceName: "Photo 10x15", BasePrice: d("0.90"), IsPhotoPrint: true},
	}
}

func TestResolveCatalogUsesOverridesWhenAllowed(t *testing.T) {
	shop := &Shop{ID: "b", HasPhotoPrint: true, CanEditPrices: true}
	overrides := []LocalPrice{{ShopID: "b", ServiceName: "B/N A4", Price: d("0.40")}}

	catalog := ResolveCatalog(shop, testPrices(), overrides)
	require.Len(t, catalog, 3)

	assert.Equal(t, "B/N A4", catalog[0].ServiceName)
	assert.True(t, catalog[0].EffectivePrice.Equal(d("0.40")))
	assert.True(t, catalog[0].IsCustom)
	assert.False(t, catalog[1].IsCustom)
	assert.True(t, catalog[1].EffectivePrice.Equal(d("1.20")))
}

func TestResolveCatalogIgnoresOverridesWithoutEditRights(t *testing.T) {
	shop := &Shop{ID: "b", HasPhotoPrint: true, CanEditPrices: false}
	overrides := []LocalPrice{
		{ShopID: "b", ServiceName: "B/N A4", Price: d("0.40")},
		{ShopID: "b", ServiceName: "Photo 10x15", Price: d("0.10")},
	}
	base := map[string]decimal.Decimal{}
	for _, p := range testPrices() {
		base[p.ServiceName] = p.BasePrice
	}

	for _, entry := range ResolveCatalog(shop, testPrices(), overrides) {
		assert.False(t, entry.IsCustom, entry.ServiceName)
		assert.True(t, entry.EffectivePrice.Equal(base[entry.ServiceName]), entry.ServiceName)
	}
}

func TestResolveCatalogDropsPhotoPrint(t *testing.T) {
	shop := &Shop{ID: "a", HasPhotoPrint: false}
	catalog := ResolveCatalog(shop, testPrices(), nil)
	require.Len(t, catalog, 2)
	for _, entry := range catalog {
		assert.False(t, entry.IsPhotoPrint)
	}
}

func TestResolveCatalogIgnoresForeignOverrides(t *testing.T) {
	shop := &Shop{ID: "a", CanEditPrices: true}
	overrides := []LocalPrice{{ShopID: "other", ServiceName: "B/N A4", Price: d("0.01")}}
	catalog := ResolveCatalog(shop, testPrices(), overrides)
	assert.False(t, catalog[0].IsCustom)
}

func TestResolveCatalogEmpty(t *testing.T) {
	catalog := ResolveCatalog(&Shop{ID: "a"}, nil, nil)
	assert.NotNil(t, catalog)
	assert.Empty(t, catalog)
}

func TestAdjustPrice(t *testing.T) {
	assert.True(t, AdjustPrice(d("1.00"), d("10")).Equal(d("1.10")))
	assert.True(t, AdjustPrice(d("2.00"), d("-50")).Equal(d("1.00")))

	// +10 then -10 does not restore 1.00.
	up := AdjustPrice(d("1.00"), d("10"))
	down := AdjustPrice(up, d("-10"))
	assert.True(t, down.Equal(d("0.99")), down.String())
	assert.False(t, down.Equal(d("1.00")))
}

func TestAdjustPriceRoundsHalfAwayFromZero(t *testing.T) {
	// 0.05 * 1.5 = 0.075
	assert.True(t, AdjustPrice(d("0.05"), d("50")).Equal(d("0.08")))
	assert.True(t, AdjustPrice(d("0.10"), d("-100")).IsZero())
}
