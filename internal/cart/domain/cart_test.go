package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/zahrahiu/bloomcart/internal/catalog/domain"
)

func intPtr(v int) *int { return &v }

func discountedRoses() catalog.Product {
	return catalog.Product{
		ID:              "rose-01",
		Name:            "Red Roses",
		Price:           decimal.NewFromInt(100),
		Currency:        "MAD",
		Stock:           intPtr(10),
		DiscountPercent: intPtr(20),
	}
}

func vase() catalog.Addon {
	return catalog.Addon{ID: "vase", Name: "Glass Vase", Price: decimal.NewFromInt(25), Currency: "MAD"}
}

func TestLineTotal_DiscountAndAddon(t *testing.T) {
	// price 100, discount 20%, qty 2, one add-on at 25 x1:
	// (100*0.8)*2 + 25 = 185
	line := Line{
		Product:  discountedRoses(),
		Quantity: 2,
		Addons:   []AddonLine{{Addon: vase(), Quantity: 1}},
	}

	assert.True(t, decimal.NewFromInt(185).Equal(line.Total()))
}

func TestLineTotal_NoDiscount(t *testing.T) {
	p := catalog.Product{ID: "lily", Price: decimal.NewFromInt(50)}
	line := Line{
		Product:  p,
		Quantity: 3,
		Addons:   []AddonLine{{Addon: vase(), Quantity: 2}},
	}

	// 50*3 + 25*2 = 200
	assert.True(t, decimal.NewFromInt(200).Equal(line.Total()))
}

func TestCartTotals_WithDeliveryFee(t *testing.T) {
	cart := Cart{
		Currency: "MAD",
		Lines: []Line{{
			Product:  discountedRoses(),
			Quantity: 2,
			Addons:   []AddonLine{{Addon: vase(), Quantity: 1}},
		}},
	}

	totals := cart.ComputeTotals(decimal.NewFromInt(20))

	assert.True(t, decimal.NewFromInt(185).Equal(totals.Subtotal))
	assert.True(t, decimal.NewFromInt(205).Equal(totals.Total))
	assert.Equal(t, "205.00", totals.DisplayTotal)
	assert.Equal(t, "185.00", totals.DisplaySubtotal)
}

func TestLineTotal_NoPrematureTruncation(t *testing.T) {
	// 99.90 with 15% off is 84.915 per unit; for qty 2 the exact total is
	// 169.83 and must not round through an intermediate step.
	p := catalog.Product{
		ID:              "peony",
		Price:           decimal.RequireFromString("99.90"),
		DiscountPercent: intPtr(15),
	}
	line := Line{Product: p, Quantity: 2}

	assert.True(t, decimal.RequireFromString("169.83").Equal(line.Total()))
}

func TestFindLineIndex(t *testing.T) {
	cart := Cart{Lines: []Line{
		{Product: catalog.Product{ID: "a"}, Quantity: 1},
		{Product: catalog.Product{ID: "b"}, Quantity: 1},
	}}

	assert.Equal(t, 1, cart.FindLineIndex("b"))
	assert.Equal(t, -1, cart.FindLineIndex("z"))
}

func TestItemCount(t *testing.T) {
	cart := Cart{Lines: []Line{
		{Product: catalog.Product{ID: "a"}, Quantity: 2},
		{Product: catalog.Product{ID: "b"}, Quantity: 3},
	}}

	assert.Equal(t, 5, cart.ItemCount())
}

func TestClone_IsDeep(t *testing.T) {
	original := &Cart{
		ID: "cart-1",
		Lines: []Line{{
			Product:  discountedRoses(),
			Quantity: 1,
			Addons:   []AddonLine{{Addon: vase(), Quantity: 1}},
		}},
	}

	clone := original.Clone()
	clone.Lines[0].Quantity = 9
	clone.Lines[0].Addons[0].Quantity = 9

	require.Equal(t, 1, original.Lines[0].Quantity)
	require.Equal(t, 1, original.Lines[0].Addons[0].Quantity)
}

func TestFindAddonIndex(t *testing.T) {
	line := Line{Addons: []AddonLine{{Addon: vase(), Quantity: 1}}}

	assert.Equal(t, 0, line.FindAddonIndex("vase"))
	assert.Equal(t, -1, line.FindAddonIndex("ribbon"))
}
