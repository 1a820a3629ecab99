package domain

import (
	"time"

	"github.com/shopspring/decimal"

	catalog "github.com/zahrahiu/bloomcart/internal/catalog/domain"
)

// AddonLine is one selected add-on nested under a cart line. Quantity never
// falls below 1: decrementing at the floor is a no-op, and removal is only
// possible by removing the whole line.
type AddonLine struct {
	Addon    catalog.Addon `json:"addon"`
	Quantity int           `json:"quantity"`
}

// Total returns the add-on contribution: price * quantity.
func (a *AddonLine) Total() decimal.Decimal {
	return a.Addon.Price.Mul(decimal.NewFromInt(int64(a.Quantity)))
}

// Line is one product entry in the cart: a product snapshot, its quantity and
// the selected add-ons in selection order. Add-on ids are unique within a
// line. Quantity is bounded by the snapshot's stock and floored at 1.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Addons   []AddonLine     `json:"addons,omitempty"`
}

// FindAddonIndex returns the index of the add-on line with the given id, or -1.
func (l *Line) FindAddonIndex(addonID string) int {
	for i := range l.Addons {
		if l.Addons[i].Addon.ID == addonID {
			return i
		}
	}
	return -1
}

// Total computes the line total: effective unit price times quantity, plus
// every add-on's price times its quantity. Exact decimal arithmetic
// throughout; rounding happens only at display time.
func (l *Line) Total() decimal.Decimal {
	total := l.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
	for i := range l.Addons {
		total = total.Add(l.Addons[i].Total())
	}
	return total
}

// Cart is the current shopping session's cart. It is treated as an immutable
// value: every mutation clones the cart, applies the change to the clone and
// republishes it as one atomic snapshot, so a holder of a previous snapshot
// never observes partial in-place mutation.
type Cart struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Lines     []Line    `json:"lines"`
	Currency  string    `json:"currency"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FindLineIndex returns the index of the line holding the given product id,
// or -1 if the product is not in the cart.
func (c *Cart) FindLineIndex(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Subtotal sums the totals of all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for i := range c.Lines {
		subtotal = subtotal.Add(c.Lines[i].Total())
	}
	return subtotal
}

// Total returns subtotal plus the delivery fee.
func (c *Cart) Total(deliveryFee decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Add(deliveryFee)
}

// ItemCount returns the total number of product units in the cart.
func (c *Cart) ItemCount() int {
	var count int
	for i := range c.Lines {
		count += c.Lines[i].Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clone returns a deep copy of the cart. Lines and nested add-on slices are
// copied so mutating the clone can never leak into a published snapshot.
func (c *Cart) Clone() *Cart {
	clone := *c
	clone.Lines = make([]Line, len(c.Lines))
	for i := range c.Lines {
		clone.Lines[i] = c.Lines[i]
		if len(c.Lines[i].Addons) > 0 {
			clone.Lines[i].Addons = make([]AddonLine, len(c.Lines[i].Addons))
			copy(clone.Lines[i].Addons, c.Lines[i].Addons)
		}
	}
	return &clone
}

// Totals is the computed price breakdown surfaced to checkout and the order
// summary. Amounts are exact; Display* fields are rounded to two decimals.
type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	Total           decimal.Decimal `json:"total"`
	Currency        string          `json:"currency"`
	DisplaySubtotal string          `json:"display_subtotal"`
	DisplayTotal    string          `json:"display_total"`
}

// ComputeTotals builds the price breakdown for the cart with the given fee.
func (c *Cart) ComputeTotals(deliveryFee decimal.Decimal) Totals {
	subtotal := c.Subtotal()
	total := subtotal.Add(deliveryFee)
	return Totals{
		Subtotal:        subtotal,
		DeliveryFee:     deliveryFee,
		Total:           total,
		Currency:        c.Currency,
		DisplaySubtotal: subtotal.StringFixed(2),
		DisplayTotal:    total.StringFixed(2),
	}
}
