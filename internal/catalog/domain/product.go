package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a purchasable bouquet in the catalog. Prices are exact
// decimals in the shop currency; string-decorated feed values are normalized
// before a Product is ever constructed.
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	Stock           *int            `json:"stock,omitempty"`
	DiscountPercent *int            `json:"discount_percent,omitempty"`
	Type            string          `json:"type,omitempty"`
	Colors          []string        `json:"colors,omitempty"`
	Occasions       []string        `json:"occasions,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Unbounded reports whether the product has no stock limit. A nil Stock means
// the upstream feed value could not be parsed and the quantity is unlimited.
func (p *Product) Unbounded() bool {
	return p.Stock == nil
}

// AvailableStock returns the purchasable quantity and whether it is bounded.
func (p *Product) AvailableStock() (int, bool) {
	if p.Stock == nil {
		return 0, false
	}
	return *p.Stock, true
}

// EffectivePrice returns the unit price after applying any active discount
// percentage, as exact decimal arithmetic: price * (100 - discount) / 100.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPercent == nil {
		return p.Price
	}
	d := int64(*p.DiscountPercent)
	return p.Price.Mul(decimal.NewFromInt(100 - d)).Div(decimal.NewFromInt(100))
}

// HasDiscount reports whether a discount percentage is set on the product.
func (p *Product) HasDiscount() bool {
	return p.DiscountPercent != nil && *p.DiscountPercent > 0
}

// Addon represents an optional extra (vase, chocolates, greeting card) that
// can be attached to a cart line. Add-ons carry no stock constraint.
type Addon struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	ImageURL string          `json:"image_url,omitempty"`
}
