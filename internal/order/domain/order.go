package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status constants. An order starts pending and is decided exactly
// once: confirmed or refused. Decided orders are never reopened and orders
// are never deleted from the ledger.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusRefused   = "refused"
)

// Delivery method constants.
const (
	DeliveryMethodPickup  = "pickup"
	DeliveryMethodCourier = "courier"
)

// Payment method constants.
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// Order is one entry in the order ledger. Items are a deep copy of the cart
// at submission time; later catalog or cart changes never show through.
type Order struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Status         string          `json:"status"`
	Items          []Item          `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
	DeliveryMethod string          `json:"delivery_method"`
	PaymentMethod  string          `json:"payment_method"`
	BuyerName      string          `json:"buyer_name"`
	BuyerPhone     string          `json:"buyer_phone"`
	Recipient      *Recipient      `json:"recipient,omitempty"`
	MessageCard    string          `json:"message_card,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	DecidedAt      *time.Time      `json:"decided_at,omitempty"`
}

// Item is one product line frozen into an order.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Addons    []ItemAddon     `json:"addons,omitempty"`
}

// ItemAddon is one add-on frozen under an order item.
type ItemAddon struct {
	AddonID  string          `json:"addon_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Recipient holds who receives a courier delivery and where.
type Recipient struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
}

// Decided reports whether the order has left the pending state.
func (o *Order) Decided() bool {
	return o.Status != OrderStatusPending
}

// CanTransitionTo reports whether the order may move to the target status.
// Only pending orders transition, and only to a decided status.
func (o *Order) CanTransitionTo(target string) bool {
	if o.Status != OrderStatusPending {
		return false
	}
	return target == OrderStatusConfirmed || target == OrderStatusRefused
}

// LineTotal returns this item's contribution to the order subtotal.
func (i *Item) LineTotal() decimal.Decimal {
	total := i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
	for _, a := range i.Addons {
		total = total.Add(a.Price.Mul(decimal.NewFromInt(int64(a.Quantity))))
	}
	return total
}

// Clone returns a deep copy of the order.
func (o *Order) Clone() *Order {
	clone := *o
	clone.Items = make([]Item, len(o.Items))
	for i, item := range o.Items {
		ci := item
		ci.Addons = make([]ItemAddon, len(item.Addons))
		copy(ci.Addons, item.Addons)
		clone.Items[i] = ci
	}
	if o.Recipient != nil {
		r := *o.Recipient
		clone.Recipient = &r
	}
	if o.DecidedAt != nil {
		ts := *o.DecidedAt
		clone.DecidedAt = &ts
	}
	return &clone
}
