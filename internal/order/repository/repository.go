package repository

import (
	"context"

	"github.com/zahrahiu/bloomcart/internal/order/domain"
)

// Filter narrows a ledger listing. Zero values mean "any".
type Filter struct {
	Status string
	UserID string
}

// OrderRepository defines the order ledger persistence interface. Orders are
// append-and-decide only: there is no delete and no update besides the single
// pending-to-decided transition.
type OrderRepository interface {
	// Create appends a new order to the ledger.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by id.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// List returns orders matching the filter, newest first.
	List(ctx context.Context, filter Filter) ([]domain.Order, error)

	// Decide moves a pending order to the target decided status. The whole
	// read-check-write runs atomically. It returns the stored order after the
	// call and whether the transition was applied: an already-decided order
	// returns (order, false, nil), an absent id returns (nil, false, nil).
	Decide(ctx context.Context, id, target string) (*domain.Order, bool, error)
}
