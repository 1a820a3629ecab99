package memory

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"

	"github.com/zahrahiu/bloomcart/internal/order/domain"
	"github.com/zahrahiu/bloomcart/internal/order/repository"
)

// OrderRepository is the in-memory order ledger. Insertion order is kept so
// listings can be returned newest first, and the mutex covers the whole
// read-check-write of a decision so two concurrent decisions cannot both
// apply.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []*domain.Order
	index  map[string]int
}

// NewOrderRepository creates an empty in-memory order ledger.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		index: make(map[string]int),
	}
}

// Create appends a new order to the ledger.
func (r *OrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[order.ID]; ok {
		return apperrors.AlreadyExists("order", "id", order.ID)
	}

	r.index[order.ID] = len(r.orders)
	r.orders = append(r.orders, order.Clone())
	return nil
}

// GetByID retrieves an order by id.
func (r *OrderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.NotFound("order", id)
	}
	return r.orders[i].Clone(), nil
}

// List returns orders matching the filter, newest first.
func (r *OrderRepository) List(_ context.Context, filter repository.Filter) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		o := r.orders[i]
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		result = append(result, *o.Clone())
	}
	return result, nil
}

// Decide moves a pending order to the target decided status, atomically.
func (r *OrderRepository) Decide(_ context.Context, id, target string) (*domain.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, false, nil
	}

	order := r.orders[i]
	if !order.CanTransitionTo(target) {
		return order.Clone(), false, nil
	}

	now := time.Now().UTC()
	order.Status = target
	order.DecidedAt = &now
	return order.Clone(), true, nil
}
