package memory

import (
	"context"
	"sync"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"

	"github.com/zahrahiu/bloomcart/internal/cart/domain"
)

// CartRepository is an in-memory cart store with optimistic versioning. It is
// an explicit instance injected where needed, never ambient global state, and
// its map is guarded by a single mutex.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

// NewCartRepository creates an empty in-memory cart repository.
func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts: make(map[string]*domain.Cart),
	}
}

// Get returns a deep copy of the stored cart so callers can never reach the
// stored snapshot through aliasing.
func (r *CartRepository) Get(_ context.Context, userID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, apperrors.NotFound("cart", userID)
	}
	return cart.Clone(), nil
}

// SaveIfVersion stores the cart if the kept snapshot still carries the
// expected version. The whole read-compare-write runs under the lock.
func (r *CartRepository) SaveIfVersion(_ context.Context, cart *domain.Cart, expectedVersion int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.carts[cart.UserID]
	if ok && current.Version != expectedVersion {
		return false, nil
	}
	if !ok && expectedVersion != 0 {
		return false, nil
	}

	stored := cart.Clone()
	stored.Version = expectedVersion + 1
	r.carts[cart.UserID] = stored

	// Reflect the committed version back to the caller's snapshot.
	cart.Version = stored.Version
	return true, nil
}

// Delete removes the cart for the user. Deleting an absent cart is a no-op.
func (r *CartRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
