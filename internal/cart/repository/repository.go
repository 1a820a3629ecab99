package repository

import (
	"context"

	"github.com/zahrahiu/bloomcart/internal/cart/domain"
)

// CartRepository defines the interface for cart snapshot storage. A cart is
// always saved and loaded as a whole value; partial updates do not exist.
type CartRepository interface {
	// Get retrieves the cart snapshot for a user.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// SaveIfVersion persists the cart only if the stored snapshot still has
	// the expected version, bumping the version on success. Returns false
	// (with no error) when another writer got there first. An absent cart
	// matches expected version 0. This compare-and-swap is the single
	// serialization point for cart mutation.
	SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) (bool, error)

	// Delete removes the cart for the user.
	Delete(ctx context.Context, userID string) error
}
