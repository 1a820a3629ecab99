package repository

import "context"

// FavoritesRepository stores each user's favorite product ids in selection
// order.
type FavoritesRepository interface {
	// Add records a product as a favorite. Adding twice is a no-op.
	Add(ctx context.Context, userID, productID string) error

	// Remove drops a product from the user's favorites. Removing an absent
	// entry is a no-op.
	Remove(ctx context.Context, userID, productID string) error

	// List returns the user's favorite product ids in insertion order.
	List(ctx context.Context, userID string) ([]string, error)
}
