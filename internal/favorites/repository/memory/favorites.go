package memory

import (
	"context"
	"sync"
)

// FavoritesRepository is the in-memory favorites store: per-user ordered sets
// of product ids.
type FavoritesRepository struct {
	mu    sync.RWMutex
	byKey map[string][]string
}

// NewFavoritesRepository creates an empty in-memory favorites store.
func NewFavoritesRepository() *FavoritesRepository {
	return &FavoritesRepository{
		byKey: make(map[string][]string),
	}
}

// Add records a product as a favorite. Adding twice is a no-op.
func (r *FavoritesRepository) Add(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.byKey[userID] {
		if id == productID {
			return nil
		}
	}
	r.byKey[userID] = append(r.byKey[userID], productID)
	return nil
}

// Remove drops a product from the user's favorites.
func (r *FavoritesRepository) Remove(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.byKey[userID]
	for i, id := range ids {
		if id == productID {
			r.byKey[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

// List returns the user's favorite product ids in insertion order.
func (r *FavoritesRepository) List(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byKey[userID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}
