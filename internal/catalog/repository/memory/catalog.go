package memory

import (
	"context"
	"sync"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"

	"github.com/zahrahiu/bloomcart/internal/catalog/domain"
)

// ProductRepository is an in-memory, mutex-guarded catalog store. Products are
// kept in insertion order so listings are stable across reads.
type ProductRepository struct {
	mu       sync.RWMutex
	byID     map[string]int
	products []domain.Product
}

// NewProductRepository creates an empty in-memory product repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		byID: make(map[string]int),
	}
}

// GetByID retrieves a product by its identifier.
func (r *ProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	p := r.products[idx]
	return &p, nil
}

// List returns a copy of all products in insertion order.
func (r *ProductRepository) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// Upsert inserts a new product or replaces an existing one in place.
func (r *ProductRepository) Upsert(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, ok := r.byID[product.ID]; ok {
		r.products[idx] = *product
		return nil
	}
	r.byID[product.ID] = len(r.products)
	r.products = append(r.products, *product)
	return nil
}

// ReplaceAll atomically swaps the whole catalog for the given products.
func (r *ProductRepository) ReplaceAll(_ context.Context, products []domain.Product) error {
	byID := make(map[string]int, len(products))
	copied := make([]domain.Product, len(products))
	copy(copied, products)
	for i, p := range copied {
		byID[p.ID] = i
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = byID
	r.products = copied
	return nil
}

// AddonRepository is an in-memory store for the static add-on catalog.
type AddonRepository struct {
	mu     sync.RWMutex
	byID   map[string]int
	addons []domain.Addon
}

// NewAddonRepository creates an add-on repository seeded with the given addons.
func NewAddonRepository(addons []domain.Addon) *AddonRepository {
	byID := make(map[string]int, len(addons))
	copied := make([]domain.Addon, len(addons))
	copy(copied, addons)
	for i, a := range copied {
		byID[a.ID] = i
	}
	return &AddonRepository{byID: byID, addons: copied}
}

// GetByID retrieves an add-on by its identifier.
func (r *AddonRepository) GetByID(_ context.Context, id string) (*domain.Addon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("addon", id)
	}
	a := r.addons[idx]
	return &a, nil
}

// List returns a copy of all add-ons in insertion order.
func (r *AddonRepository) List(_ context.Context) ([]domain.Addon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Addon, len(r.addons))
	copy(out, r.addons)
	return out, nil
}
