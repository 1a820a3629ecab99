package repository

import (
	"context"

	"github.com/zahrahiu/bloomcart/internal/catalog/domain"
)

// ProductRepository defines the interface for catalog product storage.
type ProductRepository interface {
	// GetByID retrieves a product by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns all products in insertion order.
	List(ctx context.Context) ([]domain.Product, error)

	// Upsert inserts or replaces a product.
	Upsert(ctx context.Context, product *domain.Product) error

	// ReplaceAll atomically swaps the whole catalog, preserving the given order.
	ReplaceAll(ctx context.Context, products []domain.Product) error
}

// AddonRepository defines the interface for the add-on catalog.
type AddonRepository interface {
	// GetByID retrieves an add-on by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Addon, error)

	// List returns all add-ons in insertion order.
	List(ctx context.Context) ([]domain.Addon, error)
}
