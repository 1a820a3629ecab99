package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"

	catalog "github.com/zahrahiu/bloomcart/internal/catalog/domain"
	catalogrepo "github.com/zahrahiu/bloomcart/internal/catalog/repository"
	"github.com/zahrahiu/bloomcart/internal/favorites/repository"
)

// FavoritesService manages each user's favorite products.
type FavoritesService struct {
	repo     repository.FavoritesRepository
	products catalogrepo.ProductRepository
	logger   *slog.Logger
}

// NewFavoritesService creates a new favorites service.
func NewFavoritesService(repo repository.FavoritesRepository, products catalogrepo.ProductRepository, logger *slog.Logger) *FavoritesService {
	return &FavoritesService{
		repo:     repo,
		products: products,
		logger:   logger,
	}
}

// Add marks a catalog product as a favorite. The product must exist.
func (s *FavoritesService) Add(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return fmt.Errorf("get product: %w", err)
	}

	if err := s.repo.Add(ctx, userID, productID); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}

	s.logger.InfoContext(ctx, "favorite added",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	return nil
}

// Remove drops a product from the user's favorites. Removing an absent entry
// is a no-op.
func (s *FavoritesService) Remove(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}

	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}

	return nil
}

// List resolves the user's favorites against the catalog, in selection
// order. Products that have since left the catalog are skipped.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]catalog.Product, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	ids, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	products := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.products.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get product: %w", err)
		}
		products = append(products, *product)
	}
	return products, nil
}
