package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"

	"github.com/zahrahiu/bloomcart/internal/catalog/domain"
	"github.com/zahrahiu/bloomcart/internal/catalog/repository"
)

// Feed supplies normalized products from the external listing endpoint.
type Feed interface {
	Fetch(ctx context.Context) ([]domain.Product, error)
}

// Filter holds the browse/search criteria for listing products.
// Zero-valued fields are ignored.
type Filter struct {
	Query    string
	Type     string
	Color    string
	Occasion string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// CatalogService implements the business logic for catalog operations.
type CatalogService struct {
	products repository.ProductRepository
	addons   repository.AddonRepository
	feed     Feed
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	products repository.ProductRepository,
	addons repository.AddonRepository,
	feed Feed,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		products: products,
		addons:   addons,
		feed:     feed,
		logger:   logger,
	}
}

// GetProduct retrieves a single product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// ListProducts returns the products matching the given filter, preserving
// catalog order. Filtering on the effective (discounted) price so the shopper
// sees consistent results with the displayed amounts.
func (s *CatalogService) ListProducts(ctx context.Context, filter Filter) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(&p, filter) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListAddons returns the add-on catalog.
func (s *CatalogService) ListAddons(ctx context.Context) ([]domain.Addon, error) {
	addons, err := s.addons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list addons: %w", err)
	}
	return addons, nil
}

// Refresh pulls the external product feed and swaps the catalog atomically.
// Returns the number of products ingested.
func (s *CatalogService) Refresh(ctx context.Context) (int, error) {
	products, err := s.feed.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("refresh catalog: %w", err)
	}

	if err := s.products.ReplaceAll(ctx, products); err != nil {
		return 0, fmt.Errorf("replace catalog: %w", err)
	}

	s.logger.InfoContext(ctx, "catalog refreshed from feed",
		slog.Int("product_count", len(products)),
	)

	return len(products), nil
}

// Seed loads an initial product set directly, bypassing the feed. Used at
// startup so the shop is browsable before the first refresh.
func (s *CatalogService) Seed(ctx context.Context, products []domain.Product) error {
	if err := s.products.ReplaceAll(ctx, products); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	s.logger.Info("catalog seeded", slog.Int("product_count", len(products)))
	return nil
}

func matches(p *domain.Product, f Filter) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if f.Type != "" && !strings.EqualFold(p.Type, f.Type) {
		return false
	}
	if f.Color != "" && !containsFold(p.Colors, f.Color) {
		return false
	}
	if f.Occasion != "" && !containsFold(p.Occasions, f.Occasion) {
		return false
	}

	price := p.EffectivePrice()
	if f.MinPrice != nil && price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
