package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"

	"github.com/zahrahiu/bloomcart/internal/cart/domain"
	"github.com/zahrahiu/bloomcart/internal/cart/event"
	"github.com/zahrahiu/bloomcart/internal/cart/repository"
	catalog "github.com/zahrahiu/bloomcart/internal/catalog/domain"
	catalogrepo "github.com/zahrahiu/bloomcart/internal/catalog/repository"
)

// AddonRequest selects an add-on and a quantity when adding a product to the
// cart. Entries with a quantity of zero or less are silently dropped.
type AddonRequest struct {
	AddonID  string `json:"addon_id" validate:"required"`
	Quantity int    `json:"quantity"`
}

// CartService implements the business logic for cart operations. Every
// mutation works on a private copy of the stored cart and commits it through
// an optimistic version check, so a rejected or conflicting mutation never
// leaves a half-applied cart behind.
type CartService struct {
	repo     repository.CartRepository
	products catalogrepo.ProductRepository
	addons   catalogrepo.AddonRepository
	producer *event.Producer
	logger   *slog.Logger
	currency string
}

// NewCartService creates a new cart service.
func NewCartService(
	repo repository.CartRepository,
	products catalogrepo.ProductRepository,
	addons catalogrepo.AddonRepository,
	producer *event.Producer,
	logger *slog.Logger,
	currency string,
) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		addons:   addons,
		producer: producer,
		logger:   logger,
		currency: currency,
	}
}

// GetCart retrieves the cart for a user. If no cart exists, returns an empty cart.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(userID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddLine adds one unit of a product to the user's cart together with the
// requested add-ons. If a line for the product already exists its quantity is
// incremented by one and the add-ons merge additively into it; otherwise a
// new line with quantity one is created. A mutation that would push the line
// quantity past the product's available stock is rejected whole: neither the
// unit increment nor any add-on merge is applied.
func (s *CartService) AddLine(ctx context.Context, userID, productID string, addonReqs []AddonRequest) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	// Resolve the add-on selection up front so a bad add-on id fails the
	// whole call before any cart state is touched.
	requested := make([]domain.AddonLine, 0, len(addonReqs))
	for _, req := range addonReqs {
		if req.Quantity <= 0 {
			continue
		}
		addon, err := s.addons.GetByID(ctx, req.AddonID)
		if err != nil {
			return nil, fmt.Errorf("get addon: %w", err)
		}
		requested = append(requested, domain.AddonLine{Addon: *addon, Quantity: req.Quantity})
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	expectedVersion := cart.Version

	idx := cart.FindLineIndex(productID)
	if idx >= 0 {
		if err := checkStock(product, cart.Lines[idx].Quantity+1); err != nil {
			return nil, err
		}
		cart.Lines[idx].Quantity++
		mergeAddons(&cart.Lines[idx], requested)
	} else {
		if err := checkStock(product, 1); err != nil {
			return nil, err
		}
		line := domain.Line{Product: *product, Quantity: 1}
		mergeAddons(&line, requested)
		cart.Lines = append(cart.Lines, line)
	}

	if err := s.commit(ctx, cart, expectedVersion, "add_line"); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "product added to cart",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
		slog.Int("addons", len(requested)),
	)

	return cart, nil
}

// IncrementLine increments a line's product quantity by one. This is the only
// other stock gate in the system; no other path re-validates stock.
func (s *CartService) IncrementLine(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	return s.mutateLine(ctx, userID, productID, "increment_line", func(line *domain.Line) error {
		if err := checkStock(&line.Product, line.Quantity+1); err != nil {
			return err
		}
		line.Quantity++
		return nil
	})
}

// DecrementLine decrements a line's product quantity by one. Quantity one is
// a floor: decrementing there is a no-op, never a removal.
func (s *CartService) DecrementLine(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	return s.mutateLine(ctx, userID, productID, "decrement_line", func(line *domain.Line) error {
		if line.Quantity > 1 {
			line.Quantity--
		}
		return nil
	})
}

// IncrementAddon increments the quantity of an add-on already on the line.
func (s *CartService) IncrementAddon(ctx context.Context, userID, productID, addonID string) (*domain.Cart, error) {
	if addonID == "" {
		return nil, apperrors.InvalidInput("addon id is required")
	}
	return s.mutateLine(ctx, userID, productID, "increment_addon", func(line *domain.Line) error {
		i := line.FindAddonIndex(addonID)
		if i < 0 {
			return apperrors.NotFound("cart addon", addonID)
		}
		line.Addons[i].Quantity++
		return nil
	})
}

// DecrementAddon decrements the quantity of an add-on on the line, with a
// floor of one.
func (s *CartService) DecrementAddon(ctx context.Context, userID, productID, addonID string) (*domain.Cart, error) {
	if addonID == "" {
		return nil, apperrors.InvalidInput("addon id is required")
	}
	return s.mutateLine(ctx, userID, productID, "decrement_addon", func(line *domain.Line) error {
		i := line.FindAddonIndex(addonID)
		if i < 0 {
			return apperrors.NotFound("cart addon", addonID)
		}
		if line.Addons[i].Quantity > 1 {
			line.Addons[i].Quantity--
		}
		return nil
	})
}

// RemoveLine removes a product line from the cart. This is the only way a
// line leaves the cart short of clearing it.
func (s *CartService) RemoveLine(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart for remove: %w", err)
	}

	expectedVersion := cart.Version

	idx := cart.FindLineIndex(productID)
	if idx < 0 {
		return nil, apperrors.NotFound("cart line", productID)
	}
	cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)

	if err := s.commit(ctx, cart, expectedVersion, "remove_line"); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "line removed from cart",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	return cart, nil
}

// ClearCart removes the user's cart entirely.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	cartMutationsTotal.WithLabelValues("clear").Inc()

	if err := s.producer.PublishCartCleared(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("user_id", userID),
	)

	return nil
}

// Totals computes the priced view of the user's cart with the given delivery
// fee. An absent cart prices as an empty one.
func (s *CartService) Totals(ctx context.Context, userID string, deliveryFee decimal.Decimal) (domain.Totals, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return domain.Totals{}, err
	}
	return cart.ComputeTotals(deliveryFee), nil
}

// mutateLine loads the cart, applies fn to the line for productID and commits
// the result. fn runs against a private copy, so returning an error leaves
// the stored cart untouched.
func (s *CartService) mutateLine(ctx context.Context, userID, productID, operation string, fn func(*domain.Line) error) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	expectedVersion := cart.Version

	idx := cart.FindLineIndex(productID)
	if idx < 0 {
		return nil, apperrors.NotFound("cart line", productID)
	}

	if err := fn(&cart.Lines[idx]); err != nil {
		return nil, err
	}

	if err := s.commit(ctx, cart, expectedVersion, operation); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart line updated",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
		slog.String("operation", operation),
	)

	return cart, nil
}

// commit stamps, saves and announces a mutated cart. A version mismatch means
// another writer got there first and surfaces as a conflict.
func (s *CartService) commit(ctx context.Context, cart *domain.Cart, expectedVersion int, operation string) error {
	cart.UpdatedAt = time.Now().UTC()

	ok, err := s.repo.SaveIfVersion(ctx, cart, expectedVersion)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	if !ok {
		return apperrors.Conflict("cart was modified concurrently, please retry")
	}

	cartMutationsTotal.WithLabelValues(operation).Inc()

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", cart.UserID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// getOrCreateCart retrieves the cart for a user, creating an empty one if it
// does not exist.
func (s *CartService) getOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(userID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// newEmptyCart creates a new empty cart for the given user.
func (s *CartService) newEmptyCart(userID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:        uuid.New().String(),
		UserID:    userID,
		Lines:     []domain.Line{},
		Currency:  s.currency,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// checkStock rejects a requested line quantity that exceeds the product's
// available stock. Unbounded stock never rejects.
func checkStock(p *catalog.Product, requested int) error {
	if stock, bounded := p.AvailableStock(); bounded && requested > stock {
		stockRejectionsTotal.Inc()
		return apperrors.InsufficientStock(p.ID, stock, requested)
	}
	return nil
}

// mergeAddons folds the requested add-ons into the line: quantities for
// add-ons already on the line accumulate, new ones append in request order.
func mergeAddons(line *domain.Line, requested []domain.AddonLine) {
	for _, req := range requested {
		if i := line.FindAddonIndex(req.Addon.ID); i >= 0 {
			line.Addons[i].Quantity += req.Quantity
		} else {
			line.Addons = append(line.Addons, req)
		}
	}
}
