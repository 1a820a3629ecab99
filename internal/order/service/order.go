package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"

	"github.com/zahrahiu/bloomcart/internal/order/domain"
	"github.com/zahrahiu/bloomcart/internal/order/event"
	"github.com/zahrahiu/bloomcart/internal/order/repository"
)

// CreateOrderInput holds everything needed to append a new pending order to
// the ledger. Items are expected to be a frozen snapshot; the ledger never
// reads back into the catalog or the cart.
type CreateOrderInput struct {
	UserID         string
	Items          []domain.Item
	Subtotal       decimal.Decimal
	DeliveryFee    decimal.Decimal
	Total          decimal.Decimal
	Currency       string
	DeliveryMethod string
	PaymentMethod  string
	BuyerName      string
	BuyerPhone     string
	Recipient      *domain.Recipient
	MessageCard    string
}

// OrderService implements the order ledger business logic.
type OrderService struct {
	repo     repository.OrderRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, producer *event.Producer, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// Create appends a new pending order to the ledger and announces it.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if input.UserID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if len(input.Items) == 0 {
		return nil, apperrors.InvalidInput("order must contain at least one item")
	}

	order := &domain.Order{
		ID:             uuid.New().String(),
		UserID:         input.UserID,
		Status:         domain.OrderStatusPending,
		Items:          input.Items,
		Subtotal:       input.Subtotal,
		DeliveryFee:    input.DeliveryFee,
		Total:          input.Total,
		Currency:       input.Currency,
		DeliveryMethod: input.DeliveryMethod,
		PaymentMethod:  input.PaymentMethod,
		BuyerName:      input.BuyerName,
		BuyerPhone:     input.BuyerPhone,
		Recipient:      input.Recipient,
		MessageCard:    input.MessageCard,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	ordersTotal.WithLabelValues(domain.OrderStatusPending).Inc()

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
		slog.String("total", order.Total.StringFixed(2)),
	)

	return order, nil
}

// GetByID retrieves an order by id.
func (s *OrderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// List returns all orders, newest first.
func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.List(ctx, repository.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListPending returns all orders still awaiting a decision, newest first.
func (s *OrderService) ListPending(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.List(ctx, repository.Filter{Status: domain.OrderStatusPending})
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	return orders, nil
}

// ListByUser returns a user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	orders, err := s.repo.List(ctx, repository.Filter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	return orders, nil
}

// Confirm moves a pending order to confirmed. Confirming an already-decided
// or missing order is a no-op, not an error, so retried admin actions cannot
// flip a decision.
func (s *OrderService) Confirm(ctx context.Context, id string) (*domain.Order, error) {
	return s.decide(ctx, id, domain.OrderStatusConfirmed)
}

// Refuse moves a pending order to refused, with the same idempotency as Confirm.
func (s *OrderService) Refuse(ctx context.Context, id string) (*domain.Order, error) {
	return s.decide(ctx, id, domain.OrderStatusRefused)
}

func (s *OrderService) decide(ctx context.Context, id, target string) (*domain.Order, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	order, applied, err := s.repo.Decide(ctx, id, target)
	if err != nil {
		return nil, fmt.Errorf("decide order: %w", err)
	}

	if !applied {
		s.logger.InfoContext(ctx, "order decision skipped",
			slog.String("order_id", id),
			slog.String("target", target),
			slog.Bool("exists", order != nil),
		)
		return order, nil
	}

	ordersTotal.WithLabelValues(target).Inc()

	if err := s.producer.PublishOrderDecided(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order decision event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order decided",
		slog.String("order_id", order.ID),
		slog.String("status", order.Status),
	)

	return order, nil
}
