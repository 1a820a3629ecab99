package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zahrahiu/bloomcart/internal/order/domain"
	pkgkafka "github.com/zahrahiu/bloomcart/pkg/kafka"
)

// Kafka topic constants for order domain events.
const (
	TopicOrderCreated   = "bloomcart.order.created"
	TopicOrderConfirmed = "bloomcart.order.confirmed"
	TopicOrderRefused   = "bloomcart.order.refused"
)

// Aggregate type constant.
const AggregateTypeOrder = "order"

// Source identifier for events originating from the order ledger.
const SourceOrders = "order-service"

// OrderCreatedData is the payload for an order.created event.
type OrderCreatedData struct {
	OrderID        string `json:"order_id"`
	UserID         string `json:"user_id"`
	Total          string `json:"total"`
	Currency       string `json:"currency"`
	DeliveryMethod string `json:"delivery_method"`
	PaymentMethod  string `json:"payment_method"`
	ItemCount      int    `json:"item_count"`
}

// OrderDecidedData is the payload for order.confirmed and order.refused events.
type OrderDecidedData struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
	Status  string `json:"status"`
}

// Producer publishes order domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the order ledger.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishOrderCreated publishes an order.created event.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	itemCount := 0
	for _, item := range order.Items {
		itemCount += item.Quantity
	}

	data := OrderCreatedData{
		OrderID:        order.ID,
		UserID:         order.UserID,
		Total:          order.Total.StringFixed(2),
		Currency:       order.Currency,
		DeliveryMethod: order.DeliveryMethod,
		PaymentMethod:  order.PaymentMethod,
		ItemCount:      itemCount,
	}

	event, err := pkgkafka.NewEvent(TopicOrderCreated, order.ID, AggregateTypeOrder, SourceOrders, data)
	if err != nil {
		return fmt.Errorf("create order.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCreated, event); err != nil {
		return fmt.Errorf("publish order.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.String("order_id", order.ID),
	)

	return nil
}

// PublishOrderDecided publishes an order.confirmed or order.refused event
// depending on the order's decided status.
func (p *Producer) PublishOrderDecided(ctx context.Context, order *domain.Order) error {
	topic := TopicOrderConfirmed
	if order.Status == domain.OrderStatusRefused {
		topic = TopicOrderRefused
	}

	data := OrderDecidedData{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
	}

	event, err := pkgkafka.NewEvent(topic, order.ID, AggregateTypeOrder, SourceOrders, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published order decision event",
		slog.String("order_id", order.ID),
		slog.String("status", order.Status),
	)

	return nil
}
