package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zahrahiu/bloomcart/internal/cart/domain"
	pkgkafka "github.com/zahrahiu/bloomcart/pkg/kafka"
)

// Kafka topic constants for cart domain events.
const (
	TopicCartUpdated = "bloomcart.cart.updated"
	TopicCartCleared = "bloomcart.cart.cleared"
)

// Aggregate type constant.
const AggregateTypeCart = "cart"

// Source identifier for events originating from the cart component.
const SourceCart = "cart-service"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	UserID    string     `json:"user_id"`
	Lines     []LineData `json:"lines"`
	ItemCount int        `json:"item_count"`
	Subtotal  string     `json:"subtotal"`
	Currency  string     `json:"currency"`
}

// LineData is the line payload within cart events.
type LineData struct {
	ProductID string      `json:"product_id"`
	Name      string      `json:"name"`
	UnitPrice string      `json:"unit_price"`
	Quantity  int         `json:"quantity"`
	Addons    []AddonData `json:"addons,omitempty"`
}

// AddonData is the add-on payload within cart events.
type AddonData struct {
	AddonID  string `json:"addon_id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	UserID string `json:"user_id"`
}

// Producer publishes cart domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the cart component.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	lines := make([]LineData, len(cart.Lines))
	for i, line := range cart.Lines {
		addons := make([]AddonData, len(line.Addons))
		for j, al := range line.Addons {
			addons[j] = AddonData{
				AddonID:  al.Addon.ID,
				Name:     al.Addon.Name,
				Price:    al.Addon.Price.StringFixed(2),
				Quantity: al.Quantity,
			}
		}
		lines[i] = LineData{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			UnitPrice: line.Product.EffectivePrice().StringFixed(2),
			Quantity:  line.Quantity,
			Addons:    addons,
		}
	}

	data := CartUpdatedData{
		UserID:    cart.UserID,
		Lines:     lines,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal().StringFixed(2),
		Currency:  cart.Currency,
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.UserID, AggregateTypeCart, SourceCart, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("user_id", cart.UserID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, userID string) error {
	data := CartClearedData{UserID: userID}

	event, err := pkgkafka.NewEvent(TopicCartCleared, userID, AggregateTypeCart, SourceCart, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("user_id", userID),
	)

	return nil
}
