package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"
	"github.com/zahrahiu/bloomcart/pkg/validator"

	cartdomain "github.com/zahrahiu/bloomcart/internal/cart/domain"
	orderdomain "github.com/zahrahiu/bloomcart/internal/order/domain"
	ordersvc "github.com/zahrahiu/bloomcart/internal/order/service"
)

// SubmitInput carries everything the buyer fills in at checkout. Recipient
// fields are required only for courier delivery; a blank required field is an
// explicit validation failure, never a silent no-op.
type SubmitInput struct {
	DeliveryMethod   string `json:"delivery_method" validate:"required,oneof=pickup courier"`
	PaymentMethod    string `json:"payment_method" validate:"required,oneof=cash card"`
	BuyerName        string `json:"buyer_name" validate:"required,min=1,max=200"`
	BuyerPhone       string `json:"buyer_phone" validate:"required,e164"`
	RecipientName    string `json:"recipient_name" validate:"required_if=DeliveryMethod courier,omitempty,max=200"`
	RecipientPhone   string `json:"recipient_phone" validate:"required_if=DeliveryMethod courier,omitempty,e164"`
	RecipientAddress string `json:"recipient_address" validate:"required_if=DeliveryMethod courier,omitempty,max=500"`
	RecipientCity    string `json:"recipient_city" validate:"omitempty,max=100"`
	MessageCard      string `json:"message_card" validate:"omitempty,max=500"`
}

// CartReader is the slice of the cart service checkout needs.
type CartReader interface {
	GetCart(ctx context.Context, userID string) (*cartdomain.Cart, error)
}

// OrderCreator is the slice of the order ledger checkout needs.
type OrderCreator interface {
	Create(ctx context.Context, input ordersvc.CreateOrderInput) (*orderdomain.Order, error)
}

// CheckoutService turns a non-empty cart plus buyer details into a pending
// order. Totals are recomputed at the moment of submission, and the fixed
// delivery fee applies to every order regardless of delivery method. The
// cart is left untouched: clearing it is the caller's explicit follow-up
// once the buyer has acknowledged the order summary.
type CheckoutService struct {
	carts       CartReader
	orders      OrderCreator
	deliveryFee decimal.Decimal
	logger      *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(carts CartReader, orders OrderCreator, deliveryFee decimal.Decimal, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:       carts,
		orders:      orders,
		deliveryFee: deliveryFee,
		logger:      logger,
	}
}

// Submit validates the buyer's input, snapshots the cart and appends a
// pending order to the ledger.
func (s *CheckoutService) Submit(ctx context.Context, userID string, input SubmitInput) (*orderdomain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	totals := cart.ComputeTotals(s.deliveryFee)

	orderInput := ordersvc.CreateOrderInput{
		UserID:         userID,
		Items:          snapshotItems(cart),
		Subtotal:       totals.Subtotal,
		DeliveryFee:    totals.DeliveryFee,
		Total:          totals.Total,
		Currency:       cart.Currency,
		DeliveryMethod: input.DeliveryMethod,
		PaymentMethod:  input.PaymentMethod,
		BuyerName:      input.BuyerName,
		BuyerPhone:     input.BuyerPhone,
		MessageCard:    input.MessageCard,
	}
	if input.DeliveryMethod == orderdomain.DeliveryMethodCourier {
		orderInput.Recipient = &orderdomain.Recipient{
			Name:    input.RecipientName,
			Phone:   input.RecipientPhone,
			Address: input.RecipientAddress,
			City:    input.RecipientCity,
		}
	}

	order, err := s.orders.Create(ctx, orderInput)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.InfoContext(ctx, "checkout submitted",
		slog.String("user_id", userID),
		slog.String("order_id", order.ID),
		slog.String("delivery_method", order.DeliveryMethod),
		slog.String("total", order.Total.StringFixed(2)),
	)

	return order, nil
}

// snapshotItems freezes the cart lines into order items. Unit prices are the
// effective (discounted) prices at submission time.
func snapshotItems(cart *cartdomain.Cart) []orderdomain.Item {
	items := make([]orderdomain.Item, len(cart.Lines))
	for i, line := range cart.Lines {
		addons := make([]orderdomain.ItemAddon, len(line.Addons))
		for j, al := range line.Addons {
			addons[j] = orderdomain.ItemAddon{
				AddonID:  al.Addon.ID,
				Name:     al.Addon.Name,
				Price:    al.Addon.Price,
				Quantity: al.Quantity,
			}
		}
		items[i] = orderdomain.Item{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			ImageURL:  line.Product.ImageURL,
			UnitPrice: line.Product.EffectivePrice(),
			Quantity:  line.Quantity,
			Addons:    addons,
		}
	}
	return items
}
