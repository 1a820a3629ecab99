package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"
	pkgkafka "github.com/zahrahiu/bloomcart/pkg/kafka"

	"github.com/zahrahiu/bloomcart/internal/order/domain"
	"github.com/zahrahiu/bloomcart/internal/order/event"
	"github.com/zahrahiu/bloomcart/internal/order/repository/memory"
)

func newTestService() *OrderService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig([]string{"localhost:19092"}), logger)
	producer := event.NewProducer(kafkaProducer, logger)
	return NewOrderService(memory.NewOrderRepository(), producer, logger)
}

func sampleInput(userID string) CreateOrderInput {
	return CreateOrderInput{
		UserID: userID,
		Items: []domain.Item{{
			ProductID: "rose-bouquet",
			Name:      "Red Rose Bouquet",
			UnitPrice: decimal.NewFromInt(80),
			Quantity:  2,
			Addons: []domain.ItemAddon{
				{AddonID: "vase", Name: "Glass Vase", Price: decimal.NewFromInt(25), Quantity: 1},
			},
		}},
		Subtotal:       decimal.NewFromInt(185),
		DeliveryFee:    decimal.NewFromInt(20),
		Total:          decimal.NewFromInt(205),
		Currency:       "MAD",
		DeliveryMethod: domain.DeliveryMethodCourier,
		PaymentMethod:  domain.PaymentMethodCash,
		BuyerName:      "Amina",
		BuyerPhone:     "+212600000000",
		Recipient:      &domain.Recipient{Name: "Sara", Phone: "+212611111111", Address: "12 Rue des Fleurs", City: "Rabat"},
	}
}

func TestCreate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	order, err := svc.Create(ctx, sampleInput("user-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.False(t, order.CreatedAt.IsZero())

	got, err := svc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(205)))
}

func TestCreate_RequiresItems(t *testing.T) {
	svc := newTestService()

	input := sampleInput("user-1")
	input.Items = nil
	_, err := svc.Create(context.Background(), input)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestGetByID_Missing(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetByID(context.Background(), "nope")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestConfirm_DecidesOnce(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	order, err := svc.Create(ctx, sampleInput("user-1"))
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.DecidedAt)

	// A later refusal cannot reopen or flip the decision.
	after, err := svc.Refuse(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, after.Status)

	// Re-confirming is a harmless no-op.
	again, err := svc.Confirm(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, again.Status)
}

func TestRefuse(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	order, err := svc.Create(ctx, sampleInput("user-1"))
	require.NoError(t, err)

	refused, err := svc.Refuse(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusRefused, refused.Status)
}

func TestDecide_MissingOrderIsNoOp(t *testing.T) {
	svc := newTestService()

	order, err := svc.Confirm(context.Background(), "ghost-order")
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestListings(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, sampleInput("user-1"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, sampleInput("user-2"))
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, first.ID)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "user-2", pending[0].UserID)

	mine, err := svc.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)
}
