package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgkafka "github.com/zahrahiu/bloomcart/pkg/kafka"

	"github.com/zahrahiu/bloomcart/internal/order/domain"
	"github.com/zahrahiu/bloomcart/internal/order/event"
	"github.com/zahrahiu/bloomcart/internal/order/repository/memory"
	"github.com/zahrahiu/bloomcart/internal/order/service"
)

func setup(t *testing.T) (*chi.Mux, *service.OrderService) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig([]string{"localhost:19092"}), logger)
	producer := event.NewProducer(kafkaProducer, logger)
	svc := service.NewOrderService(memory.NewOrderRepository(), producer, logger)

	handler := NewOrderHandler(svc, logger)
	r := chi.NewRouter()
	r.Route("/api/v1/orders", handler.Routes)
	r.Route("/api/v1/admin/orders", handler.AdminRoutes)
	return r, svc
}

func createOrder(t *testing.T, svc *service.OrderService, userID string) *domain.Order {
	t.Helper()

	order, err := svc.Create(context.Background(), service.CreateOrderInput{
		UserID: userID,
		Items: []domain.Item{{
			ProductID: "rose-bouquet",
			Name:      "Red Rose Bouquet",
			UnitPrice: decimal.NewFromInt(80),
			Quantity:  1,
		}},
		Subtotal:       decimal.NewFromInt(80),
		DeliveryFee:    decimal.NewFromInt(20),
		Total:          decimal.NewFromInt(100),
		Currency:       "MAD",
		DeliveryMethod: domain.DeliveryMethodPickup,
		PaymentMethod:  domain.PaymentMethodCash,
		BuyerName:      "Amina",
		BuyerPhone:     "+212600000000",
	})
	require.NoError(t, err)
	return order
}

func TestGetOrder(t *testing.T) {
	router, svc := setup(t)
	order := createOrder(t, svc, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+order.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, order.ID, resp.Data.ID)
	assert.Equal(t, domain.OrderStatusPending, resp.Data.Status)
}

func TestGetOrder_NotFound(t *testing.T) {
	router, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMine_RequiresUserHeader(t *testing.T) {
	router, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMine(t *testing.T) {
	router, svc := setup(t)
	createOrder(t, svc, "user-1")
	createOrder(t, svc, "user-2")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Data       []json.RawMessage `json:"data"`
			TotalCount int               `json:"total_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.TotalCount)
	assert.Len(t, resp.Data.Data, 1)
}

func TestAdminConfirmFlow(t *testing.T) {
	router, svc := setup(t)
	order := createOrder(t, svc, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/orders/"+order.ID+"/confirm", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.OrderStatusConfirmed, resp.Data.Status)

	// Refusing after confirmation leaves the decision in place.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/orders/"+order.ID+"/refuse", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.OrderStatusConfirmed, resp.Data.Status)
}

func TestAdminDecide_UnknownOrderIsNoOp(t *testing.T) {
	router, _ := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/orders/ghost/confirm", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminListPending(t *testing.T) {
	router, svc := setup(t)
	first := createOrder(t, svc, "user-1")
	createOrder(t, svc, "user-2")

	_, err := svc.Confirm(context.Background(), first.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders/pending", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			TotalCount int `json:"total_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.TotalCount)
}
