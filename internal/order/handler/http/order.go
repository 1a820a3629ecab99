package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"
	"github.com/zahrahiu/bloomcart/pkg/httputil"
	"github.com/zahrahiu/bloomcart/pkg/pagination"

	"github.com/zahrahiu/bloomcart/internal/order/domain"
	"github.com/zahrahiu/bloomcart/internal/order/service"
)

// OrderHandler handles HTTP requests for order endpoints: the buyer-facing
// order history and the admin decision endpoints.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		logger:  logger,
	}
}

// Routes registers the buyer order endpoints on the given router.
func (h *OrderHandler) Routes(r chi.Router) {
	r.Get("/", h.ListMine)
	r.Get("/{orderId}", h.GetOrder)
}

// AdminRoutes registers the admin ledger endpoints on the given router.
func (h *OrderHandler) AdminRoutes(r chi.Router) {
	r.Get("/", h.ListAll)
	r.Get("/pending", h.ListPending)
	r.Post("/{orderId}/confirm", h.Confirm)
	r.Post("/{orderId}/refuse", h.Refuse)
}

// ListMine handles GET /api/v1/orders
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("X-User-ID header is required"), h.logger)
		return
	}

	orders, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	params := pagination.FromRequest(r)
	page := pagination.Slice(orders, params)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagination.NewResult(page, len(orders), params)})
}

// GetOrder handles GET /api/v1/orders/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetByID(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// ListAll handles GET /api/v1/admin/orders
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	params := pagination.FromRequest(r)
	page := pagination.Slice(orders, params)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagination.NewResult(page, len(orders), params)})
}

// ListPending handles GET /api/v1/admin/orders/pending
func (h *OrderHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListPending(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	params := pagination.FromRequest(r)
	page := pagination.Slice(orders, params)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagination.NewResult(page, len(orders), params)})
}

// Confirm handles POST /api/v1/admin/orders/{orderId}/confirm
func (h *OrderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Confirm)
}

// Refuse handles POST /api/v1/admin/orders/{orderId}/refuse
func (h *OrderHandler) Refuse(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Refuse)
}

func (h *OrderHandler) decide(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) (*domain.Order, error)) {
	order, err := fn(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// Absent ids are a no-op, reported as such rather than an error.
	if order == nil {
		httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "unknown order"}})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}
