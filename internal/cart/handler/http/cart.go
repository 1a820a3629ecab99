package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"
	"github.com/zahrahiu/bloomcart/pkg/httputil"
	"github.com/zahrahiu/bloomcart/pkg/validator"

	"github.com/zahrahiu/bloomcart/internal/cart/domain"
	"github.com/zahrahiu/bloomcart/internal/cart/service"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service     *service.CartService
	deliveryFee decimal.Decimal
	logger      *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, deliveryFee decimal.Decimal, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service:     svc,
		deliveryFee: deliveryFee,
		logger:      logger,
	}
}

// AddLineRequest is the JSON request body for adding a product to the cart.
type AddLineRequest struct {
	ProductID string                 `json:"product_id" validate:"required"`
	Addons    []service.AddonRequest `json:"addons" validate:"omitempty,dive"`
}

// Routes registers the cart endpoints on the given router.
func (h *CartHandler) Routes(r chi.Router) {
	r.Get("/", h.GetCart)
	r.Delete("/", h.ClearCart)
	r.Get("/totals", h.Totals)

	r.Post("/lines", h.AddLine)
	r.Delete("/lines/{productId}", h.RemoveLine)
	r.Post("/lines/{productId}/increment", h.IncrementLine)
	r.Post("/lines/{productId}/decrement", h.DecrementLine)
	r.Post("/lines/{productId}/addons/{addonId}/increment", h.IncrementAddon)
	r.Post("/lines/{productId}/addons/{addonId}/decrement", h.DecrementAddon)
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// AddLine handles POST /api/v1/cart/lines
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.service.AddLine(r.Context(), userID, req.ProductID, req.Addons)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// IncrementLine handles POST /api/v1/cart/lines/{productId}/increment
func (h *CartHandler) IncrementLine(w http.ResponseWriter, r *http.Request) {
	h.lineAction(w, r, h.service.IncrementLine)
}

// DecrementLine handles POST /api/v1/cart/lines/{productId}/decrement
func (h *CartHandler) DecrementLine(w http.ResponseWriter, r *http.Request) {
	h.lineAction(w, r, h.service.DecrementLine)
}

// RemoveLine handles DELETE /api/v1/cart/lines/{productId}
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	h.lineAction(w, r, h.service.RemoveLine)
}

// IncrementAddon handles POST /api/v1/cart/lines/{productId}/addons/{addonId}/increment
func (h *CartHandler) IncrementAddon(w http.ResponseWriter, r *http.Request) {
	h.addonAction(w, r, h.service.IncrementAddon)
}

// DecrementAddon handles POST /api/v1/cart/lines/{productId}/addons/{addonId}/decrement
func (h *CartHandler) DecrementAddon(w http.ResponseWriter, r *http.Request) {
	h.addonAction(w, r, h.service.DecrementAddon)
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearCart(r.Context(), userID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}

// Totals handles GET /api/v1/cart/totals
func (h *CartHandler) Totals(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	totals, err := h.service.Totals(r.Context(), userID, h.deliveryFee)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: totals})
}

// --- Helpers ---

type lineFunc func(ctx context.Context, userID, productID string) (*domain.Cart, error)

func (h *CartHandler) lineAction(w http.ResponseWriter, r *http.Request, fn lineFunc) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("productId is required"), h.logger)
		return
	}

	cart, err := fn(r.Context(), userID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

type addonFunc func(ctx context.Context, userID, productID, addonID string) (*domain.Cart, error)

func (h *CartHandler) addonAction(w http.ResponseWriter, r *http.Request, fn addonFunc) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "productId")
	addonID := chi.URLParam(r, "addonId")
	if productID == "" || addonID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("productId and addonId are required"), h.logger)
		return
	}

	cart, err := fn(r.Context(), userID, productID, addonID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

func (h *CartHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("X-User-ID header is required"), h.logger)
		return "", false
	}
	return userID, true
}
