package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"
	"github.com/zahrahiu/bloomcart/pkg/httputil"
	pkgvalidator "github.com/zahrahiu/bloomcart/pkg/validator"

	"github.com/zahrahiu/bloomcart/internal/checkout/service"
)

// CheckoutHandler handles HTTP requests for checkout submission.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// Routes registers the checkout endpoint on the given router.
func (h *CheckoutHandler) Routes(r chi.Router) {
	r.Post("/", h.Submit)
}

// Submit handles POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("X-User-ID header is required"), h.logger)
		return
	}

	var input service.SubmitInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	order, err := h.service.Submit(r.Context(), userID, input)
	if err != nil {
		var valErr *pkgvalidator.ValidationError
		if errors.As(err, &valErr) {
			httputil.WriteValidationError(w, err)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}
