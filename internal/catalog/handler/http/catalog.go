package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"
	"github.com/zahrahiu/bloomcart/pkg/httputil"
	"github.com/zahrahiu/bloomcart/pkg/pagination"

	"github.com/zahrahiu/bloomcart/internal/catalog/service"
)

// CatalogHandler handles HTTP requests for catalog browsing and the admin
// feed refresh.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// Routes registers the catalog endpoints on the given router.
func (h *CatalogHandler) Routes(r chi.Router) {
	r.Get("/products", h.ListProducts)
	r.Get("/products/{productId}", h.GetProduct)
	r.Get("/addons", h.ListAddons)
}

// AdminRoutes registers the admin catalog endpoints on the given router.
func (h *CatalogHandler) AdminRoutes(r chi.Router) {
	r.Post("/refresh", h.Refresh)
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	params := pagination.FromRequest(r)
	page := pagination.Slice(products, params)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagination.NewResult(page, len(products), params)})
}

// GetProduct handles GET /api/v1/products/{productId}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// ListAddons handles GET /api/v1/addons
func (h *CatalogHandler) ListAddons(w http.ResponseWriter, r *http.Request) {
	addons, err := h.service.ListAddons(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addons})
}

// Refresh handles POST /api/v1/admin/catalog/refresh
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Refresh(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]int{"products": count}})
}

func filterFromQuery(r *http.Request) (service.Filter, error) {
	q := r.URL.Query()
	filter := service.Filter{
		Query:    q.Get("q"),
		Type:     q.Get("type"),
		Color:    q.Get("color"),
		Occasion: q.Get("occasion"),
	}

	if raw := q.Get("min_price"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return service.Filter{}, apperrors.InvalidInput("min_price must be a number")
		}
		filter.MinPrice = &v
	}
	if raw := q.Get("max_price"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return service.Filter{}, apperrors.InvalidInput("max_price must be a number")
		}
		filter.MaxPrice = &v
	}

	return filter, nil
}
