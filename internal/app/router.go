package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zahrahiu/bloomcart/pkg/health"
	"github.com/zahrahiu/bloomcart/pkg/middleware"

	carthandler "github.com/zahrahiu/bloomcart/internal/cart/handler/http"
	cataloghandler "github.com/zahrahiu/bloomcart/internal/catalog/handler/http"
	checkouthandler "github.com/zahrahiu/bloomcart/internal/checkout/handler/http"
	favoriteshandler "github.com/zahrahiu/bloomcart/internal/favorites/handler/http"
	orderhandler "github.com/zahrahiu/bloomcart/internal/order/handler/http"
)

// handlers groups the HTTP handlers for router assembly.
type handlers struct {
	catalog   *cataloghandler.CatalogHandler
	cart      *carthandler.CartHandler
	checkout  *checkouthandler.CheckoutHandler
	orders    *orderhandler.OrderHandler
	favorites *favoriteshandler.FavoritesHandler
}

// newRouter creates a chi router with all storefront routes registered.
func newRouter(h handlers, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("bloomcart"))
	r.Use(middleware.Tracing("bloomcart"))
	r.Use(middleware.CORS)

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Storefront API
	r.Route("/api/v1", func(r chi.Router) {
		h.catalog.Routes(r)
		r.Route("/cart", h.cart.Routes)
		r.Route("/checkout", h.checkout.Routes)
		r.Route("/orders", h.orders.Routes)
		r.Route("/favorites", h.favorites.Routes)

		r.Route("/admin", func(r chi.Router) {
			r.Route("/orders", h.orders.AdminRoutes)
			r.Route("/catalog", h.catalog.AdminRoutes)
		})
	})

	return r
}
