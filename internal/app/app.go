package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"
	"github.com/zahrahiu/bloomcart/pkg/health"
	"github.com/zahrahiu/bloomcart/pkg/httpclient"
	pkgkafka "github.com/zahrahiu/bloomcart/pkg/kafka"
	"github.com/zahrahiu/bloomcart/pkg/tracing"

	cartevent "github.com/zahrahiu/bloomcart/internal/cart/event"
	carthandler "github.com/zahrahiu/bloomcart/internal/cart/handler/http"
	cartrepo "github.com/zahrahiu/bloomcart/internal/cart/repository"
	cartmem "github.com/zahrahiu/bloomcart/internal/cart/repository/memory"
	cartredis "github.com/zahrahiu/bloomcart/internal/cart/repository/redis"
	cartsvc "github.com/zahrahiu/bloomcart/internal/cart/service"
	catalogdomain "github.com/zahrahiu/bloomcart/internal/catalog/domain"
	"github.com/zahrahiu/bloomcart/internal/catalog/feed"
	cataloghandler "github.com/zahrahiu/bloomcart/internal/catalog/handler/http"
	catalogmem "github.com/zahrahiu/bloomcart/internal/catalog/repository/memory"
	catalogsvc "github.com/zahrahiu/bloomcart/internal/catalog/service"
	checkouthandler "github.com/zahrahiu/bloomcart/internal/checkout/handler/http"
	checkoutsvc "github.com/zahrahiu/bloomcart/internal/checkout/service"
	"github.com/zahrahiu/bloomcart/internal/config"
	favoriteshandler "github.com/zahrahiu/bloomcart/internal/favorites/handler/http"
	favoritesmem "github.com/zahrahiu/bloomcart/internal/favorites/repository/memory"
	favoritessvc "github.com/zahrahiu/bloomcart/internal/favorites/service"
	orderevent "github.com/zahrahiu/bloomcart/internal/order/event"
	orderhandler "github.com/zahrahiu/bloomcart/internal/order/handler/http"
	ordermem "github.com/zahrahiu/bloomcart/internal/order/repository/memory"
	ordersvc "github.com/zahrahiu/bloomcart/internal/order/service"
)

// App wires together all dependencies and runs the storefront server.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	producer        *pkgkafka.Producer
	redisClient     *goredis.Client
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// noFeed stands in for the feed client when no feed URL is configured.
type noFeed struct{}

func (noFeed) Fetch(context.Context) ([]catalogdomain.Product, error) {
	return nil, apperrors.ServiceUnavailable("no product feed configured")
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	deliveryFee, err := cfg.ParsedDeliveryFee()
	if err != nil {
		return nil, err
	}

	// Tracing (no-op unless enabled).
	tracingShutdown, err := tracing.InitTracer(ctx, cfg.TracingConfig())
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Kafka producer for domain events.
	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Cart store: in-memory by default, Redis when configured.
	var (
		cartRepository cartrepo.CartRepository
		redisClient    *goredis.Client
	)
	switch cfg.CartStore {
	case config.CartStoreRedis:
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		cartRepository = cartredis.NewCartRepository(redisClient, cfg.CartTTLDuration())
		logger.Info("redis cart store initialized", slog.String("addr", cfg.RedisAddr))
	default:
		cartRepository = cartmem.NewCartRepository()
		logger.Info("in-memory cart store initialized")
	}

	// Catalog: in-memory stores seeded at startup, refreshed from the feed.
	productRepo := catalogmem.NewProductRepository()
	addonRepo := catalogmem.NewAddonRepository(defaultAddons())

	var feedClient catalogsvc.Feed = noFeed{}
	if cfg.FeedURL != "" {
		httpCfg := httpclient.DefaultConfig()
		httpCfg.Timeout = cfg.FeedTimeout
		breaker := httpclient.NewCircuitBreakerClient(
			httpclient.New(httpCfg),
			httpclient.DefaultCircuitBreakerConfig("product-feed"),
			logger,
		)
		feedClient = feed.NewClient(breaker, cfg.FeedURL, cfg.Currency, logger)
		logger.Info("product feed client initialized", slog.String("url", cfg.FeedURL))
	}

	catalogService := catalogsvc.NewCatalogService(productRepo, addonRepo, feedClient, logger)
	if err := catalogService.Seed(ctx, defaultProducts()); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	// Build the dependency graph.
	cartService := cartsvc.NewCartService(
		cartRepository,
		productRepo,
		addonRepo,
		cartevent.NewProducer(producer, logger),
		logger,
		cfg.Currency,
	)
	orderService := ordersvc.NewOrderService(
		ordermem.NewOrderRepository(),
		orderevent.NewProducer(producer, logger),
		logger,
	)
	checkoutService := checkoutsvc.NewCheckoutService(cartService, orderService, deliveryFee, logger)
	favoritesService := favoritessvc.NewFavoritesService(favoritesmem.NewFavoritesRepository(), productRepo, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})
	if redisClient != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	// HTTP router.
	router := newRouter(handlers{
		catalog:   cataloghandler.NewCatalogHandler(catalogService, logger),
		cart:      carthandler.NewCartHandler(cartService, deliveryFee, logger),
		checkout:  checkouthandler.NewCheckoutHandler(checkoutService, logger),
		orders:    orderhandler.NewOrderHandler(orderService, logger),
		favorites: favoriteshandler.NewFavoritesHandler(favoritesService, logger),
	}, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		producer:        producer,
		redisClient:     redisClient,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
