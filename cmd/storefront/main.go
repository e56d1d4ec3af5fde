package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	"github.com/aaravmahajanofficial/storefront/internal/checkout"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/notify"
	"github.com/aaravmahajanofficial/storefront/internal/orders"
	"github.com/aaravmahajanofficial/storefront/internal/ratelimit"
	"github.com/aaravmahajanofficial/storefront/internal/store"
	"github.com/aaravmahajanofficial/storefront/internal/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, &cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Storage setup
	kv, redisClient, err := store.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the storage backend", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := kv.Close(); err != nil {
			slog.Error("⚠️ Error closing storage", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Storage closed")
		}
	}()

	// The storefront still serves the cart and orders without a catalog;
	// the landing list stays empty until a restart.
	catalogService := catalog.NewCatalogService(catalog.NewClient(&cfg.Catalog))
	if err := catalogService.Load(ctx); err != nil {
		slog.Error("⚠️ Catalog unavailable, starting with an empty product list", slog.String("error", err.Error()))
	}

	ledger := orders.NewLedger(kv)
	notifier := notify.New(&cfg.SendGrid)

	pipeline := checkout.NewPipeline(kv, ledger, notifier, &cfg.Checkout)
	checkoutService := checkout.NewCheckoutService(pipeline, checkout.NewRegistry(cfg.Checkout.SessionTTL))
	cartService := cart.NewCartService(kv, catalogService)
	orderService := orders.NewOrderService(ledger)

	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(ratelimit.New(redisClient, &cfg.RateConfig))

	healthHandler, err := health.NewHealthHandler(cfg, catalogService)
	if err != nil {
		slog.Error("❌ Error setting up health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storefront initialized", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage.Driver))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/facets", productHandler.GetFacets())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("PUT /api/v1/buy-now", cartHandler.SetBuyNow())
	routerMux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Begin())
	routerMux.HandleFunc("GET /api/v1/checkout/{session}", checkoutHandler.GetSession())
	routerMux.HandleFunc("PUT /api/v1/checkout/{session}/candidate", checkoutHandler.SaveCandidate())
	routerMux.HandleFunc("POST /api/v1/checkout/{session}/candidate/edit", checkoutHandler.EditCandidate())
	routerMux.HandleFunc("PUT /api/v1/checkout/{session}/payment", checkoutHandler.SelectPayment())
	routerMux.HandleFunc("POST /api/v1/checkout/{session}/orders", rateLimitMiddleware.Limit(checkoutHandler.PlaceOrder()))
	routerMux.HandleFunc("DELETE /api/v1/checkout/{session}", checkoutHandler.Abort())
	routerMux.HandleFunc("GET /api/v1/orders", orderHandler.ListOrders())
	routerMux.HandleFunc("DELETE /api/v1/orders/{index}", orderHandler.CancelOrder())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining. metrics sits directly on the mux so it can read
	// the matched pattern.
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Failed to flush traces", slog.String("error", err.Error()))
	}

}
