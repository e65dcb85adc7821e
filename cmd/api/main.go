package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Iphycodes/odg/api/routes"
	"github.com/Iphycodes/odg/internal/buynow"
	"github.com/Iphycodes/odg/internal/cart"
	"github.com/Iphycodes/odg/internal/catalog"
	checkoutsvc "github.com/Iphycodes/odg/internal/checkout"
	"github.com/Iphycodes/odg/internal/saved"
	"github.com/Iphycodes/odg/pkg/config"
	"github.com/Iphycodes/odg/pkg/events"
	"github.com/Iphycodes/odg/pkg/logger"
	"github.com/Iphycodes/odg/pkg/metrics"
	"github.com/Iphycodes/odg/pkg/paystack"
	"github.com/Iphycodes/odg/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	paystackClient, err := paystack.NewClient(context.Background(), cfg.Paystack, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create paystack client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	storeMetrics := metrics.NewStorefrontMetrics(registry)
	bus := events.NewBus()
	catalogStore := catalog.NewStore(catalog.Seed())

	cartService, err := cart.NewService(cart.ServiceParams{
		Logger:  logg,
		Store:   redisClient,
		Catalog: catalogStore,
		Events:  bus,
		Metrics: storeMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	buyNowService, err := buynow.NewService(buynow.ServiceParams{
		Logger:  logg,
		Store:   redisClient,
		Catalog: catalogStore,
		TTL:     cfg.Checkout.BuyNowTTL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create buy-now service", err)
		os.Exit(1)
	}

	savedService, err := saved.NewService(saved.ServiceParams{
		Logger: logg,
		Store:  redisClient,
		Events: bus,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create saved-items service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Logger:  logg,
		Cart:    cartService,
		BuyNow:  buyNowService,
		Gateway: paystackClient,
		Metrics: storeMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:          cfg,
			Logger:          logg,
			Redis:           redisClient,
			Catalog:         catalogStore,
			CartService:     cartService,
			BuyNowService:   buyNowService,
			SavedService:    savedService,
			CheckoutService: checkoutService,
			Metrics:         storeMetrics,
			MetricsRegistry: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
