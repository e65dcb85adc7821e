package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Iphycodes/odg/api/controllers"
	"github.com/Iphycodes/odg/api/middleware"
	"github.com/Iphycodes/odg/internal/buynow"
	"github.com/Iphycodes/odg/internal/cart"
	"github.com/Iphycodes/odg/internal/catalog"
	checkoutsvc "github.com/Iphycodes/odg/internal/checkout"
	"github.com/Iphycodes/odg/internal/saved"
	"github.com/Iphycodes/odg/pkg/config"
	"github.com/Iphycodes/odg/pkg/logger"
	"github.com/Iphycodes/odg/pkg/metrics"
	"github.com/Iphycodes/odg/pkg/redis"
)

// RouterParams groups everything the HTTP surface needs.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	Redis           redis.Pinger
	Catalog         *catalog.Store
	CartService     cart.Service
	BuyNowService   buynow.Service
	SavedService    saved.Service
	CheckoutService checkoutsvc.Service
	Metrics         *metrics.StorefrontMetrics
	MetricsRegistry prometheus.Gatherer
}

func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(p.Config.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.Redis))
	})

	if p.MetricsRegistry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(p.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(p.Logger))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/items", controllers.CatalogList(p.Catalog, p.Logger))
			r.Get("/items/{id}", controllers.CatalogGet(p.Catalog, p.Logger))
		})

		r.Get("/delivery/quote", controllers.DeliveryQuote(p.Logger, p.Metrics))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(p.CartService, p.Logger))
			r.Delete("/", controllers.CartClear(p.CartService, p.Logger))
			r.Post("/items", controllers.CartAddItem(p.CartService, p.Logger))
			r.Put("/items/{id}", controllers.CartSetQuantity(p.CartService, p.Logger))
			r.Delete("/items/{id}", controllers.CartRemoveItem(p.CartService, p.Logger))
		})

		r.Route("/buynow", func(r chi.Router) {
			r.Get("/", controllers.BuyNowGet(p.BuyNowService, p.Logger))
			r.Post("/", controllers.BuyNowStage(p.BuyNowService, p.Logger))
			r.Delete("/", controllers.BuyNowClear(p.BuyNowService, p.Logger))
		})

		r.Route("/saved", func(r chi.Router) {
			r.Get("/", controllers.SavedList(p.SavedService, p.Catalog, p.Logger))
			r.Post("/toggle", controllers.SavedToggle(p.SavedService, p.Logger))
			r.Delete("/{id}", controllers.SavedRemove(p.SavedService, p.Logger))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", controllers.CheckoutState(p.CheckoutService, p.Logger))
			r.Post("/", controllers.CheckoutBegin(p.CheckoutService, p.Logger))
			r.Post("/info", controllers.CheckoutSubmitInfo(p.CheckoutService, p.Logger))
			r.Post("/back", controllers.CheckoutBack(p.CheckoutService, p.Logger))
			r.Post("/pay", controllers.CheckoutPay(p.CheckoutService, p.Logger))
			r.Post("/confirm", controllers.CheckoutConfirm(p.CheckoutService, p.Logger))
			r.Post("/cancel", controllers.CheckoutCancel(p.CheckoutService, p.Logger))
		})
	})

	return r
}
