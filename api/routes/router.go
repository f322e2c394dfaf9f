package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/keepers-bakery/api/controllers"
	ordercontrollers "github.com/angelmondragon/keepers-bakery/api/controllers/orders"
	"github.com/angelmondragon/keepers-bakery/api/middleware"
	"github.com/angelmondragon/keepers-bakery/internal/orders"
	product "github.com/angelmondragon/keepers-bakery/internal/products"
	"github.com/angelmondragon/keepers-bakery/pkg/config"
	"github.com/angelmondragon/keepers-bakery/pkg/db"
	"github.com/angelmondragon/keepers-bakery/pkg/logger"
	"github.com/angelmondragon/keepers-bakery/pkg/redis"
)

// NewRouter builds the order backend's HTTP surface. metricsHandler may be nil.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	productService product.Service,
	ordersSvc orders.Service,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	readiness := map[string]controllers.Pinger{"db": dbP}
	if redisClient != nil {
		readiness["redis"] = redisClient
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	orderPolicy := middleware.NewRateLimitPolicy(
		"orders",
		cfg.OrderRateLimit.Window,
		cfg.OrderRateLimit.IPLimit,
		cfg.OrderRateLimit.EmailLimit,
	)
	createOrder := chi.Chain()
	if redisClient != nil {
		createOrder = chi.Chain(
			middleware.Idempotency(redisClient, logg),
			middleware.RateLimit(orderPolicy, redisClient, logg),
		)
	}

	r.Get("/api/products", controllers.ProductList(productService, logg))
	r.Get("/api/products/{productId}", controllers.ProductDetail(productService, logg))

	r.With(createOrder...).Post("/api/orders", ordercontrollers.Create(ordersSvc, logg))
	r.Get("/api/orders", ordercontrollers.List(ordersSvc, logg))
	r.Get("/api/orders/{orderId}", ordercontrollers.Detail(ordersSvc, logg))

	r.Get("/api/admin/navigation", controllers.AdminNavigation())

	return r
}
