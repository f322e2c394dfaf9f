package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/keepers-bakery/api/controllers"
	cartcontrollers "github.com/angelmondragon/keepers-bakery/api/controllers/cart"
	checkoutcontrollers "github.com/angelmondragon/keepers-bakery/api/controllers/checkout"
	"github.com/angelmondragon/keepers-bakery/api/middleware"
	"github.com/angelmondragon/keepers-bakery/internal/cart"
	checkoutsvc "github.com/angelmondragon/keepers-bakery/internal/checkout"
	"github.com/angelmondragon/keepers-bakery/pkg/config"
	"github.com/angelmondragon/keepers-bakery/pkg/logger"
)

// StorefrontDeps are the collaborators the storefront routes need.
type StorefrontDeps struct {
	Sessions *cart.Sessions
	Catalog  cartcontrollers.Catalog
	Flow     *checkoutsvc.Flow
	Orders   checkoutcontrollers.OrderFetcher
	// Readiness maps dependency names to pingers; nil entries are skipped.
	Readiness map[string]controllers.Pinger
	Metrics   http.Handler
}

// NewStorefrontRouter builds the shopper-facing HTTP surface. Every /api route
// runs inside a cookie session.
func NewStorefrontRouter(cfg *config.Config, logg *logger.Logger, deps StorefrontDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Readiness))
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Session(middleware.SessionOptions{
			CookieName: cfg.Storefront.SessionCookie,
			Secure:     cfg.Storefront.SecureCookie,
		}, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(deps.Sessions, logg))
			r.Delete("/", cartcontrollers.CartClear(deps.Sessions, logg))
			r.Post("/items", cartcontrollers.CartAddItem(deps.Sessions, deps.Catalog, logg))
			r.Patch("/items/{productId}", cartcontrollers.CartUpdateQuantity(deps.Sessions, logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(deps.Sessions, logg))
			r.Put("/drawer", cartcontrollers.CartDrawer(deps.Sessions, logg))
		})

		r.Post("/checkout", checkoutcontrollers.Checkout(deps.Sessions, deps.Flow, logg))
		r.Get("/checkout/orders/{orderId}", checkoutcontrollers.Confirmation(deps.Orders, logg))
	})

	return r
}
