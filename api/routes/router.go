package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ohmasense/storefront-backend/api/controllers"
	webhookcontrollers "github.com/ohmasense/storefront-backend/api/controllers/webhooks"
	"github.com/ohmasense/storefront-backend/api/middleware"
	"github.com/ohmasense/storefront-backend/internal/cart"
	catalogsvc "github.com/ohmasense/storefront-backend/internal/catalog"
	checkoutsvc "github.com/ohmasense/storefront-backend/internal/checkout"
	inventorysvc "github.com/ohmasense/storefront-backend/internal/inventory"
	"github.com/ohmasense/storefront-backend/internal/orders"
	stripewebhook "github.com/ohmasense/storefront-backend/internal/webhooks/stripe"
	"github.com/ohmasense/storefront-backend/pkg/config"
	"github.com/ohmasense/storefront-backend/pkg/logger"
	"github.com/ohmasense/storefront-backend/pkg/metrics"
	"github.com/ohmasense/storefront-backend/pkg/stripe"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	catalogService catalogsvc.Service,
	cartService cart.Service,
	ordersService orders.Service,
	inventoryService inventorysvc.Service,
	checkoutService checkoutsvc.Service,
	stripeClient *stripe.Client,
	stripeWebhookService webhookcontrollers.StripeWebhookService,
	stripeWebhookGuard *stripewebhook.IdempotencyGuard,
	webhookMetrics *metrics.WebhookMetrics,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.Client.BaseURL),
	)

	// Endpoints the original storefront client was built against. Their
	// paths and body shapes stay frozen.
	r.Get("/api/health", controllers.Health())
	r.Post("/api/webhook", webhookcontrollers.StripeWebhook(stripeWebhookService, stripeClient, stripeWebhookGuard, webhookMetrics, logg))
	r.Post("/api/create-checkout-session", controllers.CheckoutSessionCreate(checkoutService, logg))

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.CatalogList(catalogService, logg))
		r.Get("/products/{productID}", controllers.CatalogGet(catalogService, logg))
		r.Get("/brands", controllers.CatalogBrands(catalogService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAdd(cartService, logg))
			r.Put("/items/{variantID}", controllers.CartSetQuantity(cartService, logg))
			r.Delete("/items/{variantID}", controllers.CartRemove(cartService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderCreate(ordersService, cartService, logg))
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Get("/{orderID}", controllers.OrderGet(ordersService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireStaff(logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminProductList(catalogService, logg))
				r.Post("/", controllers.AdminProductCreate(catalogService, logg))
				r.Patch("/{productID}", controllers.AdminProductUpdate(catalogService, logg))
				r.Delete("/{productID}", controllers.AdminProductDelete(catalogService, logg))
				r.Post("/{productID}/variants", controllers.AdminVariantCreate(catalogService, logg))
				r.Post("/{productID}/images", controllers.AdminImageAdd(catalogService, logg))
			})
			r.Patch("/variants/{variantID}", controllers.AdminVariantUpdate(catalogService, logg))
			r.Delete("/variants/{variantID}", controllers.AdminVariantDelete(catalogService, logg))
			r.Delete("/images/{imageID}", controllers.AdminImageDelete(catalogService, logg))

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/movements", controllers.AdminInventoryMovements(inventoryService, logg))
				r.Post("/{variantID}/adjust", controllers.AdminInventoryAdjust(inventoryService, logg))
				r.Get("/{variantID}/movements", controllers.AdminInventoryVariantHistory(inventoryService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrderList(ordersService, logg))
				r.Get("/{orderID}", controllers.AdminOrderGet(ordersService, logg))
				r.Post("/{orderID}/cancel", controllers.AdminOrderCancel(ordersService, logg))
			})
		})
	})

	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Handle("/metrics", metricsHandler)

	return r
}
