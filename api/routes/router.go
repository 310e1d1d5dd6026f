package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rewear-app/rewear-backend/api/controllers"
	"github.com/rewear-app/rewear-backend/api/middleware"
	"github.com/rewear-app/rewear-backend/internal/catalog"
	"github.com/rewear-app/rewear-backend/internal/identity"
	"github.com/rewear-app/rewear-backend/pkg/config"
	"github.com/rewear-app/rewear-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store *catalog.Store,
	catalogService catalog.Service,
	identityService identity.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, identityService.Ready, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.Login(identityService, logg))
		r.Post("/signup", controllers.Signup(identityService, logg))
		r.Post("/logout", controllers.Logout(identityService, logg))
		r.Get("/session", controllers.Session(identityService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/items", controllers.ListItems(store, logg))
		r.Get("/items/facets", controllers.ItemFacets(store, logg))
		r.Get("/items/{itemId}", controllers.GetItem(catalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Post("/items", controllers.CreateItem(catalogService, logg))
			r.Delete("/items/{itemId}", controllers.DeleteItem(catalogService, logg))
			r.Post("/items/{itemId}/redeem", controllers.RedeemItem(catalogService, logg))
			r.Post("/items/{itemId}/swap-requests", controllers.CreateSwapRequest(catalogService, logg))

			r.Post("/swap-requests/{requestId}/approve", controllers.ApproveSwapRequest(catalogService, logg))
			r.Post("/swap-requests/{requestId}/decline", controllers.DeclineSwapRequest(catalogService, logg))

			r.Get("/dashboard", controllers.Dashboard(store, identityService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireAdmin(logg))

			r.Get("/queue", controllers.AdminQueue(store, logg))
			r.Get("/stats", controllers.AdminStats(store, logg))
			r.Post("/items/{itemId}/approve", controllers.AdminApproveItem(catalogService, logg))
			r.Post("/items/{itemId}/reject", controllers.AdminRejectItem(catalogService, logg))
		})
	})

	return r
}
