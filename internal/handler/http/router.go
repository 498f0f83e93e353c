package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AmeyKuradeAK/nuventa/internal/auth"
	"github.com/AmeyKuradeAK/nuventa/internal/service"
	"github.com/AmeyKuradeAK/nuventa/pkg/health"
	"github.com/AmeyKuradeAK/nuventa/pkg/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Memberships   *service.MembershipService
	Catalog       *service.CatalogService
	Profiles      *service.ProfileService
	JWTManager    *auth.JWTManager
	HealthHandler *health.Handler
	Logger        *slog.Logger
	CORS          middleware.CORSConfig
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware. RequestLogger goes last so the request-scoped
	// logger picks up the correlation id and trace context.
	r.Use(middleware.CORS(deps.CORS))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(deps.Logger))

	// Health check endpoints
	r.Get("/health/live", deps.HealthHandler.LivenessHandler())
	r.Get("/health/ready", deps.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	productHandler := NewProductHandler(deps.Catalog, deps.Logger)

	// Catalog endpoints (public)
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Get("/{id}", productHandler.Get)
	})

	membershipHandler := NewMembershipHandler(deps.Memberships, deps.Logger)
	profileHandler := NewProfileHandler(deps.Profiles, deps.Logger)

	// Shopper endpoints (auth required)
	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(deps.JWTManager.Validator()))
		// Rebuild the request logger now that Auth has established the
		// caller identity.
		r.Use(middleware.RequestLogger(deps.Logger))

		r.Route("/api/v1/memberships/{set}", func(r chi.Router) {
			r.Get("/", membershipHandler.GetJoined)
			r.Get("/ids", membershipHandler.GetIDs)
			r.Post("/toggle", membershipHandler.Toggle)
		})

		r.Route("/api/v1/profile", func(r chi.Router) {
			r.Get("/", profileHandler.Get)
			r.Put("/", profileHandler.Update)
		})
	})

	return r
}
