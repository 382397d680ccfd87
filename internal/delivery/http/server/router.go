package server

import (
	"net/http"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/delivery/http/handlers"
	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires HTTP routes and middleware. gatherer backs /metrics.
func NewRouter(log *zap.Logger,
	gatherer prometheus.Gatherer,
	health handlers.HealthHandler,
	catalog handlers.CatalogHandler,
	orders handlers.OrderHandler,
	points handlers.PointsHandler,
	admin handlers.AdminHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", HeaderActorID, HeaderActorRole},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(pr chi.Router) {
		pr.Use(IdentityMiddleware())
		catalog.RegisterRoutes(pr)
		orders.RegisterRoutes(pr)
		points.RegisterRoutes(pr)

		pr.Group(func(ar chi.Router) {
			ar.Use(RequireRole(domain.RoleAdmin))
			admin.RegisterRoutes(ar)
		})
	})

	return r
}
