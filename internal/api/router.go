package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Fitment/internal/matching"
	"github.com/MikeSquared-Agency/Fitment/internal/personality"
)

func NewRouter(svc *matching.Service, catalogue *personality.Catalogue, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	match := NewMatchHandler(svc)
	styles := NewPersonalityHandler(catalogue)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AdminAuthMiddleware(adminToken))

		r.Post("/match", match.Match)
		r.Post("/match/preview", match.Preview)

		r.Get("/personality/styles", styles.List)
		r.Get("/personality/styles/{name}", styles.Resolve)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
