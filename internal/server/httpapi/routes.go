// Package httpapi serves the auth REST contract the HEVA client talks to.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heva-credit/heva/internal/logging"
	"github.com/heva-credit/heva/internal/metrics"
	"github.com/heva-credit/heva/internal/server/users"
)

// NewRouter returns the dev backend's HTTP handler. Metrics are served from
// gatherer at /metrics.
func NewRouter(log logging.Logger, us *users.Service, m *metrics.HTTP, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(log, us), log, m, gatherer)
	return r
}

// RegisterRoutes mounts the middleware stack and all endpoints on r.
func RegisterRoutes(r chi.Router, h *Handler, log logging.Logger, m *metrics.HTTP, gatherer prometheus.Gatherer) {
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		instrument(log, m),
		middleware.Recoverer,
	)

	r.Post("/api/auth/register", h.Register)
	r.Get("/api/auth/check-email", h.CheckEmail)
	r.Post("/api/auth/forgot-password", h.ForgotPassword)
	r.Get("/api/users", h.ListUsers)
	r.Get("/api/health", h.Health)

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
