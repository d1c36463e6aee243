/*
server.go - Router and middleware configuration

PURPOSE:
  Wires URLs to handlers. chi router with the standard stack: request ids,
  logging, panic recovery, CORS for the frontend, per-IP rate limiting,
  and prometheus request counts.

ROUTES:
  /api/health                      liveness probe
  /api/employees                   registry (list, create, detail, balance)
  /api/leave/apply                 file an application
  /api/leave/applications          filtered application list
  /api/leave/{id}/decision         approve or reject
  /api/dashboard                   query-facade summary
  /metrics                         prometheus scrape endpoint

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/server/main.go: server startup
*/
package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries the transport knobs the router needs.
type RouterConfig struct {
	AllowedOrigins []string
	RequestsPerMin int
}

// NewRouter creates the router with all routes configured.
func NewRouter(h *Handler, cfg RouterConfig) *chi.Mux {
	if cfg.RequestsPerMin <= 0 {
		cfg.RequestsPerMin = 120
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitByIP(cfg.RequestsPerMin, time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/dashboard", h.Dashboard)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/balance", h.GetBalance)
		})

		r.Route("/leave", func(r chi.Router) {
			r.Post("/apply", h.ApplyLeave)
			r.Get("/applications", h.ListApplications)
			r.Post("/{id}/decision", h.DecideLeave)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
