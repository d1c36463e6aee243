package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ApplicationsSubmitted counts leave applications filed through the API.
var ApplicationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "leave",
	Subsystem: "engine",
	Name:      "applications_submitted_total",
	Help:      "Total leave applications submitted.",
})

// DecisionsRecorded counts recorded decisions by outcome.
var DecisionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "leave",
	Subsystem: "engine",
	Name:      "decisions_recorded_total",
	Help:      "Total decisions recorded, by outcome.",
}, []string{"decision"})

// HTTPRequests counts requests by method, route pattern, and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "leave",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests served.",
}, []string{"method", "path", "status"})

// Metrics is chi middleware recording per-route request counts.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = r.URL.Path
		}
		HTTPRequests.WithLabelValues(r.Method, pattern, strconv.Itoa(ww.Status())).Inc()
	})
}
