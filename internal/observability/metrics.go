package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"route", "method"},
	)

	GenerationOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_outcomes_total",
			Help: "Generation calls by task and terminal state",
		},
		[]string{"task", "state"},
	)
	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "Wall time of a generation call including retries",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
		},
		[]string{"task"},
	)
	GenerationRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_retries_total",
			Help: "Provider calls retried after a generation failure",
		},
		[]string{"task"},
	)
	ExtractionStrategyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_strategy_total",
			Help: "Successful JSON extractions by the strategy that succeeded",
		},
		[]string{"strategy"},
	)
)

// InitMetrics registers every collector with the default registry.
func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(GenerationOutcomesTotal)
	prometheus.MustRegister(GenerationDuration)
	prometheus.MustRegister(GenerationRetriesTotal)
	prometheus.MustRegister(ExtractionStrategyTotal)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = "unmatched"
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
