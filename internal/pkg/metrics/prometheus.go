package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pagecraft",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pagecraft",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pagecraft",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// AI generation metrics
	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pagecraft",
			Subsystem: "ai",
			Name:      "generations_total",
			Help:      "Total number of AI generation attempts",
		},
		[]string{"kind", "outcome"},
	)

	generationTokens = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pagecraft",
			Subsystem: "ai",
			Name:      "generation_tokens_total",
			Help:      "Estimated tokens consumed by AI generations",
		},
	)

	// Worker-maintained account gauges
	usersByPlan = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "pagecraft",
			Subsystem: "accounts",
			Name:      "users_by_plan",
			Help:      "Number of registered users per plan",
		},
		[]string{"plan"},
	)

	generationsRecorded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pagecraft",
			Subsystem: "ai",
			Name:      "generations_recorded",
			Help:      "Total generation records in the store",
		},
	)
)

// ObserveGeneration records one generation attempt outcome.
// kind is "create" or "section", outcome is "success", "blocked",
// "quota", "provider_error" or "parse_error".
func ObserveGeneration(kind, outcome string) {
	generationsTotal.WithLabelValues(kind, outcome).Inc()
}

// AddGenerationTokens adds to the estimated token counter
func AddGenerationTokens(n int) {
	generationTokens.Add(float64(n))
}

// SetUsersByPlan sets the per-plan user gauge
func SetUsersByPlan(plan string, n int64) {
	usersByPlan.WithLabelValues(plan).Set(float64(n))
}

// SetGenerationsRecorded sets the generation record gauge
func SetGenerationsRecorded(n int64) {
	generationsRecorded.Set(float64(n))
}

// Middleware instruments HTTP requests with prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		// Use the chi route pattern to keep label cardinality bounded
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		status := strconv.Itoa(ww.status)
		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path, status).
			Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Handler returns the prometheus scrape endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
