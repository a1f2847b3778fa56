package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for the page server.
type Metrics struct {
	requestCount  *prometheus.CounterVec
	buildCount    *prometheus.CounterVec
	buildDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		buildCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "page_builds_total",
				Help: "Page render passes by result.",
			},
			[]string{"result"},
		),
		buildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "page_build_duration_seconds",
				Help:    "Duration of a full page render pass.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
		),
	}

	for _, c := range []prometheus.Collector{m.requestCount, m.buildCount, m.buildDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveBuild records the outcome of one render pass. Safe on a nil receiver.
func (m *Metrics) ObserveBuild(d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.buildCount.WithLabelValues(result).Inc()
	m.buildDuration.Observe(d.Seconds())
}

// Middleware counts requests by chi route pattern. /metrics is excluded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		// Route pattern (e.g. /logo) keeps label cardinality bounded.
		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				path = p
			}
		}

		m.requestCount.WithLabelValues(r.Method, path, strconv.Itoa(sw.status)).Inc()
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
