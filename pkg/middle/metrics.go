package middle

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process collectors. Each instance owns its registry so
// tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	partitions prometheus.Counter
	samples    *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ddr_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ddr_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		partitions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ddr_cohort_partitions_total",
			Help: "Cohort partitions computed and saved.",
		}),
		samples: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ddr_cohort_samples",
			Help: "Samples per cohort in the current partition.",
		}, []string{"cohort"}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.partitions, m.samples,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency. Routes are labelled by
// the matched ServeMux pattern to keep cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrapResponseWriter(w)
		defer func() {
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.requests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.Status())).Inc()
			m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		}()
		next.ServeHTTP(wrapped, r)
	})
}

// ObservePartition counts a saved partition and replaces the per-cohort
// sample gauges.
func (m *Metrics) ObservePartition(sizes map[string]int) {
	m.partitions.Inc()
	m.samples.Reset()
	for name, n := range sizes {
		m.samples.WithLabelValues(name).Set(float64(n))
	}
}
