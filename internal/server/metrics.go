package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus instruments exposed on /metrics. Each
// instance carries its own registry so repeated construction (tests,
// embedding) never trips duplicate registration.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests prometheus.Gauge
	requestsTotal  prometheus.Counter
	evaluations    *prometheus.CounterVec
	evalDuration   prometheus.Histogram
	liveWords      prometheus.GaugeFunc
}

// NewMetrics creates the metric set with Go runtime collectors attached.
func NewMetrics() *Metrics {
	return NewMetricsWithLiveWords(nil)
}

// NewMetricsWithLiveWords creates the metric set; liveWords, when non-nil,
// is sampled for the zcalc_live_words gauge (the allocator's live digit
// storage).
func NewMetricsWithLiveWords(liveWords func() float64) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "zcalc_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zcalc_requests_total",
			Help: "Total number of HTTP requests served.",
		}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zcalc_evaluations_total",
			Help: "Expression evaluations by operation and outcome.",
		}, []string{"op", "status"}),
		evalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "zcalc_evaluation_duration_seconds",
			Help:    "Wall time of a single expression evaluation.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
		}),
	}
	registry.MustRegister(m.activeRequests, m.requestsTotal, m.evaluations, m.evalDuration)

	if liveWords != nil {
		m.liveWords = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "zcalc_live_words",
			Help: "Live 64-bit words held by the digit allocator.",
		}, liveWords)
		registry.MustRegister(m.liveWords)
	}

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests bumps the in-flight request gauge.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// RecordEvaluation counts one expression evaluation and its wall time.
func (m *Metrics) RecordEvaluation(op string, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.evaluations.WithLabelValues(op, status).Inc()
	m.evalDuration.Observe(seconds)
}

// WritePrometheus serves the metrics in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
