package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "apex_store"

// Metrics groups the collectors exported by the API.
type Metrics struct {
	Requests        *prometheus.CounterVec
	LatencyMS       *prometheus.HistogramVec
	CartValidations *prometheus.CounterVec
	CartTotal       prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
// Pass a fresh prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"route"})
	validations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "validations_total",
		Help:      "Cart validations by outcome class.",
	}, []string{"outcome"})
	total := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "validated_total_amount",
		Help:      "Order totals of successfully validated carts.",
		Buckets:   prometheus.ExponentialBuckets(5, 2, 10),
	})

	reg.MustRegister(requests, latency, validations, total)
	return &Metrics{
		Requests:        requests,
		LatencyMS:       latency,
		CartValidations: validations,
		CartTotal:       total,
		gatherer:        reg,
	}
}

// ObserveValidation records the outcome of one cart validation.
func (m *Metrics) ObserveValidation(outcome string) {
	m.CartValidations.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
