package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/ali/pkg/domain"
)

// unknownVerbLabel replaces verbs no rule set registers, keeping label cardinality bounded.
const unknownVerbLabel = "_unknown"

// Metrics counts dispatches by verb and outcome and records their latency.
type Metrics struct {
	registry   *prometheus.Registry
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ali_dispatch_total",
				Help: "Total number of dispatched commands by verb and outcome",
			},
			[]string{"verb", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ali_dispatch_duration_seconds",
				Help:    "Duration of command resolution",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"outcome"},
		),
	}
	m.registry.MustRegister(m.dispatches, m.duration)
	return m
}

// ObserveDispatch implements ports.DispatchObserver.
func (m *Metrics) ObserveDispatch(verb, outcome string, elapsed time.Duration) {
	if verb == "" || outcome == domain.OutcomeUnknownVerb {
		verb = unknownVerbLabel
	}
	m.dispatches.WithLabelValues(verb, outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry for additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
