// Package monitoring holds the Prometheus collectors for the inference
// pipeline.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks classification outcomes and latency.
type Metrics struct {
	Classifications *prometheus.CounterVec
	Failures        *prometheus.CounterVec
	Latency         prometheus.Histogram
}

// NewMetrics creates and registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Classifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardioretina_classifications_total",
				Help: "Total number of completed classifications.",
			},
			[]string{"label"},
		),
		Failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardioretina_failures_total",
				Help: "Total number of failed classification requests.",
			},
			[]string{"kind"},
		),
		Latency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cardioretina_classification_seconds",
				Help:    "End-to-end latency of one classification.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordClassification records one completed classification.
func (m *Metrics) RecordClassification(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Classifications.WithLabelValues(label).Inc()
	m.Latency.Observe(duration.Seconds())
}

// RecordFailure records one failed request by error kind.
func (m *Metrics) RecordFailure(kind string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(kind).Inc()
}
