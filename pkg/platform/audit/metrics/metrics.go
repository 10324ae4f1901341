package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the audit publisher.
type Metrics struct {
	QueueDepth      prometheus.Gauge
	EventsDropped   prometheus.Counter
	PersistDuration prometheus.Histogram
	PersistFailures prometheus.Counter
}

// New registers the audit publisher metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "carteira_audit_queue_depth",
			Help: "Current number of events in the audit publisher queue",
		}),
		EventsDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "carteira_audit_events_dropped_total",
			Help: "Total number of audit events dropped due to full buffer",
		}),
		PersistDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "carteira_audit_persist_duration_seconds",
			Help:    "Time taken to persist an audit event to the store",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		PersistFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "carteira_audit_persist_failures_total",
			Help: "Total number of audit event persistence failures",
		}),
	}
}
