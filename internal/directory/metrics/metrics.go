// Package metrics provides Prometheus metrics for directory lookups and the
// read-through record cache.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains directory cache metrics.
type Metrics struct {
	CacheHitsTotal             prometheus.Counter
	CacheMissesTotal           prometheus.Counter
	CacheErrorsTotal           *prometheus.CounterVec // by operation (get, set)
	CacheLookupDurationSeconds prometheus.Histogram
}

// New registers directory metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CacheHitsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "carteira_directory_cache_hits_total",
			Help: "Total number of directory cache hits",
		}),
		CacheMissesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "carteira_directory_cache_misses_total",
			Help: "Total number of directory cache misses",
		}),
		CacheErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "carteira_directory_cache_errors_total",
			Help: "Directory cache failures by operation; lookups fall through to the backing store",
		}, []string{"operation"}),
		CacheLookupDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "carteira_directory_cache_lookup_duration_seconds",
			Help:    "Duration of directory cache reads",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05},
		}),
	}
}

func (m *Metrics) RecordCacheHit(durationSeconds float64) {
	m.CacheHitsTotal.Inc()
	m.CacheLookupDurationSeconds.Observe(durationSeconds)
}

func (m *Metrics) RecordCacheMiss(durationSeconds float64) {
	m.CacheMissesTotal.Inc()
	m.CacheLookupDurationSeconds.Observe(durationSeconds)
}

func (m *Metrics) RecordCacheError(operation string) {
	m.CacheErrorsTotal.WithLabelValues(operation).Inc()
}
