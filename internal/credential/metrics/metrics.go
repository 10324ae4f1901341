package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels besides the domain error codes.
const (
	OutcomeIssued     = "issued"
	OutcomeOverridden = "overridden"
)

// Metrics holds Prometheus collectors for the issuance pipeline.
type Metrics struct {
	IssuanceOutcomes  *prometheus.CounterVec
	AssetDegradations *prometheus.CounterVec
	Lookups           *prometheus.CounterVec
	RenderLatency     prometheus.Histogram
	DocumentBytes     prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		IssuanceOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "carteira_credential_issuance_total",
			Help: "Issuance requests by outcome",
		}, []string{"outcome"}),
		AssetDegradations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "carteira_credential_asset_degradations_total",
			Help: "Cards rendered with a placeholder, labeled by asset",
		}, []string{"asset"}),
		Lookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "carteira_credential_lookups_total",
			Help: "Registration lookups by result",
		}, []string{"result"}),
		RenderLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "carteira_credential_render_latency_seconds",
			Help:    "Time spent composing and serializing a card",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		DocumentBytes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "carteira_credential_document_bytes",
			Help:    "Size of emitted PDF documents",
			Buckets: prometheus.ExponentialBuckets(4096, 2, 10),
		}),
	}
}

func (m *Metrics) IncOutcome(outcome string) {
	m.IssuanceOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncDegradation(asset string) {
	m.AssetDegradations.WithLabelValues(asset).Inc()
}

func (m *Metrics) IncLookup(result string) {
	m.Lookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRender(seconds float64, size int) {
	m.RenderLatency.Observe(seconds)
	m.DocumentBytes.Observe(float64(size))
}
