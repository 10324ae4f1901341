package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Decision labels.
const (
	DecisionAllowed         = "allowed"
	DecisionAlreadyIssued   = "already_issued"
	DecisionInFlight        = "in_flight"
	DecisionOverrideGranted = "override_granted"
	DecisionOverrideDenied  = "override_denied"
)

// Metrics holds Prometheus collectors for the issuance guard.
type Metrics struct {
	GuardDecisions  *prometheus.CounterVec
	Confirmations   prometheus.Counter
	Releases        prometheus.Counter
	LedgerErrors    *prometheus.CounterVec
	LedgerOpLatency *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GuardDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "carteira_issuance_guard_decisions_total",
			Help: "Issuance guard decisions, labeled by decision",
		}, []string{"decision"}),
		Confirmations: f.NewCounter(prometheus.CounterOpts{
			Name: "carteira_issuance_confirmed_total",
			Help: "Registrations recorded as issued",
		}),
		Releases: f.NewCounter(prometheus.CounterOpts{
			Name: "carteira_issuance_released_total",
			Help: "Reservations released after a failed issuance",
		}),
		LedgerErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "carteira_issuance_ledger_errors_total",
			Help: "Ledger backend failures by operation",
		}, []string{"operation"}),
		LedgerOpLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "carteira_issuance_ledger_operation_latency_seconds",
			Help:    "Latency of ledger operations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncDecision(decision string) {
	m.GuardDecisions.WithLabelValues(decision).Inc()
}

func (m *Metrics) IncLedgerError(operation string) {
	m.LedgerErrors.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveLedgerOp(operation string, seconds float64) {
	m.LedgerOpLatency.WithLabelValues(operation).Observe(seconds)
}
