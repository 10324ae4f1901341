package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncOutcome(OutcomeIssued)
	m.IncOutcome(OutcomeIssued)
	m.IncOutcome("already_issued")
	m.IncDegradation("photo")
	m.IncLookup("found")
	m.ObserveRender(0.02, 30000)

	assert.InDelta(t, 2, testutil.ToFloat64(m.IssuanceOutcomes.WithLabelValues(OutcomeIssued)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.IssuanceOutcomes.WithLabelValues("already_issued")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.AssetDegradations.WithLabelValues("photo")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Lookups.WithLabelValues("found")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.RenderLatency))
}
