package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeu5/bankers-rl/core"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveEpisode(true, 3)
		m.ObserveTraining(10, true, time.Second)
		m.ObserveEvaluation("online", core.StatusSuccess)
		m.ObservePolicySource("store")
		m.ObserveComparison("online", time.Second)
	})
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveEpisode(true, 5)
	m.ObserveEpisode(false, 10)
	m.ObserveEpisode(true, 6)
	m.ObserveEvaluation("", core.StatusTimeout)
	m.ObservePolicySource("trained")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.episodes.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.episodes.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluations.WithLabelValues("unnamed", "Timeout")))

	expected := `
# HELP bankers_offline_policy_source_total How the offline policy was obtained.
# TYPE bankers_offline_policy_source_total counter
bankers_offline_policy_source_total{source="trained"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "bankers_offline_policy_source_total"))
}

func TestMetrics_Histograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveTraining(40, false, 20*time.Millisecond)
	m.ObserveComparison("offline", time.Millisecond)
	m.ObserveComparison("online", time.Second)

	n, err := testutil.GatherAndCount(reg, "bankers_comparison_elapsed_seconds", "bankers_trainings_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.trainings.WithLabelValues("false")))
}

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
