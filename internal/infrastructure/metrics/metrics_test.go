package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CuentaLlamadasYCommits(t *testing.T) {
	m := New()
	m.ObserveBackend("erp", "GET", 200, 10*time.Millisecond)
	m.ObserveBackend("erp", "GET", 200, 20*time.Millisecond)
	m.ObserveBackend("warehouse", "POST", 500, time.Millisecond)
	m.CommitFinished("export", "partial")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.backendRequests.WithLabelValues("erp", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.backendRequests.WithLabelValues("warehouse", "POST", "500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exportCommits.WithLabelValues("export", "partial")))

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestMetrics_NilNoHaceNada(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveBackend("erp", "GET", 0, time.Second)
		m.CommitFinished("export", "succeeded")
		m.OrderIDGenerated(3)
		m.DraftTransition("previewing")
	})
	assert.Nil(t, m.Registry())
}
