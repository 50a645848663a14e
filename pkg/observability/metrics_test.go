package observability_test

import (
	"testing"

	"github.com/aretw0/statesync/pkg/domain"
	"github.com/aretw0/statesync/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	hooks := m.Hooks()

	hooks.Fire(&domain.StateEvent{Type: domain.EventStateEnter, Layer: 0, Kind: "Run"})
	for i := 0; i < 5; i++ {
		hooks.Fire(&domain.StateEvent{Type: domain.EventStateUpdate, Layer: 0, Kind: "Run", Delta: 0.016})
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Enters.WithLabelValues("0", "Run")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Frames.WithLabelValues("0", "Run")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Active.WithLabelValues("0", "Run")))

	hooks.Fire(&domain.StateEvent{Type: domain.EventStateExit, Layer: 0, Kind: "Run", Frames: 5, Seconds: 0.08})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Exits.WithLabelValues("0", "Run")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Active.WithLabelValues("0", "Run")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Activation))
}

func TestMetrics_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}
