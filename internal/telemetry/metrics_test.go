package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Observe(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.ObserveTimeline(12)
	m.ObserveTimeline(3)
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterPhotoURLCache.WithLabelValues("hit")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterPhotoURLCache.WithLabelValues("miss")))

	n, err := testutil.GatherAndCount(reg, "logyourbody_test_server_timeline_entries")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewManager_SeparateRegistries(t *testing.T) {
	// Two managers on fresh registries must not collide.
	assert.NotPanics(t, func() {
		NewTestManager()
		NewTestManager()
	})
}
