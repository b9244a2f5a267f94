package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewCacheMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCacheMetrics(reg)
	require.NotNil(t, m)

	m.Hit()
	m.Hit()
	m.Miss()
	m.Expired()
	m.ReadError()
	m.WriteError()

	cm := m.(*cacheMetrics)
	require.Equal(t, 2.0, testutil.ToFloat64(cm.lookups.WithLabelValues(resultHit)))
	require.Equal(t, 1.0, testutil.ToFloat64(cm.lookups.WithLabelValues(resultMiss)))
	require.Equal(t, 1.0, testutil.ToFloat64(cm.lookups.WithLabelValues(resultExpired)))
	require.Equal(t, 1.0, testutil.ToFloat64(cm.lookups.WithLabelValues(resultReadError)))
	require.Equal(t, 1.0, testutil.ToFloat64(cm.writeErrors))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 2)
}

func TestNewCacheMetrics_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCacheMetrics(reg)
	require.Panics(t, func() { NewCacheMetrics(reg) })
}
