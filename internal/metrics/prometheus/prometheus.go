// Package prometheus implements the metrics interfaces with Prometheus
// collectors.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"browserstore/internal/metrics"
)

const (
	resultHit       = "hit"
	resultMiss      = "miss"
	resultExpired   = "expired"
	resultReadError = "read_error"
)

type cacheMetrics struct {
	lookups     *prometheus.CounterVec
	writeErrors prometheus.Counter
}

// NewCacheMetrics registers the cache collectors with reg.
func NewCacheMetrics(reg prometheus.Registerer) metrics.Cache {
	m := &cacheMetrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "browserstore_cache_lookups_total",
			Help: "Total number of cache lookups by result",
		}, []string{"result"}),
		writeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "browserstore_cache_write_errors_total",
			Help: "Total number of cache entries that could not be stored",
		}),
	}
	reg.MustRegister(m.lookups, m.writeErrors)

	// Expose every result label from the start.
	for _, r := range []string{resultHit, resultMiss, resultExpired, resultReadError} {
		m.lookups.WithLabelValues(r)
	}
	return m
}

func (m *cacheMetrics) Hit()        { m.lookups.WithLabelValues(resultHit).Inc() }
func (m *cacheMetrics) Miss()       { m.lookups.WithLabelValues(resultMiss).Inc() }
func (m *cacheMetrics) Expired()    { m.lookups.WithLabelValues(resultExpired).Inc() }
func (m *cacheMetrics) ReadError()  { m.lookups.WithLabelValues(resultReadError).Inc() }
func (m *cacheMetrics) WriteError() { m.writeErrors.Inc() }

var _ metrics.Cache = (*cacheMetrics)(nil)
