package metrics

import "github.com/prometheus/client_golang/prometheus"

// CacheMetrics holds Prometheus metrics for the ZIP lookup cache.
type CacheMetrics struct {
	Hits     *prometheus.CounterVec
	Misses   *prometheus.CounterVec
	Negative prometheus.Counter
	Evicted  prometheus.Counter
}

// NewCacheMetrics creates and registers cache metrics on the given registry.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "zip_cache",
			Name:      "hits_total",
			Help:      "Total number of ZIP cache hits, by layer.",
		}, []string{"layer"}),
		Misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "zip_cache",
			Name:      "misses_total",
			Help:      "Total number of ZIP cache misses, by layer.",
		}, []string{"layer"}),
		Negative: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "zip_cache",
			Name:      "negative_hits_total",
			Help:      "Total number of lookups answered by a cached unknown ZIP.",
		}),
		Evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "zip_cache",
			Name:      "evictions_total",
			Help:      "Total number of expired in-memory entries evicted.",
		}),
	}

	reg.MustRegister(m.Hits, m.Misses, m.Negative, m.Evicted)
	return m
}
