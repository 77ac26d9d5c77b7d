package metrics

import "github.com/prometheus/client_golang/prometheus"

// GeocoderMetrics tracks calls to the upstream ZIP provider.
type GeocoderMetrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration prometheus.Histogram
	BreakerState    prometheus.Gauge
	BreakerChanges  *prometheus.CounterVec
}

func NewGeocoderMetrics(reg prometheus.Registerer) *GeocoderMetrics {
	m := &GeocoderMetrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "geocoder",
			Name:      "requests_total",
			Help:      "Total number of upstream ZIP lookups, by outcome.",
		}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "geocoder",
			Name:      "request_duration_seconds",
			Help:      "Duration of upstream ZIP lookups in seconds, retries included.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		BreakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "geocoder",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open).",
		}),
		BreakerChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "geocoder",
			Name:      "circuit_breaker_transitions_total",
			Help:      "Total number of circuit breaker state changes, by new state.",
		}, []string{"state"}),
	}

	reg.MustRegister(m.Requests, m.RequestDuration, m.BreakerState, m.BreakerChanges)
	return m
}
