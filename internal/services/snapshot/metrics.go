package snapshot

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records snapshot compute timings and degraded sections.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	duration    prometheus.Histogram
	unavailable *prometheus.CounterVec
	failures    prometheus.Counter
}

// NewMetrics creates a recorder backed by its own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "folio",
			Subsystem: "snapshot",
			Name:      "compute_seconds",
			Help:      "Time taken to compute a portfolio snapshot",
			Buckets:   prometheus.DefBuckets,
		}),
		unavailable: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "folio",
			Subsystem: "snapshot",
			Name:      "unavailable_sections_total",
			Help:      "Snapshot sections that could not be computed",
		}, []string{"section"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "folio",
			Subsystem: "snapshot",
			Name:      "failures_total",
			Help:      "Snapshots that failed on collaborator errors",
		}),
	}
	m.registry.MustRegister(m.duration, m.unavailable, m.failures)
	return m
}

// Registry exposes the recorder's registry for scraping or gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveSnapshot records one completed snapshot.
func (m *Metrics) ObserveSnapshot(elapsed time.Duration, unavailable []string) {
	if m == nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	for _, section := range unavailable {
		m.unavailable.WithLabelValues(section).Inc()
	}
}

// ObserveFailure records a snapshot aborted by a collaborator error.
func (m *Metrics) ObserveFailure() {
	if m == nil {
		return
	}
	m.failures.Inc()
}
