// Package metrics defines the prometheus collectors for portal script resolution.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "portalscripts"

// Metrics groups the collectors updated by the script cache.
type Metrics struct {
	// CacheRequests counts cache lookups by result ("hit" or "miss").
	CacheRequests *prometheus.CounterVec

	// Loads counts external loads by result ("success" or a failure kind).
	Loads *prometheus.CounterVec

	// Invocations counts invocations by outcome ("true", "false" or a failure kind).
	Invocations *prometheus.CounterVec

	// CachedScripts is the number of handles currently cached.
	CachedScripts prometheus.Gauge

	// Invalidations counts full cache invalidations.
	Invalidations prometheus.Counter

	// InvokeDuration records the wall time of each invocation.
	InvokeDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg registers
// with a private registry, which keeps tests and multiple caches isolated.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "The number of portal script cache lookups",
		}, []string{"result"}),
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "The number of portal script loads from the script source",
		}, []string{"result"}),
		Invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invocations_total",
			Help:      "The number of portal script invocations",
		}, []string{"outcome"}),
		CachedScripts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cached_scripts",
			Help:      "The number of portal scripts currently cached",
		}),
		Invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalidations_total",
			Help:      "The number of times the whole portal script cache was cleared",
		}),
		InvokeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invoke_duration_seconds",
			Help:      "Portal script invocation duration",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.CacheRequests,
		m.Loads,
		m.Invocations,
		m.CachedScripts,
		m.Invalidations,
		m.InvokeDuration,
	)
	return m
}
