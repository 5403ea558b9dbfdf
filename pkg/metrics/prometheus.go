package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics records parameter cache events as Prometheus counters.
type CacheMetrics struct {
	registry *prometheus.Registry

	hitsTotal       prometheus.Counter
	missesTotal     prometheus.Counter
	notFoundTotal   prometheus.Counter
	pagesTotal      prometheus.Counter
	parametersTotal prometheus.Counter
}

// NewCacheMetrics creates the cache counters on a fresh registry.
func NewCacheMetrics(namespace string) *CacheMetrics {
	registry := prometheus.NewRegistry()

	cm := &CacheMetrics{
		registry: registry,

		hitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of lookups answered from memory",
		}),
		missesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of lookups that fell back to a point query",
		}),
		notFoundTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_not_found_total",
			Help:      "Total number of point queries for parameters the store does not have",
		}),
		pagesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_pages_total",
			Help:      "Total number of bulk query pages read",
		}),
		parametersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_parameters_total",
			Help:      "Total number of parameters cached by bulk loads",
		}),
	}

	registry.MustRegister(
		cm.hitsTotal,
		cm.missesTotal,
		cm.notFoundTotal,
		cm.pagesTotal,
		cm.parametersTotal,
	)

	return cm
}

// Registry returns the registry holding the cache counters.
func (m *CacheMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *CacheMetrics) Hit()      { m.hitsTotal.Inc() }
func (m *CacheMetrics) Miss()     { m.missesTotal.Inc() }
func (m *CacheMetrics) NotFound() { m.notFoundTotal.Inc() }

func (m *CacheMetrics) Loaded(pages, parameters int) {
	m.pagesTotal.Add(float64(pages))
	m.parametersTotal.Add(float64(parameters))
}

// Summary gathers the current counter values keyed by metric name.
func (m *CacheMetrics) Summary() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	summary := make(map[string]float64, len(families))

	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			summary[mf.GetName()] += metric.GetCounter().GetValue()
		}
	}

	return summary, nil
}
