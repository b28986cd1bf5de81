package metrics

import "github.com/prometheus/client_golang/prometheus"

// SearchMetrics holds the search pipeline's prometheus collectors. A nil
// *SearchMetrics is a no-op, so tests can skip wiring it.
type SearchMetrics struct {
	searchDuration *prometheus.HistogramVec
	searchesTotal  *prometheus.CounterVec
	zeroResults    prometheus.Counter
	cacheTotal     *prometheus.CounterVec
	sourceFailures *prometheus.CounterVec
}

// NewSearchMetrics creates and registers the search collectors.
func NewSearchMetrics(reg prometheus.Registerer) *SearchMetrics {
	m := &SearchMetrics{
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pawsearch",
				Name:      "search_duration_seconds",
				Help:      "Search pipeline duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"type"},
		),
		searchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pawsearch",
				Name:      "searches_total",
				Help:      "Total number of search calls",
			},
			[]string{"type"},
		),
		zeroResults: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "pawsearch",
				Name:      "search_zero_results_total",
				Help:      "Searches that returned no results",
			},
		),
		cacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pawsearch",
				Name:      "search_cache_total",
				Help:      "Response cache lookups by result",
			},
			[]string{"result"},
		),
		sourceFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pawsearch",
				Name:      "search_source_failures_total",
				Help:      "Source retrieval failures degraded to empty results",
			},
			[]string{"source"},
		),
	}

	reg.MustRegister(m.searchDuration, m.searchesTotal, m.zeroResults, m.cacheTotal, m.sourceFailures)
	return m
}

// ObserveSearch records one completed search call.
func (m *SearchMetrics) ObserveSearch(searchType string, seconds float64, zeroResults bool) {
	if m == nil {
		return
	}
	m.searchDuration.WithLabelValues(searchType).Observe(seconds)
	m.searchesTotal.WithLabelValues(searchType).Inc()
	if zeroResults {
		m.zeroResults.Inc()
	}
}

// IncCache records a response cache lookup outcome ("hit" or "miss").
func (m *SearchMetrics) IncCache(result string) {
	if m == nil {
		return
	}
	m.cacheTotal.WithLabelValues(result).Inc()
}

// IncSourceFailure records a retrieval source that failed and was degraded
// to an empty result list.
func (m *SearchMetrics) IncSourceFailure(source string) {
	if m == nil {
		return
	}
	m.sourceFailures.WithLabelValues(source).Inc()
}
