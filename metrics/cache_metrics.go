package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type cacheCollectors struct {
	hits     *prometheus.CounterVec
	misses   *prometheus.CounterVec
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

var (
	collectorsOnce sync.Once
	collectors     *cacheCollectors
)

func getCollectors() *cacheCollectors {
	collectorsOnce.Do(func() {
		collectors = &cacheCollectors{
			hits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherdash_cache_hits_total",
					Help: "The total number of cache hits",
				},
				[]string{"cache"},
			),
			misses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherdash_cache_misses_total",
					Help: "The total number of cache misses",
				},
				[]string{"cache"},
			),
			requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherdash_cache_requests_total",
					Help: "The total number of cache requests",
				},
				[]string{"cache"},
			),
			latency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "weatherdash_fetch_duration_seconds",
					Help:    "Upstream fetch duration in seconds on cache miss",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"cache"},
			),
		}
	})
	return collectors
}

// CacheMetrics tracks hit/miss counts for one named cache.
type CacheMetrics struct {
	name   string
	hits   int64
	misses int64
	mu     sync.RWMutex
}

func NewCacheMetrics(name string) *CacheMetrics {
	return &CacheMetrics{name: name}
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	m.hits++
	m.mu.Unlock()

	c := getCollectors()
	c.hits.WithLabelValues(m.name).Inc()
	c.requests.WithLabelValues(m.name).Inc()
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	m.misses++
	m.mu.Unlock()

	c := getCollectors()
	c.misses.WithLabelValues(m.name).Inc()
	c.requests.WithLabelValues(m.name).Inc()
}

// RecordFetchDuration records how long the upstream call behind a miss took.
func (m *CacheMetrics) RecordFetchDuration(seconds float64) {
	getCollectors().latency.WithLabelValues(m.name).Observe(seconds)
}

// Stats returns the in-process hit/miss counters.
func (m *CacheMetrics) Stats() (hits, misses int64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits, m.misses
}
