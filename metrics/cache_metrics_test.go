package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheMetrics_Counters(t *testing.T) {
	m := NewCacheMetrics("weather-test")

	m.RecordHit()
	m.RecordHit()
	m.RecordMiss()

	hits, misses := m.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestCacheMetrics_IndependentInstances(t *testing.T) {
	a := NewCacheMetrics("cache-a")
	b := NewCacheMetrics("cache-b")

	a.RecordHit()
	b.RecordMiss()

	aHits, aMisses := a.Stats()
	bHits, bMisses := b.Stats()
	assert.Equal(t, int64(1), aHits)
	assert.Equal(t, int64(0), aMisses)
	assert.Equal(t, int64(0), bHits)
	assert.Equal(t, int64(1), bMisses)
}

func TestCacheMetrics_FetchDurationDoesNotPanic(t *testing.T) {
	m := NewCacheMetrics("weather-test")
	assert.NotPanics(t, func() { m.RecordFetchDuration(0.123) })
}
