package cache

import (
	"context"
	"sync"
	"time"
)

// Interface defines generic byte-level cache operations. Typed callers
// marshal their own payloads so memory and redis backends stay swappable.
type Interface interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}

type cacheEntry struct {
	Data      []byte
	ExpiresAt time.Time
}

type MemoryCache struct {
	data   map[string]cacheEntry
	mutex  sync.RWMutex
	ticker *time.Ticker
	stopCh chan struct{}
}

func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data:   make(map[string]cacheEntry),
		ticker: time.NewTicker(5 * time.Minute),
		stopCh: make(chan struct{}),
	}

	go cache.cleanup()
	return cache
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Data, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if value == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func (c *MemoryCache) Delete(ctx context.Context, key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
}

func (c *MemoryCache) Clear(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]cacheEntry)
}

// Stop terminates the background cleanup goroutine.
func (c *MemoryCache) Stop() {
	close(c.stopCh)
}

func (c *MemoryCache) cleanup() {
	for {
		select {
		case <-c.ticker.C:
			c.removeExpiredEntries()
		case <-c.stopCh:
			c.ticker.Stop()
			return
		}
	}
}

func (c *MemoryCache) removeExpiredEntries() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, entry := range c.data {
		if now.After(entry.ExpiresAt) {
			delete(c.data, key)
		}
	}
}
