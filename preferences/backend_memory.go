package preferences

import (
	"context"
	"sync"
)

// MemoryBackend keeps preference entries in a map. Used when no database
// is configured and in tests.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (b *MemoryBackend) Load(ctx context.Context) (map[string]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	values := make(map[string]string, len(b.values))
	for key, value := range b.values {
		values[key] = value
	}
	return values, nil
}

func (b *MemoryBackend) Save(ctx context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
	return nil
}
