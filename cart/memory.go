package cart

import (
	"context"
	"sync"
)

// MemoryBackend keeps snapshots in a map. It backs unit tests and defines
// the behavior the database-backed implementation has to match.
type MemoryBackend struct {
	*WatchHub

	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		WatchHub: NewWatchHub(),
		data:     make(map[string][]byte),
	}
}

func (b *MemoryBackend) Load(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (b *MemoryBackend) Save(_ context.Context, key string, data []byte, origin string) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	b.mu.Lock()
	b.data[key] = cp
	b.mu.Unlock()
	b.Publish(Event{Key: key, Origin: origin})
	return nil
}
