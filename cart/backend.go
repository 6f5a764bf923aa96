package cart

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when the key has never been saved.
var ErrNotFound = errors.New("cart: snapshot not found")

// Event announces that a key was overwritten. Origin identifies the store
// that wrote it, so a context can tell foreign writes from its own.
type Event struct {
	Key    string
	Origin string
}

// Backend is durable storage for cart snapshots: one JSON blob per key,
// overwritten whole on every save, with change notifications fanned out to
// the user's other open contexts.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte, origin string) error
	// Watch returns a channel of save events for key and a stop func that
	// releases the watcher and closes the channel.
	Watch(key string) (<-chan Event, func())
}

// WatchHub fans save events out to registered watchers. Backends embed one
// so every implementation notifies the same way.
type WatchHub struct {
	mu       sync.Mutex
	watchers map[string]map[chan Event]struct{}
}

func NewWatchHub() *WatchHub {
	return &WatchHub{watchers: make(map[string]map[chan Event]struct{})}
}

func (h *WatchHub) Watch(key string) (<-chan Event, func()) {
	ch := make(chan Event, 8)
	h.mu.Lock()
	if h.watchers[key] == nil {
		h.watchers[key] = make(map[chan Event]struct{})
	}
	h.watchers[key][ch] = struct{}{}
	h.mu.Unlock()

	stop := func() {
		h.mu.Lock()
		if set, ok := h.watchers[key]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(h.watchers, key)
			}
		}
		h.mu.Unlock()
	}
	return ch, stop
}

// Publish delivers ev to every watcher of its key. A watcher that is not
// draining its channel misses the event rather than blocking the writer; a
// missed event only delays the reload until the next one.
func (h *WatchHub) Publish(ev Event) {
	h.mu.Lock()
	for ch := range h.watchers[ev.Key] {
		select {
		case ch <- ev:
		default:
		}
	}
	h.mu.Unlock()
}
