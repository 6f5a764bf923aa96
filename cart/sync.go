package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SyncState is the synchronizer's initialization lifecycle.
type SyncState string

const (
	SyncNotInitialized SyncState = "not_initialized"
	SyncInitializing   SyncState = "initializing"
	SyncInitialized    SyncState = "initialized"
	SyncError          SyncState = "error"
)

// DefaultSyncInterval is how often the local cart is pushed to the remote
// copy when no explicit interval is configured.
const DefaultSyncInterval = 30 * time.Second

// Remote is the server-held cart the synchronizer reconciles with. Pull
// seeds a context that has no snapshot yet; Push mirrors the local state
// out on a timer. Both are best-effort: the snapshot backend, not the
// remote, is the source of truth.
type Remote interface {
	Pull(ctx context.Context) ([]LineItem, error)
	Push(ctx context.Context, items []LineItem) error
}

// Synchronizer keeps one store consistent with the user's other contexts
// through the shared backend, and mirrors it to a remote cart on an
// interval.
//
// Concurrent writers resolve last-write-wins: whichever context saved last
// owns the state everywhere. A context never reacts to its own writes.
type Synchronizer struct {
	store    *Store
	remote   Remote
	interval time.Duration
	log      *zap.Logger

	mu          sync.Mutex
	state       SyncState
	lastErr     error
	lastSyncErr error
	lastSyncAt  time.Time
}

func NewSynchronizer(store *Store, remote Remote, interval time.Duration, log *zap.Logger) *Synchronizer {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Synchronizer{
		store:    store,
		remote:   remote,
		interval: interval,
		log:      log,
		state:    SyncNotInitialized,
	}
}

// State reports where the synchronizer is in its lifecycle.
func (s *Synchronizer) State() SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError is the error that parked the synchronizer in SyncError, nil
// otherwise.
func (s *Synchronizer) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// LastSync reports when the remote last accepted a push and the error from
// the most recent attempt.
func (s *Synchronizer) LastSync() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSyncAt, s.lastSyncErr
}

// Initialize loads the durable snapshot into the store. When no snapshot
// exists the remote cart seeds the context instead, so a user signing in on
// a new device starts from their server cart rather than empty. On failure
// the synchronizer parks in SyncError until RetryInitialization; the store
// stays usable on whatever state it already holds.
func (s *Synchronizer) Initialize(ctx context.Context) error {
	s.setState(SyncInitializing, nil)

	data, err := s.store.backend.Load(ctx, s.store.key)
	switch {
	case errors.Is(err, ErrNotFound):
		s.seedFromRemote(ctx)
	case err != nil:
		s.setState(SyncError, err)
		return err
	default:
		items, derr := decodeSnapshot(data)
		if derr != nil {
			s.setState(SyncError, derr)
			return derr
		}
		s.store.replace(items)
	}

	s.setState(SyncInitialized, nil)
	return nil
}

// RetryInitialization resets the lifecycle and runs Initialize again. Safe
// to call from any state.
func (s *Synchronizer) RetryInitialization(ctx context.Context) error {
	return s.Initialize(ctx)
}

// Run reacts to backend writes from other contexts and pushes to the
// remote on the interval. It blocks until ctx is done or the watch is
// closed. Call after a successful Initialize.
func (s *Synchronizer) Run(ctx context.Context) {
	events, stop := s.store.backend.Watch(s.store.key)
	defer stop()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Origin == s.store.ID() {
				continue
			}
			s.reload(ctx)
		case <-ticker.C:
			s.SyncNow(ctx)
		}
	}
}

// SyncNow pushes the local items to the remote once. Failures are logged
// and local state stays authoritative. An in-flight push is never
// cancelled by a newer one; pushes carry the full state, so the latest
// completion wins regardless of order.
func (s *Synchronizer) SyncNow(ctx context.Context) error {
	if s.remote == nil {
		return nil
	}
	err := s.remote.Push(ctx, s.store.Items())

	s.mu.Lock()
	s.lastSyncErr = err
	if err == nil {
		s.lastSyncAt = time.Now()
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("cart sync failed, continuing on local data",
			zap.String("key", s.store.Key()),
			zap.Error(err))
	}
	return err
}

// reload replaces local state with whatever durable storage holds now.
// Last write wins; a corrupt or unreadable snapshot keeps the local state.
func (s *Synchronizer) reload(ctx context.Context) {
	data, err := s.store.backend.Load(ctx, s.store.key)
	if errors.Is(err, ErrNotFound) {
		s.store.replace(nil)
		return
	}
	if err != nil {
		s.log.Warn("cart reload failed, keeping local state",
			zap.String("key", s.store.Key()),
			zap.Error(err))
		return
	}
	items, err := decodeSnapshot(data)
	if err != nil {
		s.log.Warn("cart snapshot unreadable, keeping local state",
			zap.String("key", s.store.Key()),
			zap.Error(err))
		return
	}
	s.store.replace(items)
}

func (s *Synchronizer) seedFromRemote(ctx context.Context) {
	if s.remote == nil {
		return
	}
	items, err := s.remote.Pull(ctx)
	if err != nil {
		s.log.Warn("remote cart unavailable, starting empty",
			zap.String("key", s.store.Key()),
			zap.Error(err))
		return
	}
	if len(items) == 0 {
		return
	}
	s.store.replace(items)
	if err := s.store.Flush(ctx); err != nil {
		s.log.Warn("seeded cart not persisted yet", zap.Error(err))
	}
}

func (s *Synchronizer) setState(state SyncState, err error) {
	s.mu.Lock()
	s.state = state
	s.lastErr = err
	s.mu.Unlock()
}
