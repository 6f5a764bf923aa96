package cart

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RemoteFunc builds the remote cart for one user.
type RemoteFunc func(userID uint) Remote

// Session is one user's live cart: the store plus the synchronizer keeping
// it aligned with the user's other contexts and the remote copy.
type Session struct {
	Store *Store
	Sync  *Synchronizer
}

// Manager hands out one Session per user and keeps their synchronizers
// running until Close. Sessions are created lazily on first use.
type Manager struct {
	backend  Backend
	remotes  RemoteFunc
	interval time.Duration
	log      *zap.Logger
	onChange func(userID uint, items []LineItem)

	mu       sync.Mutex
	sessions map[uint]*Session

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// ManagerOption configures a Manager at construction.
type ManagerOption func(*Manager)

// WithRemotes wires per-user remote carts into new sessions.
func WithRemotes(fn RemoteFunc) ManagerOption {
	return func(m *Manager) { m.remotes = fn }
}

// WithSyncInterval overrides DefaultSyncInterval for new sessions.
func WithSyncInterval(d time.Duration) ManagerOption {
	return func(m *Manager) { m.interval = d }
}

// WithChangeListener registers fn to run after any session's state
// changes. Used to fan cart updates out to the user's open websockets.
func WithChangeListener(fn func(userID uint, items []LineItem)) ManagerOption {
	return func(m *Manager) { m.onChange = fn }
}

func NewManager(backend Backend, log *zap.Logger, opts ...ManagerOption) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		backend:  backend,
		interval: DefaultSyncInterval,
		log:      log,
		sessions: make(map[uint]*Session),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session returns the user's live cart, creating and initializing it on
// first use. Initialization failure does not block the session: it comes
// back in the error state and the caller decides whether to retry.
func (m *Manager) Session(ctx context.Context, userID uint) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[userID]; ok {
		return sess
	}

	var remote Remote
	if m.remotes != nil {
		remote = m.remotes(userID)
	}

	store := NewStore(ownerKey(userID), m.backend, WithOnChange(func(items []LineItem) {
		if m.onChange != nil {
			m.onChange(userID, items)
		}
	}))
	sync := NewSynchronizer(store, remote, m.interval, m.log)
	if err := sync.Initialize(ctx); err != nil {
		m.log.Warn("cart session started in error state",
			zap.Uint("userId", userID),
			zap.Error(err))
	}

	sess := &Session{Store: store, Sync: sync}
	m.sessions[userID] = sess

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		sync.Run(m.ctx)
	}()
	return sess
}

// Close stops every session's synchronizer and waits for them to exit.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}

func ownerKey(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}
