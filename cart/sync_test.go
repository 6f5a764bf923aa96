package cart_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/cart"
)

// brokenLoadBackend fails Load until healed, for initialization failures.
type brokenLoadBackend struct {
	*cart.MemoryBackend
	failLoad bool
}

func (b *brokenLoadBackend) Load(ctx context.Context, key string) ([]byte, error) {
	if b.failLoad {
		return nil, errors.New("storage offline")
	}
	return b.MemoryBackend.Load(ctx, key)
}

type fakeRemote struct {
	mu        sync.Mutex
	pullItems []cart.LineItem
	pullErr   error
	pushErr   error
	pushes    [][]cart.LineItem
}

func (r *fakeRemote) Pull(context.Context) ([]cart.LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pullItems, r.pullErr
}

func (r *fakeRemote) Push(_ context.Context, items []cart.LineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pushErr != nil {
		return r.pushErr
	}
	r.pushes = append(r.pushes, items)
	return nil
}

func (r *fakeRemote) pushCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pushes)
}

func (r *fakeRemote) lastPush() []cart.LineItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pushes) == 0 {
		return nil
	}
	return r.pushes[len(r.pushes)-1]
}

func waitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestInitializeLifecycle(t *testing.T) {
	backend := cart.NewMemoryBackend()
	store := cart.NewStore("7", backend)
	sync := cart.NewSynchronizer(store, nil, 0, nil)

	if got := sync.State(); got != cart.SyncNotInitialized {
		t.Fatalf("initial state = %q, want %q", got, cart.SyncNotInitialized)
	}
	if err := sync.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if got := sync.State(); got != cart.SyncInitialized {
		t.Fatalf("state = %q, want %q", got, cart.SyncInitialized)
	}
	if store.HasItems() {
		t.Fatal("first visit should start with an empty cart")
	}
}

func TestInitializeLoadsSnapshot(t *testing.T) {
	backend := cart.NewMemoryBackend()
	ctx := context.Background()

	writer := cart.NewStore("7", backend)
	if _, err := writer.AddItem(ctx, jollofBowl()); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	store := cart.NewStore("7", backend)
	sync := cart.NewSynchronizer(store, nil, 0, nil)
	if err := sync.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if got := store.TotalItems(); got != 2 {
		t.Fatalf("TotalItems after init = %d, want 2", got)
	}
}

func TestInitializeFailureThenRetry(t *testing.T) {
	backend := &brokenLoadBackend{MemoryBackend: cart.NewMemoryBackend(), failLoad: true}
	store := cart.NewStore("7", backend)
	sync := cart.NewSynchronizer(store, nil, 0, nil)
	ctx := context.Background()

	if err := sync.Initialize(ctx); err == nil {
		t.Fatal("Initialize should fail while storage is offline")
	}
	if got := sync.State(); got != cart.SyncError {
		t.Fatalf("state = %q, want %q", got, cart.SyncError)
	}
	if sync.LastError() == nil {
		t.Fatal("LastError should carry the initialization failure")
	}

	backend.failLoad = false
	if err := sync.RetryInitialization(ctx); err != nil {
		t.Fatalf("RetryInitialization: %v", err)
	}
	if got := sync.State(); got != cart.SyncInitialized {
		t.Fatalf("state after retry = %q, want %q", got, cart.SyncInitialized)
	}
	if sync.LastError() != nil {
		t.Fatalf("LastError after retry = %v, want nil", sync.LastError())
	}
}

func TestInitializeSeedsFromRemote(t *testing.T) {
	backend := cart.NewMemoryBackend()
	store := cart.NewStore("7", backend)
	remote := &fakeRemote{pullItems: []cart.LineItem{
		{ID: "r1", MenuItemID: 2, Name: "Suya Wrap", Quantity: 1, UnitPrice: 1500},
	}}
	sync := cart.NewSynchronizer(store, remote, 0, nil)

	if err := sync.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if got := store.TotalItems(); got != 1 {
		t.Fatalf("TotalItems = %d, want the remote line", got)
	}
	if got := store.Items()[0].Name; got != "Suya Wrap" {
		t.Fatalf("seeded item = %q, want Suya Wrap", got)
	}
}

func TestInitializeRemoteDownStartsEmpty(t *testing.T) {
	backend := cart.NewMemoryBackend()
	store := cart.NewStore("7", backend)
	remote := &fakeRemote{pullErr: errors.New("remote down")}
	sync := cart.NewSynchronizer(store, remote, 0, nil)

	if err := sync.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize should tolerate a dead remote, got %v", err)
	}
	if got := sync.State(); got != cart.SyncInitialized {
		t.Fatalf("state = %q, want %q", got, cart.SyncInitialized)
	}
	if store.HasItems() {
		t.Fatal("cart should start empty when the remote is unavailable")
	}
}

func TestCrossContextReload(t *testing.T) {
	backend := cart.NewMemoryBackend()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storeA := cart.NewStore("7", backend)
	storeB := cart.NewStore("7", backend)
	syncB := cart.NewSynchronizer(storeB, nil, time.Hour, nil)
	if err := syncB.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		syncB.Run(ctx)
	}()

	if _, err := storeA.AddItem(ctx, jollofBowl()); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	waitFor(t, time.Second, "context B to pick up the foreign write", func() bool {
		return storeB.TotalItems() == 2
	})

	// Last write wins in both directions.
	if err := storeA.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	waitFor(t, time.Second, "context B to pick up the clear", func() bool {
		return !storeB.HasItems()
	})

	cancel()
	<-done
}

func TestPeriodicPushToRemote(t *testing.T) {
	backend := cart.NewMemoryBackend()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := cart.NewStore("7", backend)
	remote := &fakeRemote{}
	sync := cart.NewSynchronizer(store, remote, 20*time.Millisecond, nil)
	if err := sync.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if _, err := store.AddItem(ctx, suyaWrap()); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	go sync.Run(ctx)

	waitFor(t, time.Second, "a periodic push", func() bool {
		return remote.pushCount() >= 2
	})
	last := remote.lastPush()
	if len(last) != 1 || last[0].Name != "Suya Wrap" {
		t.Fatalf("pushed %+v, want the local line", last)
	}
	if at, err := sync.LastSync(); err != nil || at.IsZero() {
		t.Fatalf("LastSync = (%v, %v), want a timestamp and nil", at, err)
	}
}

func TestSyncFailureKeepsLocalState(t *testing.T) {
	backend := cart.NewMemoryBackend()
	store := cart.NewStore("7", backend)
	remote := &fakeRemote{pushErr: errors.New("remote down")}
	sync := cart.NewSynchronizer(store, remote, time.Hour, nil)
	ctx := context.Background()

	if err := sync.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if _, err := store.AddItem(ctx, jollofBowl()); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := sync.SyncNow(ctx); err == nil {
		t.Fatal("SyncNow should surface the push failure")
	}
	if got := store.TotalItems(); got != 2 {
		t.Fatalf("local state lost after failed sync, TotalItems = %d", got)
	}
	if got := sync.State(); got != cart.SyncInitialized {
		t.Fatalf("sync failures must not change lifecycle state, got %q", got)
	}
	if _, err := sync.LastSync(); err == nil {
		t.Fatal("LastSync should report the failed attempt")
	}
}

func TestManagerReusesSessions(t *testing.T) {
	backend := cart.NewMemoryBackend()
	m := cart.NewManager(backend, nil, cart.WithSyncInterval(time.Hour))
	defer m.Close()
	ctx := context.Background()

	first := m.Session(ctx, 7)
	second := m.Session(ctx, 7)
	if first != second {
		t.Fatal("same user should get the same session")
	}
	other := m.Session(ctx, 8)
	if other == first {
		t.Fatal("different users must not share a session")
	}
	if first.Store.Key() == other.Store.Key() {
		t.Fatal("sessions share a storage key")
	}
}

func TestManagerChangeListener(t *testing.T) {
	backend := cart.NewMemoryBackend()

	var mu sync.Mutex
	var gotUser uint
	var gotItems []cart.LineItem
	m := cart.NewManager(backend, nil,
		cart.WithSyncInterval(time.Hour),
		cart.WithChangeListener(func(userID uint, items []cart.LineItem) {
			mu.Lock()
			gotUser, gotItems = userID, items
			mu.Unlock()
		}))
	defer m.Close()
	ctx := context.Background()

	sess := m.Session(ctx, 7)
	if _, err := sess.Store.AddItem(ctx, jollofBowl()); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if gotUser != 7 {
		t.Fatalf("listener saw user %d, want 7", gotUser)
	}
	if len(gotItems) != 1 || gotItems[0].Name != "Jollof Bowl" {
		t.Fatalf("listener saw %+v, want the added line", gotItems)
	}
}
