// Package cart holds the customer's cart state: an in-memory item list per
// user context, persisted to a snapshot backend on every mutation and kept
// consistent across the user's open contexts by a Synchronizer.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/pkg/pricing"
)

// Namespace prefixes every storage key so cart blobs never collide with
// other tenants of the snapshot table.
const Namespace = "mina-cart"

// Key returns the storage key for one owner.
func Key(owner string) string { return Namespace + ":" + owner }

// ErrPersistFailed wraps backend save errors. The in-memory mutation has
// already been applied and stays applied; callers retry with Flush.
var ErrPersistFailed = errors.New("cart: persist failed")

// persisted is the JSON shape written to the backend.
type persisted struct {
	Items []LineItem `json:"items"`
}

func decodeSnapshot(data []byte) ([]LineItem, error) {
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("cart: decode snapshot: %w", err)
	}
	return p.Items, nil
}

// Store is the cart state container for one context. Mutations are
// serialized and applied in call order; each one writes the full item list
// to the backend before returning. Reads never touch the backend.
type Store struct {
	id      string
	key     string
	backend Backend

	mu       sync.Mutex
	items    []LineItem
	saveErr  error
	onChange func([]LineItem)
}

// Option configures a Store at construction.
type Option func(*Store)

// WithOnChange registers fn to run after every committed state change,
// including reloads pushed in from other contexts. fn receives its own copy
// of the items and must not call back into the store's mutators.
func WithOnChange(fn func([]LineItem)) Option {
	return func(s *Store) { s.onChange = fn }
}

// NewStore builds an empty store for owner. Each store gets a unique id so
// its own backend writes can be told apart from foreign ones.
func NewStore(owner string, backend Backend, opts ...Option) *Store {
	s := &Store{
		id:      uuid.NewString(),
		key:     Key(owner),
		backend: backend,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID identifies this store instance in backend events.
func (s *Store) ID() string { return s.id }

// Key is the backend key this store persists under.
func (s *Store) Key() string { return s.key }

// AddItem validates item, appends it as a new line with a fresh id and
// persists. Lines are never merged: adding the same item twice yields two
// entries. The stored line, id included, is returned.
func (s *Store) AddItem(ctx context.Context, item LineItem) (LineItem, error) {
	if err := item.validate(); err != nil {
		return LineItem{}, err
	}
	item.ID = uuid.NewString()
	err := s.mutate(ctx, func() bool {
		s.items = append(s.items, item)
		return true
	})
	return item, err
}

// RemoveItem deletes the line with the given id. Absent ids are a no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	return s.mutate(ctx, func() bool {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items = append(s.items[:i], s.items[i+1:]...)
				return true
			}
		}
		return false
	})
}

// UpdateQuantity sets the line's quantity. A quantity of zero or less
// removes the line, exactly as RemoveItem would.
func (s *Store) UpdateQuantity(ctx context.Context, id string, qty int) error {
	if qty <= 0 {
		return s.RemoveItem(ctx, id)
	}
	return s.mutate(ctx, func() bool {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items[i].Quantity = qty
				return true
			}
		}
		return false
	})
}

// UpdateNote replaces the free-text note on a line.
func (s *Store) UpdateNote(ctx context.Context, id, note string) error {
	return s.mutate(ctx, func() bool {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items[i].Note = note
				return true
			}
		}
		return false
	})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func() bool {
		if len(s.items) == 0 {
			return false
		}
		s.items = nil
		return true
	})
}

// Flush re-persists the current state. It is the retry action after a
// mutation returned ErrPersistFailed.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

// PersistErr reports whether the last write to the backend failed. Nil
// means memory and storage agree.
func (s *Store) PersistErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveErr
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// TotalItems is the sum of quantities across all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// HasItems reports whether the cart holds at least one line.
func (s *Store) HasItems() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) > 0
}

// Totals prices the current cart.
func (s *Store) Totals() pricing.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Calculate(pricingLines(s.items))
}

func (s *Store) Subtotal() int64    { return s.Totals().Subtotal }
func (s *Store) Tax() int64         { return s.Totals().Tax }
func (s *Store) DeliveryFee() int64 { return s.Totals().DeliveryFee }
func (s *Store) Total() int64       { return s.Totals().Total }

// mutate runs fn under the lock, persists when fn reports a change and
// fires onChange outside the lock so the callback can read the store.
func (s *Store) mutate(ctx context.Context, fn func() bool) error {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return nil
	}
	err := s.persistLocked(ctx)
	snapshot := s.copyLocked()
	cb := s.onChange
	s.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
	return err
}

// replace swaps in state loaded from the backend. No persist: the data just
// came from there. The synchronizer is the only caller.
func (s *Store) replace(items []LineItem) {
	s.mu.Lock()
	s.items = make([]LineItem, len(items))
	copy(s.items, items)
	snapshot := s.copyLocked()
	cb := s.onChange
	s.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(persisted{Items: s.items})
	if err == nil {
		err = s.backend.Save(ctx, s.key, data, s.id)
	}
	if err != nil {
		s.saveErr = fmt.Errorf("%w: %v", ErrPersistFailed, err)
	} else {
		s.saveErr = nil
	}
	return s.saveErr
}

func (s *Store) copyLocked() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}
