package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/cart"
)

// flakyBackend fails saves on demand so persist-failure recovery can be
// exercised.
type flakyBackend struct {
	*cart.MemoryBackend
	failSave bool
	saves    int
}

func (b *flakyBackend) Save(ctx context.Context, key string, data []byte, origin string) error {
	b.saves++
	if b.failSave {
		return errors.New("disk full")
	}
	return b.MemoryBackend.Save(ctx, key, data, origin)
}

func newTestStore(t *testing.T) (*cart.Store, *cart.MemoryBackend) {
	t.Helper()
	backend := cart.NewMemoryBackend()
	return cart.NewStore("42", backend), backend
}

func jollofBowl() cart.LineItem {
	return cart.LineItem{MenuItemID: 1, Name: "Jollof Bowl", Quantity: 2, UnitPrice: 1000}
}

func suyaWrap() cart.LineItem {
	return cart.LineItem{MenuItemID: 2, Name: "Suya Wrap", Quantity: 1, UnitPrice: 1500}
}

func TestAddItemAssignsFreshID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.AddItem(ctx, jollofBowl())
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	second, err := s.AddItem(ctx, jollofBowl())
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if first.ID == "" || second.ID == "" {
		t.Fatal("expected ids on added lines")
	}
	if first.ID == second.ID {
		t.Fatalf("same id %q on two adds", first.ID)
	}
	if got := len(s.Items()); got != 2 {
		t.Fatalf("identical adds must not merge, got %d lines", got)
	}
	if got := s.TotalItems(); got != 4 {
		t.Fatalf("TotalItems = %d, want 4", got)
	}
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	names := []string{"Jollof Bowl", "Suya Wrap", "Chin Chin"}
	for i, n := range names {
		if _, err := s.AddItem(ctx, cart.LineItem{MenuItemID: uint(i + 1), Name: n, Quantity: 1, UnitPrice: 500}); err != nil {
			t.Fatalf("AddItem %q: %v", n, err)
		}
	}

	items := s.Items()
	for i, n := range names {
		if items[i].Name != n {
			t.Fatalf("items[%d].Name = %q, want %q", i, items[i].Name, n)
		}
	}
}

func TestAddItemRejectsInvalid(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	bad := []cart.LineItem{
		{MenuItemID: 0, Name: "no id", Quantity: 1, UnitPrice: 100},
		{MenuItemID: 1, Name: "no qty", Quantity: 0, UnitPrice: 100},
		{MenuItemID: 1, Name: "negative qty", Quantity: -2, UnitPrice: 100},
		{MenuItemID: 1, Name: "negative price", Quantity: 1, UnitPrice: -1},
	}
	for _, item := range bad {
		if _, err := s.AddItem(ctx, item); !errors.Is(err, cart.ErrInvalidItem) {
			t.Errorf("AddItem(%s): err = %v, want ErrInvalidItem", item.Name, err)
		}
	}
	if s.HasItems() {
		t.Fatal("rejected adds must leave the cart untouched")
	}
}

func TestScenarioTotals(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a, err := s.AddItem(ctx, jollofBowl())
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got := s.Subtotal(); got != 2000 {
		t.Fatalf("Subtotal after A = %d, want 2000", got)
	}
	if got := s.TotalItems(); got != 2 {
		t.Fatalf("TotalItems after A = %d, want 2", got)
	}

	if _, err := s.AddItem(ctx, suyaWrap()); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	totals := s.Totals()
	if totals.Subtotal != 3500 {
		t.Fatalf("Subtotal = %d, want 3500", totals.Subtotal)
	}
	if totals.Tax != 455 {
		t.Fatalf("Tax = %d, want 455", totals.Tax)
	}
	if totals.DeliveryFee != 599 {
		t.Fatalf("DeliveryFee = %d, want 599", totals.DeliveryFee)
	}
	if totals.Total != 4554 {
		t.Fatalf("Total = %d, want 4554", totals.Total)
	}

	if err := s.RemoveItem(ctx, a.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if got := s.Subtotal(); got != 1500 {
		t.Fatalf("Subtotal after removing A = %d, want 1500", got)
	}
}

func TestEmptyCartTotals(t *testing.T) {
	s, _ := newTestStore(t)

	totals := s.Totals()
	if totals.Subtotal != 0 || totals.Tax != 0 || totals.DeliveryFee != 0 || totals.Total != 0 {
		t.Fatalf("empty cart totals = %+v, want all zero", totals)
	}
	if s.HasItems() {
		t.Fatal("HasItems on empty cart")
	}
	if got := s.TotalItems(); got != 0 {
		t.Fatalf("TotalItems = %d, want 0", got)
	}
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("sets new quantity", func(t *testing.T) {
		s, _ := newTestStore(t)
		line, _ := s.AddItem(ctx, jollofBowl())

		if err := s.UpdateQuantity(ctx, line.ID, 5); err != nil {
			t.Fatalf("UpdateQuantity: %v", err)
		}
		if got := s.TotalItems(); got != 5 {
			t.Fatalf("TotalItems = %d, want 5", got)
		}
		if got := s.Subtotal(); got != 5000 {
			t.Fatalf("Subtotal = %d, want 5000", got)
		}
	})

	t.Run("zero removes the line", func(t *testing.T) {
		s, _ := newTestStore(t)
		line, _ := s.AddItem(ctx, jollofBowl())
		s.AddItem(ctx, suyaWrap())
		before := s.TotalItems()

		if err := s.UpdateQuantity(ctx, line.ID, 0); err != nil {
			t.Fatalf("UpdateQuantity: %v", err)
		}
		if got := len(s.Items()); got != 1 {
			t.Fatalf("len(items) = %d, want 1", got)
		}
		if got := s.TotalItems(); got != before-line.Quantity {
			t.Fatalf("TotalItems = %d, want %d", got, before-line.Quantity)
		}
	})

	t.Run("negative removes the line", func(t *testing.T) {
		s, _ := newTestStore(t)
		line, _ := s.AddItem(ctx, jollofBowl())

		if err := s.UpdateQuantity(ctx, line.ID, -3); err != nil {
			t.Fatalf("UpdateQuantity: %v", err)
		}
		if s.HasItems() {
			t.Fatal("negative quantity must remove the line")
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.AddItem(ctx, jollofBowl())

		if err := s.UpdateQuantity(ctx, "nope", 9); err != nil {
			t.Fatalf("UpdateQuantity: %v", err)
		}
		if got := s.TotalItems(); got != 2 {
			t.Fatalf("TotalItems = %d, want unchanged 2", got)
		}
	})
}

func TestRemoveItemUnknownIDNoop(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.AddItem(ctx, jollofBowl())

	if err := s.RemoveItem(ctx, "missing"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if got := len(s.Items()); got != 1 {
		t.Fatalf("len(items) = %d, want 1", got)
	}
}

func TestClearEmptiesAndPersists(t *testing.T) {
	backend := cart.NewMemoryBackend()
	s := cart.NewStore("42", backend)
	ctx := context.Background()

	s.AddItem(ctx, jollofBowl())
	s.AddItem(ctx, suyaWrap())
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.HasItems() {
		t.Fatal("cart not empty after Clear")
	}

	// A second store initialized from the same backend must also be empty.
	other := cart.NewStore("42", backend)
	sync := cart.NewSynchronizer(other, nil, 0, nil)
	if err := sync.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if other.HasItems() {
		t.Fatal("cleared cart came back with items from storage")
	}
}

func TestMutationsPersistToBackend(t *testing.T) {
	backend := cart.NewMemoryBackend()
	s := cart.NewStore("42", backend)
	ctx := context.Background()

	line, err := s.AddItem(ctx, jollofBowl())
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	other := cart.NewStore("42", backend)
	sync := cart.NewSynchronizer(other, nil, 0, nil)
	if err := sync.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	items := other.Items()
	if len(items) != 1 {
		t.Fatalf("persisted %d lines, want 1", len(items))
	}
	if items[0].ID != line.ID || items[0].Name != "Jollof Bowl" {
		t.Fatalf("persisted line = %+v, want the added one", items[0])
	}
}

func TestPersistFailureIsRecoverable(t *testing.T) {
	backend := &flakyBackend{MemoryBackend: cart.NewMemoryBackend()}
	s := cart.NewStore("42", backend)
	ctx := context.Background()

	backend.failSave = true
	line, err := s.AddItem(ctx, jollofBowl())
	if !errors.Is(err, cart.ErrPersistFailed) {
		t.Fatalf("AddItem err = %v, want ErrPersistFailed", err)
	}
	if line.ID == "" {
		t.Fatal("failed persist must still return the applied line")
	}
	if got := s.TotalItems(); got != 2 {
		t.Fatalf("in-memory state lost on persist failure, TotalItems = %d", got)
	}
	if s.PersistErr() == nil {
		t.Fatal("PersistErr should report the failed save")
	}

	backend.failSave = false
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush after recovery: %v", err)
	}
	if s.PersistErr() != nil {
		t.Fatalf("PersistErr after Flush = %v, want nil", s.PersistErr())
	}

	other := cart.NewStore("42", backend)
	sync := cart.NewSynchronizer(other, nil, 0, nil)
	if err := sync.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if got := other.TotalItems(); got != 2 {
		t.Fatalf("flushed state not visible to other contexts, TotalItems = %d", got)
	}
}

func TestLineTotalIncludesSelections(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	line, err := s.AddItem(ctx, cart.LineItem{
		MenuItemID: 3,
		Name:       "Pepper Soup",
		Quantity:   2,
		UnitPrice:  1250, // base 1000 + hot 150 + extra meat 100
		Selections: []cart.Selection{
			{CustomizationID: 1, OptionID: 4, Label: "Hot", PriceDelta: 150},
			{CustomizationID: 2, OptionID: 9, Label: "Extra meat", PriceDelta: 100},
		},
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got := line.Total(); got != 2500 {
		t.Fatalf("line.Total() = %d, want 2500", got)
	}
	if got := s.Subtotal(); got != 2500 {
		t.Fatalf("Subtotal = %d, want 2500", got)
	}
}
