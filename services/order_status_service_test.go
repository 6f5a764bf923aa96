package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/notify"
)

type fakeOrderStore struct {
	mu       sync.Mutex
	orders   map[uint]*entity.Order
	setCalls int
}

func newFakeOrderStore(orders ...*entity.Order) *fakeOrderStore {
	f := &fakeOrderStore{orders: make(map[uint]*entity.Order)}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrderStore) GetOrder(orderID uint) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) SetStatus(orderID uint, to entity.OrderStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	o, ok := f.orders[orderID]
	if !ok {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (f *fakeOrderStore) statusOf(orderID uint) entity.OrderStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders[orderID].Status
}

type recordingNotifier struct {
	mu      sync.Mutex
	sent    []notify.StatusNotification
	failFor map[uint]bool
}

func (n *recordingNotifier) NotifyStatusChange(_ context.Context, msg notify.StatusNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[msg.OrderID] {
		return errors.New("mail gateway down")
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) Close() error { return nil }

func testOrder(id uint, status entity.OrderStatus) *entity.Order {
	o := &entity.Order{
		OrderNumber: "MK-20260815-TEST01",
		UserID:      7,
		Status:      status,
	}
	o.ID = id
	return o
}

func TestUpdateStatusNotifiesOnce(t *testing.T) {
	store := newFakeOrderStore(testOrder(1, entity.StatusPending))
	notifier := &recordingNotifier{}
	svc := NewOrderStatusService(store, notifier, nil)

	o, err := svc.UpdateStatus(context.Background(), 1, entity.StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if o.Status != entity.StatusConfirmed {
		t.Fatalf("returned status = %q, want confirmed", o.Status)
	}
	if got := store.statusOf(1); got != entity.StatusConfirmed {
		t.Fatalf("persisted status = %q, want confirmed", got)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(notifier.sent))
	}
	n := notifier.sent[0]
	if n.OldStatus != entity.StatusPending || n.NewStatus != entity.StatusConfirmed {
		t.Fatalf("notification carried %q to %q, want pending to confirmed", n.OldStatus, n.NewStatus)
	}
	if n.UserID != 7 {
		t.Fatalf("notification userId = %d, want 7", n.UserID)
	}
}

func TestUpdateStatusSameStatusIsSilent(t *testing.T) {
	store := newFakeOrderStore(testOrder(1, entity.StatusConfirmed))
	notifier := &recordingNotifier{}
	svc := NewOrderStatusService(store, notifier, nil)

	o, err := svc.UpdateStatus(context.Background(), 1, entity.StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if o.Status != entity.StatusConfirmed {
		t.Fatalf("status = %q, want confirmed", o.Status)
	}
	if store.setCalls != 0 {
		t.Fatalf("store written %d times for a no-op", store.setCalls)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("sent %d notifications for a no-op, want 0", len(notifier.sent))
	}
}

func TestUpdateStatusOffPathAppliesAndWarns(t *testing.T) {
	store := newFakeOrderStore(testOrder(1, entity.StatusPending))
	notifier := &recordingNotifier{}
	core, logs := observer.New(zap.WarnLevel)
	svc := NewOrderStatusService(store, notifier, zap.New(core))

	if _, err := svc.UpdateStatus(context.Background(), 1, entity.StatusDelivered); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got := store.statusOf(1); got != entity.StatusDelivered {
		t.Fatalf("persisted status = %q, want delivered", got)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(notifier.sent))
	}
	if logs.FilterMessage("status change off the canonical path").Len() != 1 {
		t.Fatal("expected a warning for the skipped steps")
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	store := newFakeOrderStore(testOrder(1, entity.StatusPending))
	notifier := &recordingNotifier{}
	svc := NewOrderStatusService(store, notifier, nil)

	if _, err := svc.UpdateStatus(context.Background(), 1, "shipped"); err == nil {
		t.Fatal("expected an error for an unknown status")
	}
	if store.setCalls != 0 {
		t.Fatal("store must not be written for an unknown status")
	}
	if len(notifier.sent) != 0 {
		t.Fatal("nothing should be sent for an unknown status")
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderStatusService(store, &recordingNotifier{}, nil)

	if _, err := svc.UpdateStatus(context.Background(), 99, entity.StatusConfirmed); err == nil {
		t.Fatal("expected an error for a missing order")
	}
}

func TestUpdateStatusNotifierFailureDoesNotRollBack(t *testing.T) {
	store := newFakeOrderStore(testOrder(1, entity.StatusPending))
	notifier := &recordingNotifier{failFor: map[uint]bool{1: true}}
	svc := NewOrderStatusService(store, notifier, nil)

	o, err := svc.UpdateStatus(context.Background(), 1, entity.StatusConfirmed)
	if err != nil {
		t.Fatalf("notifier failure must not fail the update: %v", err)
	}
	if o.Status != entity.StatusConfirmed {
		t.Fatalf("status = %q, want confirmed", o.Status)
	}
	if got := store.statusOf(1); got != entity.StatusConfirmed {
		t.Fatalf("persisted status = %q, want confirmed", got)
	}
}

func TestBulkUpdateIsolatesFailures(t *testing.T) {
	store := newFakeOrderStore(
		testOrder(1, entity.StatusPending),
		testOrder(2, entity.StatusPending),
		testOrder(3, entity.StatusPending),
	)
	notifier := &recordingNotifier{failFor: map[uint]bool{2: true}}
	svc := NewOrderStatusService(store, notifier, nil)

	results, err := svc.BulkUpdateStatus(context.Background(), []uint{1, 2, 3}, entity.StatusConfirmed)
	if err != nil {
		t.Fatalf("BulkUpdateStatus: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for _, res := range results {
		if !res.OK {
			t.Fatalf("order %d failed: %s", res.OrderID, res.Error)
		}
	}
	for id := uint(1); id <= 3; id++ {
		if got := store.statusOf(id); got != entity.StatusConfirmed {
			t.Fatalf("order %d status = %q, want confirmed", id, got)
		}
	}
	// Order 2's notification failed; the other two went out.
	if len(notifier.sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(notifier.sent))
	}
}

func TestBulkUpdateReportsMissingOrders(t *testing.T) {
	store := newFakeOrderStore(testOrder(1, entity.StatusPending))
	svc := NewOrderStatusService(store, &recordingNotifier{}, nil)

	results, err := svc.BulkUpdateStatus(context.Background(), []uint{1, 99}, entity.StatusConfirmed)
	if err != nil {
		t.Fatalf("BulkUpdateStatus: %v", err)
	}
	if !results[0].OK {
		t.Fatalf("order 1 should succeed, got %s", results[0].Error)
	}
	if results[1].OK {
		t.Fatal("order 99 should fail")
	}
	if got := store.statusOf(1); got != entity.StatusConfirmed {
		t.Fatalf("order 1 status = %q, want confirmed", got)
	}
}
