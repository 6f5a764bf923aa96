package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/notify"
)

// orderStatusStore is the slice of the order repository the status service
// touches; tests swap in a fake.
type orderStatusStore interface {
	GetOrder(orderID uint) (*entity.Order, error)
	SetStatus(orderID uint, to entity.OrderStatus) (bool, error)
}

// OrderStatusService applies back-office status changes. Admins may set
// any valid status: staff correct mistakes and skip steps in practice, so
// a change off the canonical path is logged, not rejected. Customers are
// notified exactly once per actual change.
type OrderStatusService struct {
	store    orderStatusStore
	notifier notify.Notifier
	log      *zap.Logger
}

func NewOrderStatusService(store orderStatusStore, notifier notify.Notifier, log *zap.Logger) *OrderStatusService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderStatusService{store: store, notifier: notifier, log: log}
}

// UpdateStatus moves one order to the given status. Setting the status an
// order already holds is a no-op and sends nothing. Notification failures
// never roll back the change.
func (s *OrderStatusService) UpdateStatus(ctx context.Context, orderID uint, to entity.OrderStatus) (*entity.Order, error) {
	if !entity.ValidStatus(to) {
		return nil, errors.New("unknown status")
	}

	o, err := s.store.GetOrder(orderID)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if o.Status == to {
		return o, nil
	}

	if !entity.CanTransition(o.Status, to) {
		s.log.Warn("status change off the canonical path",
			zap.String("orderNumber", o.OrderNumber),
			zap.String("from", o.Status.String()),
			zap.String("to", to.String()))
	}

	ok, err := s.store.SetStatus(orderID, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("order not found")
	}

	if s.notifier != nil {
		n := notify.StatusNotification{
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			UserID:      o.UserID,
			OldStatus:   o.Status,
			NewStatus:   to,
			ChangedAt:   time.Now(),
		}
		if err := s.notifier.NotifyStatusChange(ctx, n); err != nil {
			s.log.Warn("status notification failed",
				zap.String("orderNumber", o.OrderNumber),
				zap.Error(err))
		}
	}

	o.Status = to
	return o, nil
}

// ----- Bulk updates -----

type BulkStatusResult struct {
	OrderID uint   `json:"orderId"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

// BulkUpdateStatus applies the status to every order independently: one
// failing order never blocks the rest.
func (s *OrderStatusService) BulkUpdateStatus(ctx context.Context, orderIDs []uint, to entity.OrderStatus) ([]BulkStatusResult, error) {
	if !entity.ValidStatus(to) {
		return nil, errors.New("unknown status")
	}

	results := make([]BulkStatusResult, 0, len(orderIDs))
	for _, id := range orderIDs {
		_, err := s.UpdateStatus(ctx, id, to)
		res := BulkStatusResult{OrderID: id, OK: err == nil}
		if err != nil {
			res.Error = err.Error()
		}
		results = append(results, res)
	}
	return results, nil
}
