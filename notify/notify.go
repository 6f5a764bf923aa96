// Package notify broadcasts order lifecycle events to interested
// consumers (email, SMS, push workers).
package notify

import (
	"context"
	"time"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
)

// StatusNotification is the message published when an order moves to a new
// status. OldStatus is what the order held immediately before the change.
type StatusNotification struct {
	OrderID     uint               `json:"orderId"`
	OrderNumber string             `json:"orderNumber"`
	UserID      uint               `json:"userId"`
	OldStatus   entity.OrderStatus `json:"oldStatus"`
	NewStatus   entity.OrderStatus `json:"newStatus"`
	ChangedAt   time.Time          `json:"changedAt"`
}

// Notifier delivers status notifications. Delivery is best-effort: the
// status change is already persisted by the time a notifier runs, and a
// failed delivery never rolls it back.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, n StatusNotification) error
	Close() error
}
