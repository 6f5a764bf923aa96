package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes notifications to the log. It stands in when no broker
// is configured, so a development setup needs nothing but the binary.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyStatusChange(_ context.Context, msg StatusNotification) error {
	n.log.Info("order status changed",
		zap.Uint("orderId", msg.OrderID),
		zap.String("orderNumber", msg.OrderNumber),
		zap.Uint("userId", msg.UserID),
		zap.String("oldStatus", msg.OldStatus.String()),
		zap.String("newStatus", msg.NewStatus.String()))
	return nil
}

func (n *LogNotifier) Close() error { return nil }
