package entity

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// progression is the happy path an order walks from checkout to the door.
var progression = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusDelivered,
}

func (s OrderStatus) String() string { return string(s) }

// ValidStatus reports whether s is a known lifecycle state. Unknown strings
// are rejected at the API boundary before they reach the database.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether from -> to follows the canonical flow: one
// step forward along the progression, or a cancel from any non-terminal
// state. Admin updates are not blocked by this; it backs the customer
// timeline and the warning log on unusual moves.
func CanTransition(from, to OrderStatus) bool {
	if !ValidStatus(from) || !ValidStatus(to) || from == to {
		return false
	}
	if from.IsTerminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return progressionIndex(to) == progressionIndex(from)+1
}

func progressionIndex(s OrderStatus) int {
	for i, p := range progression {
		if p == s {
			return i
		}
	}
	return -1
}

// StatusProgression returns the ordered happy-path statuses.
func StatusProgression() []OrderStatus {
	out := make([]OrderStatus, len(progression))
	copy(out, progression)
	return out
}

// StatusLabel is the display name shown on the storefront timeline.
func StatusLabel(s OrderStatus) string {
	switch s {
	case StatusPending:
		return "Order placed"
	case StatusConfirmed:
		return "Confirmed"
	case StatusPreparing:
		return "In the kitchen"
	case StatusReady:
		return "Ready for pickup"
	case StatusOutForDelivery:
		return "Out for delivery"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}
