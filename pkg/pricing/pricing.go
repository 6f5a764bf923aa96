// Package pricing computes cart and order totals. Everything is integer
// cents; the functions are pure and never touch the database.
package pricing

const (
	// HSTPercent is the harmonized sales tax applied to the subtotal.
	HSTPercent = 13
	// DeliveryFeeCents is the flat delivery charge on any non-empty order.
	DeliveryFeeCents = 599
)

// Line is the minimal view of a cart line the calculator needs.
type Line struct {
	UnitPrice int64
	Quantity  int
}

// Totals are the computed checkout amounts, all in cents.
type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	Tax         int64 `json:"tax"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`
}

func LineTotal(unitPrice int64, qty int) int64 {
	return unitPrice * int64(qty)
}

func Subtotal(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += LineTotal(l.UnitPrice, l.Quantity)
	}
	return sum
}

// Tax is HSTPercent of the subtotal, rounded half-up to the cent.
func Tax(subtotal int64) int64 {
	return (subtotal*HSTPercent + 50) / 100
}

// DeliveryFee is flat whenever there is anything to deliver.
func DeliveryFee(subtotal int64) int64 {
	if subtotal > 0 {
		return DeliveryFeeCents
	}
	return 0
}

func Calculate(lines []Line) Totals {
	sub := Subtotal(lines)
	tax := Tax(sub)
	fee := DeliveryFee(sub)
	return Totals{
		Subtotal:    sub,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       sub + tax + fee,
	}
}
