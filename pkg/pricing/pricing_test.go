package pricing

import (
	"testing"
)

func TestCalculateEmpty(t *testing.T) {
	got := Calculate(nil)
	if got != (Totals{}) {
		t.Fatalf("empty cart should yield all-zero totals, got %+v", got)
	}
	got = Calculate([]Line{})
	if got != (Totals{}) {
		t.Fatalf("empty slice should yield all-zero totals, got %+v", got)
	}
}

func TestSubtotalSumsLineTotals(t *testing.T) {
	lines := []Line{
		{UnitPrice: 1000, Quantity: 2},
		{UnitPrice: 1500, Quantity: 1},
		{UnitPrice: 325, Quantity: 4},
	}
	want := int64(1000*2 + 1500*1 + 325*4)
	if got := Subtotal(lines); got != want {
		t.Fatalf("Subtotal = %d, want %d", got, want)
	}
}

func TestTaxRounding(t *testing.T) {
	cases := []struct {
		subtotal int64
		want     int64
	}{
		{0, 0},
		{1, 0},     // 0.13 cents rounds down
		{4, 1},     // 0.52 cents rounds up
		{50, 7},    // 6.5 cents rounds half-up
		{100, 13},  // exact
		{999, 130}, // 129.87
		{3500, 455},
	}
	for _, tc := range cases {
		if got := Tax(tc.subtotal); got != tc.want {
			t.Errorf("Tax(%d) = %d, want %d", tc.subtotal, got, tc.want)
		}
	}
}

func TestDeliveryFee(t *testing.T) {
	if got := DeliveryFee(0); got != 0 {
		t.Errorf("DeliveryFee(0) = %d, want 0", got)
	}
	if got := DeliveryFee(1); got != DeliveryFeeCents {
		t.Errorf("DeliveryFee(1) = %d, want %d", got, DeliveryFeeCents)
	}
	if got := DeliveryFee(125000); got != DeliveryFeeCents {
		t.Errorf("DeliveryFee(125000) = %d, want %d", got, DeliveryFeeCents)
	}
}

func TestCalculateScenario(t *testing.T) {
	// item A: 10.00 x2, item B: 15.00 x1
	a := Line{UnitPrice: 1000, Quantity: 2}
	b := Line{UnitPrice: 1500, Quantity: 1}

	got := Calculate([]Line{a})
	if got.Subtotal != 2000 {
		t.Fatalf("subtotal after A = %d, want 2000", got.Subtotal)
	}

	got = Calculate([]Line{a, b})
	want := Totals{Subtotal: 3500, Tax: 455, DeliveryFee: 599, Total: 4554}
	if got != want {
		t.Fatalf("totals after A+B = %+v, want %+v", got, want)
	}

	got = Calculate([]Line{b})
	if got.Subtotal != 1500 {
		t.Fatalf("subtotal after removing A = %d, want 1500", got.Subtotal)
	}
}

func TestTotalIsExactSum(t *testing.T) {
	for _, lines := range [][]Line{
		nil,
		{{UnitPrice: 799, Quantity: 1}},
		{{UnitPrice: 1299, Quantity: 3}, {UnitPrice: 99, Quantity: 7}},
	} {
		tot := Calculate(lines)
		if tot.Total != tot.Subtotal+tot.Tax+tot.DeliveryFee {
			t.Errorf("total %d != subtotal %d + tax %d + fee %d",
				tot.Total, tot.Subtotal, tot.Tax, tot.DeliveryFee)
		}
	}
}
