package invoice

import (
	"math"

	"tillfront/internal/model"
)

// Totals is the derived money view of a bill. All fields are kept at
// full precision; rounding happens once, at render time, via Round2.
// Accumulating pre-rounded values would drift across long bills.
type Totals struct {
	Subtotal       float64
	DiscountAmount float64
	FinalTotal     float64

	// DisplayTotal is what gets printed: the server's total_amount when
	// it is present and parsable, the recomputed FinalTotal otherwise.
	// The two are never reconciled; a mismatch is not an error here.
	DisplayTotal float64

	// ServerTotalUsed reports which side DisplayTotal came from.
	ServerTotalUsed bool
}

// Compute derives Totals from a bill. Malformed line values coerce to 0,
// a missing discount is 0, and a discount above 100 is not clamped, so a
// negative FinalTotal is possible and preserved.
func Compute(b model.Bill) Totals {
	var subtotal float64
	for _, item := range b.BillItems {
		subtotal += model.ParsePrice(item.TotalPrice)
	}
	discountPct := model.ParsePercent(b.DiscountPercentage)
	discountAmount := subtotal * (discountPct / 100)
	finalTotal := subtotal - discountAmount

	t := Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		FinalTotal:     finalTotal,
		DisplayTotal:   finalTotal,
	}
	if serverTotal, ok := model.ParsePriceOK(b.TotalAmount); ok {
		t.DisplayTotal = serverTotal
		t.ServerTotalUsed = true
	}
	return t
}

// Round2 rounds to exactly two decimal places. Applied only at the
// display boundary.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
