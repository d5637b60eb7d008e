// Package pricing derives cart rates from catalog list prices.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Rate resolves the selling rate from MRP and a percentage discount,
// rounded to two places. A missing MRP prices the line at zero; a missing
// discount sells at MRP.
func Rate(mrp, discountPct *decimal.Decimal) decimal.Decimal {
	if mrp == nil {
		return decimal.Zero
	}
	if discountPct == nil {
		return mrp.Round(2)
	}
	off := mrp.Mul(*discountPct).Div(hundred)
	return mrp.Sub(off).Round(2)
}

// LineAmount is quantity times the locked-in rate. No further rounding:
// the rate is already at two places.
func LineAmount(qty int, rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(qty)))
}
