// Package money converts float projections into rounded decimal amounts.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Cents converts an amount to a decimal rounded to cents.
func Cents(v float64) decimal.Decimal {
	return Round(v, 2)
}

// Round converts v to a decimal rounded to the given number of places.
// Callers must pass a finite value.
func Round(v float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(places)
}

// CentsPtr is Cents returning a pointer, for optional result fields.
func CentsPtr(v float64) *decimal.Decimal {
	d := Cents(v)
	return &d
}

// Sum adds the given amounts.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Share returns part as a percentage of total rounded to two places. A zero
// total yields zero.
func Share(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(total).Round(2)
}

// Float returns the float64 value of d.
func Float(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
