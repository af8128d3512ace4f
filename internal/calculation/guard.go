package calculation

import (
	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/pkg/money"
	"github.com/shopspring/decimal"
)

// guard converts float results to decimals and records the first non-finite
// value it sees. A calculator that finishes with a tripped guard returns the
// error instead of the result.
type guard struct {
	op  string
	err error
}

func newGuard(op string) *guard {
	return &guard{op: op}
}

func (g *guard) finite(name string, v float64) bool {
	if money.IsFinite(v) {
		return true
	}
	if g.err == nil {
		g.err = domain.NewComputationError(g.op, "%s is not a finite number", name)
	}
	return false
}

func (g *guard) round(name string, v float64, places int32) decimal.Decimal {
	if !g.finite(name, v) {
		return decimal.Zero
	}
	return money.Round(v, places)
}

func (g *guard) cents(name string, v float64) decimal.Decimal {
	return g.round(name, v, 2)
}

func (g *guard) centsPtr(name string, v float64) *decimal.Decimal {
	d := g.cents(name, v)
	return &d
}

func (g *guard) roundPtr(name string, v float64, places int32) *decimal.Decimal {
	d := g.round(name, v, places)
	return &d
}
