package calculation

import (
	"context"
	"time"

	"github.com/rpgo/finplan/internal/domain"
)

// CalculationEngine runs the projection calculators. It holds no state
// between calls; identical inputs always produce identical results.
type CalculationEngine struct {
	Debug  bool // log inputs and summary figures at debug level
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// run wraps a calculator with cancellation and logging.
func run[I any, R any](ctx context.Context, ce *CalculationEngine, name string, in I, calc func(I) (*R, error)) (*R, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := ce.logger()
	if ce.Debug {
		log.Debugf("%s input: %+v", name, in)
	}

	start := time.Now()
	result, err := calc(in)
	if err != nil {
		if domain.IsValidation(err) {
			log.Infof("%s rejected: %v", name, err)
		} else {
			log.Errorf("%s failed: %v", name, err)
		}
		return nil, err
	}
	log.Debugf("%s calculated in %s", name, time.Since(start))
	return result, nil
}

// Mortgage computes a mortgage analysis.
func (ce *CalculationEngine) Mortgage(ctx context.Context, in domain.MortgageInput) (*domain.MortgageResult, error) {
	return run(ctx, ce, "mortgage", in, CalculateMortgage)
}

// CompoundInterest computes a compound growth projection.
func (ce *CalculationEngine) CompoundInterest(ctx context.Context, in domain.CompoundInterestInput) (*domain.CompoundInterestResult, error) {
	return run(ctx, ce, "compound_interest", in, CalculateCompoundInterest)
}

// Retirement computes a retirement readiness analysis.
func (ce *CalculationEngine) Retirement(ctx context.Context, in domain.RetirementInput) (*domain.RetirementResult, error) {
	return run(ctx, ce, "retirement", in, CalculateRetirement)
}

// NetWorth aggregates a balance sheet.
func (ce *CalculationEngine) NetWorth(ctx context.Context, in domain.NetWorthInput) (*domain.NetWorthResult, error) {
	return run(ctx, ce, "net_worth", in, CalculateNetWorth)
}
