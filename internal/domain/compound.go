package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CompoundingFrequency names how often interest is credited per year.
type CompoundingFrequency string

const (
	CompoundAnnually     CompoundingFrequency = "annually"
	CompoundSemiannually CompoundingFrequency = "semiannually"
	CompoundQuarterly    CompoundingFrequency = "quarterly"
	CompoundMonthly      CompoundingFrequency = "monthly"
	CompoundWeekly       CompoundingFrequency = "weekly"
	CompoundDaily        CompoundingFrequency = "daily"
	CompoundContinuously CompoundingFrequency = "continuously"
)

var periodsPerYear = map[CompoundingFrequency]float64{
	CompoundAnnually:     1,
	CompoundSemiannually: 2,
	CompoundQuarterly:    4,
	CompoundMonthly:      12,
	CompoundWeekly:       52,
	CompoundDaily:        365,
}

// Normalize lower-cases and trims the frequency name.
func (f CompoundingFrequency) Normalize() CompoundingFrequency {
	return CompoundingFrequency(strings.ToLower(strings.TrimSpace(string(f))))
}

// Continuous reports whether f is continuous compounding.
func (f CompoundingFrequency) Continuous() bool {
	return f.Normalize() == CompoundContinuously
}

// PeriodsPerYear returns the number of compounding periods per year. The
// second result is false for unknown names; continuous compounding reports
// zero periods.
func (f CompoundingFrequency) PeriodsPerYear() (float64, bool) {
	n := f.Normalize()
	if n == CompoundContinuously {
		return 0, true
	}
	p, ok := periodsPerYear[n]
	return p, ok
}

// CompoundInterestInput describes a savings account projection.
type CompoundInterestInput struct {
	Principal                float64              `json:"principal" yaml:"principal"`
	MonthlyContribution      float64              `json:"monthly_contribution" yaml:"monthly_contribution"`
	InterestRate             float64              `json:"interest_rate" yaml:"interest_rate"` // annual %
	CompoundingFrequency     CompoundingFrequency `json:"compounding_frequency" yaml:"compounding_frequency"`
	TimePeriod               float64              `json:"time_period" yaml:"time_period"` // years
	TaxRate                  float64              `json:"tax_rate" yaml:"tax_rate"`
	InflationRate            float64              `json:"inflation_rate" yaml:"inflation_rate"`
	ContributionIncreaseRate float64              `json:"contribution_increase_rate" yaml:"contribution_increase_rate"`
}

// DefaultCompoundInterestInput returns the values assumed for omitted fields.
func DefaultCompoundInterestInput() CompoundInterestInput {
	return CompoundInterestInput{CompoundingFrequency: CompoundMonthly}
}

// MaxTimePeriod bounds compound projections in years.
const MaxTimePeriod = 100

// Validate checks the compound interest input ranges.
func (in CompoundInterestInput) Validate() error {
	if err := firstError(
		checkAmount("principal", in.Principal),
		checkAmount("monthly_contribution", in.MonthlyContribution),
		checkPercent("interest_rate", in.InterestRate),
	); err != nil {
		return err
	}
	if _, ok := in.CompoundingFrequency.PeriodsPerYear(); !ok {
		return NewValidationError("compounding_frequency",
			"unsupported value %q; use annually, semiannually, quarterly, monthly, weekly, daily or continuously",
			string(in.CompoundingFrequency))
	}
	if err := checkFinite("time_period", in.TimePeriod); err != nil {
		return err
	}
	if in.TimePeriod <= 0 {
		return NewValidationError("time_period", "must be positive")
	}
	if in.TimePeriod > MaxTimePeriod {
		return NewValidationError("time_period", "cannot exceed %d years", MaxTimePeriod)
	}
	return firstError(
		checkPercent("tax_rate", in.TaxRate),
		checkPercent("inflation_rate", in.InflationRate),
		checkPercent("contribution_increase_rate", in.ContributionIncreaseRate),
	)
}

// YearlyBalance is one row of a compound projection. Contributions and
// Interest are cumulative.
type YearlyBalance struct {
	Year                int             `json:"year"`
	Balance             decimal.Decimal `json:"balance"`
	Contributions       decimal.Decimal `json:"contributions"`
	Interest            decimal.Decimal `json:"interest"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
}

// ComparisonScenario is the same projection rerun with altered parameters.
type ComparisonScenario struct {
	Name         string          `json:"name"`
	FinalBalance decimal.Decimal `json:"final_balance"`
	Description  string          `json:"description"`
	Difference   decimal.Decimal `json:"difference"`
}

// CompoundInterestResult is the full compound growth analysis. Rates are
// percentages.
type CompoundInterestResult struct {
	Inputs                         CompoundInterestInput `json:"inputs"`
	FinalAmount                    decimal.Decimal       `json:"final_amount"`
	TotalContributions             decimal.Decimal       `json:"total_contributions"`
	InterestEarned                 decimal.Decimal       `json:"interest_earned"`
	EffectiveRate                  decimal.Decimal       `json:"effective_rate"`
	RealRate                       decimal.Decimal       `json:"real_rate"`
	InflationAdjustedBalance       decimal.Decimal       `json:"inflation_adjusted_balance"`
	InflationAdjustedContributions decimal.Decimal       `json:"inflation_adjusted_contributions"`
	InflationAdjustedInterest      decimal.Decimal       `json:"inflation_adjusted_interest"`
	PurchasingPowerLoss            decimal.Decimal       `json:"purchasing_power_loss"`
	YearlyProjections              []YearlyBalance       `json:"yearly_projections"`
	Insights                       []Insight             `json:"insights"`
	ComparisonScenarios            []ComparisonScenario  `json:"comparison_scenarios"`
}
