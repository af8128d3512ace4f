package calculation

import (
	"fmt"
	"math"
)

// WithdrawalPlan is the state a withdrawal strategy sizes its first-year
// withdrawal from. Amounts are in dollars at retirement.
type WithdrawalPlan struct {
	Balance           float64
	RealReturn        float64 // annual, as a fraction
	AnnualNeed        float64 // income the savings must provide
	RetirementAge     int
	YearsInRetirement int
}

// WithdrawalStrategy defines a rule for drawing down retirement savings.
type WithdrawalStrategy interface {
	AnnualWithdrawal(plan WithdrawalPlan) float64
	Method() string
	Description(plan WithdrawalPlan) string
}

// FixedPercentageRule withdraws a fixed share of the starting balance.
type FixedPercentageRule struct {
	Percent float64
	Label   string
	Summary string
}

func (r FixedPercentageRule) AnnualWithdrawal(plan WithdrawalPlan) float64 {
	return plan.Balance * r.Percent / 100
}

func (r FixedPercentageRule) Method() string { return r.Label }

func (r FixedPercentageRule) Description(WithdrawalPlan) string { return r.Summary }

// FixedPeriodDepletion spends the balance down to zero over the years in
// retirement while the remainder keeps earning the real return.
type FixedPeriodDepletion struct{}

func (FixedPeriodDepletion) AnnualWithdrawal(plan WithdrawalPlan) float64 {
	years := float64(plan.YearsInRetirement)
	if years <= 0 {
		return plan.Balance
	}
	if plan.RealReturn == 0 {
		return plan.Balance / years
	}
	return plan.Balance * plan.RealReturn / (1 - math.Pow(1+plan.RealReturn, -years))
}

func (FixedPeriodDepletion) Method() string { return "Fixed-Period Depletion" }

func (FixedPeriodDepletion) Description(plan WithdrawalPlan) string {
	return fmt.Sprintf("Spend the entire balance evenly over %s of retirement", pluralYears(plan.YearsInRetirement))
}

// IncomeMatching withdraws exactly the income not covered by social security
// and pensions.
type IncomeMatching struct{}

func (IncomeMatching) AnnualWithdrawal(plan WithdrawalPlan) float64 {
	return math.Max(plan.AnnualNeed, 0)
}

func (IncomeMatching) Method() string { return "Income Matching" }

func (IncomeMatching) Description(WithdrawalPlan) string {
	return "Withdraw only what is needed to reach your desired income after social security and pensions"
}

// MinimumDistribution sizes the withdrawal like a required minimum
// distribution: balance divided by the uniform lifetime divisor for the
// retirement age.
type MinimumDistribution struct{}

func (MinimumDistribution) AnnualWithdrawal(plan WithdrawalPlan) float64 {
	return plan.Balance / UniformLifetimeDivisor(plan.RetirementAge)
}

func (MinimumDistribution) Method() string { return "Required Minimum Distribution" }

func (MinimumDistribution) Description(plan WithdrawalPlan) string {
	age := plan.RetirementAge
	if age < firstDistributionAge {
		age = firstDistributionAge
	}
	return fmt.Sprintf("Withdraw the balance divided by the IRS uniform lifetime divisor for age %d (%.1f)",
		age, UniformLifetimeDivisor(plan.RetirementAge))
}

const firstDistributionAge = 72

// uniformLifetimeTable holds IRS uniform lifetime divisors for ages 72..100.
var uniformLifetimeTable = []float64{
	27.4, 26.5, 25.5, 24.6, 23.7, 22.9, 22.0, 21.1, 20.2, 19.4,
	18.5, 17.7, 16.8, 16.0, 15.2, 14.4, 13.7, 12.9, 12.2, 11.5,
	10.8, 10.1, 9.5, 8.9, 8.4, 7.8, 7.3, 6.8, 6.4,
}

// UniformLifetimeDivisor returns the distribution period for an age. Ages
// before the table use its first entry and ages past it use the last.
func UniformLifetimeDivisor(age int) float64 {
	idx := age - firstDistributionAge
	if idx < 0 {
		idx = 0
	}
	if idx >= len(uniformLifetimeTable) {
		idx = len(uniformLifetimeTable) - 1
	}
	return uniformLifetimeTable[idx]
}

// DefaultWithdrawalStrategies lists the reported strategies. The 4% rule
// comes first because the savings gap is measured against it.
func DefaultWithdrawalStrategies() []WithdrawalStrategy {
	return []WithdrawalStrategy{
		FixedPercentageRule{
			Percent: SafeWithdrawalRate * 100,
			Label:   "Standard (4% Rule)",
			Summary: "Traditional retirement withdrawal rate, typically sustainable for 30 years",
		},
		FixedPercentageRule{
			Percent: 3,
			Label:   "Conservative (3% Rule)",
			Summary: "Very safe withdrawal rate, designed to preserve capital for 30+ years",
		},
		FixedPercentageRule{
			Percent: 5,
			Label:   "Aggressive (5% Rule)",
			Summary: "Higher withdrawal rate, may require portfolio adjustments in market downturns",
		},
		FixedPeriodDepletion{},
		IncomeMatching{},
		MinimumDistribution{},
	}
}

// YearsSustainable returns how long a level annual withdrawal lasts when the
// balance earns growth each year. The second result is false when the
// withdrawal never exhausts the balance.
func YearsSustainable(balance, withdrawal, growth float64) (float64, bool) {
	if withdrawal <= 0 {
		return 0, false
	}
	if balance <= 0 {
		return 0, true
	}
	if growth == 0 {
		return balance / withdrawal, true
	}
	earnings := balance * growth
	if withdrawal <= earnings {
		return 0, false
	}
	return math.Log(withdrawal/(withdrawal-earnings)) / math.Log(1+growth), true
}
