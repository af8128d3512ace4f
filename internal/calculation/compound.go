package calculation

import (
	"fmt"
	"math"

	"github.com/rpgo/finplan/internal/domain"
)

// growthModel captures the after-tax compounding behaviour of an account.
type growthModel struct {
	rate       float64 // after-tax nominal annual rate, as a fraction
	periods    float64 // compounding periods per year; unused when continuous
	continuous bool
}

func newGrowthModel(in domain.CompoundInterestInput) growthModel {
	periods, _ := in.CompoundingFrequency.PeriodsPerYear()
	return growthModel{
		rate:       in.InterestRate / 100 * (1 - in.TaxRate/100),
		periods:    periods,
		continuous: in.CompoundingFrequency.Continuous(),
	}
}

// factor returns the growth of one unit over the given fraction of a year.
func (m growthModel) factor(years float64) float64 {
	if m.continuous {
		return math.Exp(m.rate * years)
	}
	return math.Pow(1+m.rate/m.periods, m.periods*years)
}

// monthlyRate is the rate that compounds monthly to the same annual growth.
func (m growthModel) monthlyRate() float64 {
	return m.factor(1.0/12) - 1
}

// effectiveAnnualRate is the after-tax annual yield.
func (m growthModel) effectiveAnnualRate() float64 {
	return m.factor(1) - 1
}

// depositGrowth is the value at month k of k end-of-month deposits of one unit.
func depositGrowth(monthlyRate float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return float64(months)
	}
	return (math.Pow(1+monthlyRate, float64(months)) - 1) / monthlyRate
}

type compoundYear struct {
	year                int
	balance             float64
	contributions       float64
	monthlyContribution float64
}

type compoundProjection struct {
	years         []compoundYear
	final         float64
	contributions float64
}

// projectCompound grows the principal year by year and adds monthly deposits
// at the end of each month. A fractional final year compounds for its share of
// the year and receives the nearest whole number of deposits.
func projectCompound(in domain.CompoundInterestInput) compoundProjection {
	model := newGrowthModel(in)
	monthly := model.monthlyRate()
	increase := in.ContributionIncreaseRate / 100

	whole := int(math.Floor(in.TimePeriod))
	frac := in.TimePeriod - float64(whole)

	out := compoundProjection{years: make([]compoundYear, 0, whole+1)}
	balance := in.Principal
	contributed := in.Principal

	step := func(year int, span float64, months int) {
		deposit := in.MonthlyContribution * math.Pow(1+increase, float64(year-1))
		balance = balance*model.factor(span) + deposit*depositGrowth(monthly, months)
		contributed += deposit * float64(months)
		out.years = append(out.years, compoundYear{
			year:                year,
			balance:             balance,
			contributions:       contributed,
			monthlyContribution: deposit,
		})
	}

	for y := 1; y <= whole; y++ {
		step(y, 1, 12)
	}
	if frac > 1e-9 {
		step(whole+1, frac, int(math.Round(frac*12)))
	}

	out.final = balance
	out.contributions = contributed
	return out
}

type compoundFacts struct {
	in       domain.CompoundInterestInput
	realRate float64 // percent
}

var compoundRules = []rule[compoundFacts, domain.Insight]{
	{
		name: "negative_real_return",
		when: func(f compoundFacts) bool { return f.realRate < 0 },
		build: func(f compoundFacts) domain.Insight {
			return domain.Insight{
				Type:  domain.InsightWarning,
				Title: "Negative Real Return",
				Message: fmt.Sprintf("After inflation (%.1f%%) and taxes (%.1f%%), your real return is %.1f%%. Consider higher-yield investments.",
					f.in.InflationRate, f.in.TaxRate, f.realRate),
			}
		},
	},
	{
		name: "low_real_return",
		when: func(f compoundFacts) bool { return f.realRate >= 0 && f.realRate < LowRealReturn },
		build: func(f compoundFacts) domain.Insight {
			return domain.Insight{
				Type:    domain.InsightInfo,
				Title:   "Low Real Return",
				Message: fmt.Sprintf("Your real return after inflation and taxes is %.1f%%. Consider more aggressive investments for better growth.", f.realRate),
			}
		},
	},
	{
		name: "good_real_return",
		when: func(f compoundFacts) bool { return f.realRate >= LowRealReturn },
		build: func(f compoundFacts) domain.Insight {
			return domain.Insight{
				Type:    domain.InsightSuccess,
				Title:   "Good Real Return",
				Message: fmt.Sprintf("Your real return after inflation and taxes is %.1f%%. This should provide solid long-term growth.", f.realRate),
			}
		},
	},
	{
		name: "high_inflation",
		when: func(f compoundFacts) bool { return f.in.InflationRate > HighInflation },
		build: func(f compoundFacts) domain.Insight {
			return domain.Insight{
				Type:    domain.InsightWarning,
				Title:   "High Inflation Impact",
				Message: fmt.Sprintf("High inflation (%.1f%%) significantly reduces your purchasing power. Consider inflation-protected investments.", f.in.InflationRate),
			}
		},
	},
	{
		name: "high_tax",
		when: func(f compoundFacts) bool { return f.in.TaxRate > HighTaxRate },
		build: func(f compoundFacts) domain.Insight {
			return domain.Insight{
				Type:    domain.InsightInfo,
				Title:   "High Tax Impact",
				Message: fmt.Sprintf("High taxes (%.1f%%) reduce your returns. Consider tax-advantaged accounts like IRAs or 401(k)s.", f.in.TaxRate),
			}
		},
	},
	{
		name: "increasing_contributions",
		when: func(f compoundFacts) bool { return f.in.ContributionIncreaseRate > 0 },
		build: func(f compoundFacts) domain.Insight {
			return domain.Insight{
				Type:    domain.InsightSuccess,
				Title:   "Increasing Contributions",
				Message: fmt.Sprintf("Great strategy! Increasing contributions by %.1f%% annually will significantly boost your final balance.", f.in.ContributionIncreaseRate),
			}
		},
	},
}

type comparisonVariant struct {
	name        string
	description string
	applies     func(domain.CompoundInterestInput) bool
	alter       func(domain.CompoundInterestInput) domain.CompoundInterestInput
}

var comparisonVariants = []comparisonVariant{
	{
		name:        "No Monthly Contributions",
		description: "Principal only, with no monthly deposits",
		applies:     func(domain.CompoundInterestInput) bool { return true },
		alter: func(in domain.CompoundInterestInput) domain.CompoundInterestInput {
			in.MonthlyContribution = 0
			in.ContributionIncreaseRate = 0
			return in
		},
	},
	{
		name:        "Higher Rate (+2%)",
		description: "Same plan with an interest rate two points higher",
		applies:     func(in domain.CompoundInterestInput) bool { return in.InterestRate+ComparisonRateStep <= 100 },
		alter: func(in domain.CompoundInterestInput) domain.CompoundInterestInput {
			in.InterestRate += ComparisonRateStep
			return in
		},
	},
	{
		name:        "Lower Rate (-2%)",
		description: "Same plan with an interest rate two points lower",
		applies:     func(in domain.CompoundInterestInput) bool { return in.InterestRate > 0 },
		alter: func(in domain.CompoundInterestInput) domain.CompoundInterestInput {
			in.InterestRate = math.Max(in.InterestRate-ComparisonRateStep, 0)
			return in
		},
	},
	{
		name:        "Tax-Advantaged Account",
		description: "Same plan with interest sheltered from tax",
		applies:     func(in domain.CompoundInterestInput) bool { return in.TaxRate > 0 },
		alter: func(in domain.CompoundInterestInput) domain.CompoundInterestInput {
			in.TaxRate = 0
			return in
		},
	},
}

// CalculateCompoundInterest projects an account balance with periodic
// compounding, escalating monthly deposits, tax on interest and inflation.
func CalculateCompoundInterest(in domain.CompoundInterestInput) (*domain.CompoundInterestResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.CompoundingFrequency = in.CompoundingFrequency.Normalize()

	g := newGuard("compound_interest")
	projection := projectCompound(in)
	model := newGrowthModel(in)

	inflation := in.InflationRate / 100
	deflator := math.Pow(1+inflation, in.TimePeriod)
	effective := model.effectiveAnnualRate()
	realRate := (1+effective)/(1+inflation) - 1
	interest := projection.final - projection.contributions
	adjustedBalance := projection.final / deflator

	rows := make([]domain.YearlyBalance, 0, len(projection.years))
	for _, y := range projection.years {
		rows = append(rows, domain.YearlyBalance{
			Year:                y.year,
			Balance:             g.cents("balance", y.balance),
			Contributions:       g.cents("contributions", y.contributions),
			Interest:            g.cents("interest", y.balance-y.contributions),
			MonthlyContribution: g.cents("monthly_contribution", y.monthlyContribution),
		})
	}

	finalAmount := g.cents("final_amount", projection.final)
	scenarios := make([]domain.ComparisonScenario, 0, len(comparisonVariants))
	for _, v := range comparisonVariants {
		if !v.applies(in) {
			continue
		}
		alt := projectCompound(v.alter(in))
		altFinal := g.cents("final_balance", alt.final)
		scenarios = append(scenarios, domain.ComparisonScenario{
			Name:         v.name,
			FinalBalance: altFinal,
			Description:  v.description,
			Difference:   altFinal.Sub(finalAmount),
		})
	}

	result := &domain.CompoundInterestResult{
		Inputs:                         in,
		FinalAmount:                    finalAmount,
		TotalContributions:             g.cents("total_contributions", projection.contributions),
		InterestEarned:                 g.cents("interest_earned", interest),
		EffectiveRate:                  g.round("effective_rate", effective*100, 2),
		RealRate:                       g.round("real_rate", realRate*100, 2),
		InflationAdjustedBalance:       g.cents("inflation_adjusted_balance", adjustedBalance),
		InflationAdjustedContributions: g.cents("inflation_adjusted_contributions", projection.contributions/deflator),
		InflationAdjustedInterest:      g.cents("inflation_adjusted_interest", interest/deflator),
		PurchasingPowerLoss:            g.cents("purchasing_power_loss", projection.final-adjustedBalance),
		YearlyProjections:              rows,
		Insights:                       evaluate(compoundRules, compoundFacts{in: in, realRate: realRate * 100}),
		ComparisonScenarios:            scenarios,
	}
	if g.err != nil {
		return nil, g.err
	}
	return result, nil
}
