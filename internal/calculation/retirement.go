package calculation

import (
	"fmt"
	"math"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/pkg/money"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// projectSavings returns the year-end balance for each year of saving. Each
// year the balance grows at rate and then receives twelve monthly deposits.
func projectSavings(savings, monthly, rate float64, years int) []float64 {
	balances := make([]float64, 0, years)
	balance := savings
	for y := 0; y < years; y++ {
		balance = balance*(1+rate) + monthly*12
		balances = append(balances, balance)
	}
	return balances
}

// futureValue is the balance after the given number of years of saving.
func futureValue(savings, monthly, rate float64, years int) float64 {
	balance := savings
	for y := 0; y < years; y++ {
		balance = balance*(1+rate) + monthly*12
	}
	return balance
}

// contributionFactor is the future value of one dollar deposited monthly for
// the given number of years, consistent with projectSavings.
func contributionFactor(rate float64, years int) float64 {
	if rate == 0 {
		return 12 * float64(years)
	}
	return 12 * (math.Pow(1+rate, float64(years)) - 1) / rate
}

// retirementPlan holds the intermediate figures shared by the scenario,
// readiness and recommendation steps.
type retirementPlan struct {
	in                domain.RetirementInput
	rate              float64
	inflation         float64
	yearsToRetirement int
	yearsInRetirement int
	inflationFactor   float64
	projected         float64
	otherIncome       float64 // annual social security and pension at retirement
	goal              float64 // desired income at retirement
	need              float64 // income savings must provide, never negative
	requiredSavings   float64
	gap               float64
}

func newRetirementPlan(in domain.RetirementInput) retirementPlan {
	p := retirementPlan{
		in:                in,
		rate:              in.ExpectedReturn / 100,
		inflation:         in.InflationRate / 100,
		yearsToRetirement: in.RetirementAge - in.CurrentAge,
		yearsInRetirement: in.LifeExpectancy - in.RetirementAge,
	}
	p.inflationFactor = math.Pow(1+p.inflation, float64(p.yearsToRetirement))
	p.projected = futureValue(in.CurrentSavings, in.MonthlyContribution, p.rate, p.yearsToRetirement)
	p.otherIncome = (in.SocialSecurityIncome + in.PensionIncome) * 12 * p.inflationFactor
	p.goal = in.DesiredRetirementIncome * p.inflationFactor
	p.need = incomeNeed(in, p.inflationFactor)
	p.requiredSavings = p.need / SafeWithdrawalRate
	p.gap = math.Max(0, p.need-SafeWithdrawalRate*p.projected)
	return p
}

// incomeNeed is the desired income not covered by social security and
// pensions, inflated by factor. The subtraction happens before inflating so a
// goal covered by other income always yields zero.
func incomeNeed(in domain.RetirementInput, factor float64) float64 {
	uncovered := in.DesiredRetirementIncome - (in.SocialSecurityIncome+in.PensionIncome)*12
	if uncovered <= 0 {
		return 0
	}
	return uncovered * factor
}

// hasGap reports whether the gap is at least one cent.
func (p retirementPlan) hasGap() bool {
	return money.Cents(p.gap).Sign() > 0
}

func (p retirementPlan) realReturn() float64 {
	return (1+p.rate)/(1+p.inflation) - 1
}

func (p retirementPlan) withdrawalScenarios(g *guard) []domain.WithdrawalScenario {
	plan := WithdrawalPlan{
		Balance:           p.projected,
		RealReturn:        p.realReturn(),
		AnnualNeed:        p.need,
		RetirementAge:     p.in.RetirementAge,
		YearsInRetirement: p.yearsInRetirement,
	}
	strategies := DefaultWithdrawalStrategies()
	out := make([]domain.WithdrawalScenario, 0, len(strategies))
	for _, s := range strategies {
		annual := s.AnnualWithdrawal(plan)
		rate := 0.0
		if p.projected > 0 {
			rate = annual / p.projected * 100
		}
		scenario := domain.WithdrawalScenario{
			Method:            s.Method(),
			WithdrawalRate:    g.round("withdrawal_rate", rate, 2),
			AnnualWithdrawal:  g.cents("annual_withdrawal", annual),
			MonthlyWithdrawal: g.cents("monthly_withdrawal", annual/12),
			Description:       s.Description(plan),
		}
		if years, ok := YearsSustainable(p.projected, annual, plan.RealReturn); ok {
			scenario.YearsSustainable = g.roundPtr("years_sustainable", years, 1)
		}
		out = append(out, scenario)
	}
	return out
}

func (p retirementPlan) catchUpScenarios(g *guard) []domain.CatchUpScenario {
	if !p.hasGap() {
		return []domain.CatchUpScenario{}
	}
	in := p.in
	scenarios := make([]domain.CatchUpScenario, 0, 4)

	// Save more each month.
	shortfall := p.requiredSavings - p.projected
	additional := shortfall / contributionFactor(p.rate, p.yearsToRetirement)
	var title, description string
	switch {
	case additional <= AlmostThereMonthly:
		title = "Almost There!"
		description = fmt.Sprintf("You're very close to your goal! Just $%.2f more per month would close the gap completely.", additional)
	case additional < SignificantGapMonthly:
		title = "Increase Monthly Savings"
		description = fmt.Sprintf("Save an additional $%.0f per month to close the gap", additional)
	default:
		title = "Significant Gap"
		description = fmt.Sprintf("The gap is quite large ($%.0f/month needed). Consider the other options below.", additional)
	}
	scenarios = append(scenarios, domain.CatchUpScenario{
		Scenario:                 title,
		Description:              description,
		AdditionalMonthlySavings: g.centsPtr("additional_monthly_savings", additional),
		NewTotalMonthlySavings:   g.centsPtr("new_total_monthly_savings", in.MonthlyContribution+additional),
	})

	// Earn more on the same contributions.
	balanceAt := func(rate float64) float64 {
		return futureValue(in.CurrentSavings, in.MonthlyContribution, rate, p.yearsToRetirement)
	}
	current := g.roundPtr("current_return_rate", in.ExpectedReturn, 2)
	if required, ok := bisect(balanceAt, p.requiredSavings, 0, RequiredReturnCeiling); ok {
		s := domain.CatchUpScenario{
			RequiredReturnRate: g.roundPtr("required_return_rate", required*100, 2),
			CurrentReturnRate:  current,
		}
		if required <= p.rate+RequiredReturnHeadroom {
			s.Scenario = "Increase Investment Returns"
			s.Description = fmt.Sprintf("Need %.1f%% annual return vs current %.1f%%", required*100, in.ExpectedReturn)
		} else {
			s.Scenario = "Investment Returns"
			s.Description = fmt.Sprintf("Required return (%.1f%%) is significantly higher than your current expectation (%.1f%%). Consider other options.",
				required*100, in.ExpectedReturn)
		}
		scenarios = append(scenarios, s)
	} else {
		scenarios = append(scenarios, domain.CatchUpScenario{
			Scenario:          "Investment Returns",
			Description:       "No realistic return closes the gap at your current savings level. Consider other options.",
			CurrentReturnRate: current,
		})
	}

	// Work longer.
	scenarios = append(scenarios, p.workLonger(g))

	// Settle for what the current plan supports, in today's dollars.
	achievable := SafeWithdrawalRate*p.projected/p.inflationFactor + (in.SocialSecurityIncome+in.PensionIncome)*12
	scenarios = append(scenarios, domain.CatchUpScenario{
		Scenario:         "Adjust Retirement Income Goal",
		Description:      fmt.Sprintf("Reduce annual retirement income goal to $%s", formatWhole(achievable)),
		AchievableIncome: g.centsPtr("achievable_income", achievable),
		CurrentGoal:      g.centsPtr("current_goal", in.DesiredRetirementIncome),
	})
	return scenarios
}

// workLonger finds the fewest extra working years that close the gap,
// re-inflating the goal for the later retirement date. Retirement must still
// start at least a year before life expectancy.
func (p retirementPlan) workLonger(g *guard) domain.CatchUpScenario {
	in := p.in
	maxYears := WorkLongerMaxYears
	if limit := p.yearsInRetirement - 1; limit < maxYears {
		maxYears = limit
	}
	if maxYears < 1 {
		return domain.CatchUpScenario{
			Scenario: "Work Longer",
			Description: fmt.Sprintf("Retiring at %d leaves no room to work longer before your life expectancy of %d - consider adjusting your retirement income goal instead",
				in.RetirementAge, in.LifeExpectancy),
		}
	}

	var balance float64
	for k := 1; k <= maxYears; k++ {
		years := p.yearsToRetirement + k
		balance = futureValue(in.CurrentSavings, in.MonthlyContribution, p.rate, years)
		factor := math.Pow(1+p.inflation, float64(years))
		if SafeWithdrawalRate*balance < incomeNeed(in, factor) {
			continue
		}
		extra, age := k, in.RetirementAge+k
		description := fmt.Sprintf("Work %s longer to reach your goal", pluralYears(k))
		if k > WorkLongerReasonable {
			description = fmt.Sprintf("Would need to work %s longer - consider adjusting your retirement income goal instead", pluralYears(k))
		}
		return domain.CatchUpScenario{
			Scenario:         "Work Longer",
			Description:      description,
			AdditionalYears:  &extra,
			NewRetirementAge: &age,
			ProjectedSavings: g.centsPtr("projected_savings", balance),
		}
	}

	extra, age := maxYears, in.RetirementAge+maxYears
	return domain.CatchUpScenario{
		Scenario:         "Work Longer",
		Description:      fmt.Sprintf("Working %s longer still leaves a gap - consider adjusting your retirement income goal instead", pluralYears(maxYears)),
		AdditionalYears:  &extra,
		NewRetirementAge: &age,
		ProjectedSavings: g.centsPtr("projected_savings", balance),
	}
}

func pluralYears(n int) string {
	if n == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", n)
}

// readiness scores the plan out of 100: savings adequacy earns up to 40
// points and the horizon, savings rate and expected return up to 20 each.
// The score never decreases as projected savings grow.
func (p retirementPlan) readiness() (int, string, string) {
	adequacy := 1.0
	if p.requiredSavings > 0 {
		adequacy = math.Min(p.projected/p.requiredSavings, 1)
	}
	score := adequacy * 40

	switch {
	case p.yearsToRetirement >= 20:
		score += 20
	case p.yearsToRetirement >= 10:
		score += 15
	case p.yearsToRetirement >= 5:
		score += 10
	default:
		score += 5
	}

	if p.in.DesiredRetirementIncome == 0 {
		score += 20
	} else {
		savingsRate := p.in.MonthlyContribution * 12 / p.in.DesiredRetirementIncome
		switch {
		case savingsRate >= 0.15:
			score += 20
		case savingsRate >= 0.10:
			score += 15
		case savingsRate >= 0.05:
			score += 10
		default:
			score += 5
		}
	}

	switch {
	case p.rate >= 0.07:
		score += 20
	case p.rate >= 0.05:
		score += 15
	case p.rate >= 0.03:
		score += 10
	default:
		score += 5
	}

	rounded := int(math.Round(score))
	if rounded > 100 {
		rounded = 100
	}
	if rounded < 0 {
		rounded = 0
	}

	switch {
	case rounded >= 80:
		return rounded, "Excellent", "You're well-prepared for retirement"
	case rounded >= 60:
		return rounded, "Good", "You're on track but could improve"
	case rounded >= 40:
		return rounded, "Fair", "You need to make some adjustments"
	default:
		return rounded, "Needs Attention", "Significant changes needed to reach your goals"
	}
}

var recommendationRules = []rule[retirementPlan, string]{
	{
		name:  "comfortable_savings",
		when:  func(p retirementPlan) bool { return p.projected > 1000000 },
		build: constant("Excellent! You're on track for a comfortable retirement"),
	},
	{
		name:  "good_savings",
		when:  func(p retirementPlan) bool { return p.projected > 500000 && p.projected <= 1000000 },
		build: constant("Good progress! Consider increasing your savings rate for more security"),
	},
	{
		name:  "low_savings",
		when:  func(p retirementPlan) bool { return p.projected <= 500000 },
		build: constant("Consider increasing your monthly contributions or extending your working years"),
	},
	{
		name:  "low_return",
		when:  func(p retirementPlan) bool { return p.rate < 0.05 },
		build: constant("Consider diversifying your investments for potentially higher returns"),
	},
	{
		name:  "optimistic_return",
		when:  func(p retirementPlan) bool { return p.rate > 0.10 },
		build: constant("Your expected return may be optimistic - consider more conservative planning"),
	},
	{
		name:  "small_contribution",
		when:  func(p retirementPlan) bool { return p.in.MonthlyContribution < 500 },
		build: constant("Try to increase your monthly savings if possible - even small increases help"),
	},
	{
		name:  "strong_contribution",
		when:  func(p retirementPlan) bool { return p.in.MonthlyContribution > 2000 },
		build: constant("Great savings discipline! You're building a strong retirement foundation"),
	},
	{
		name:  "gap",
		when:  func(p retirementPlan) bool { return p.hasGap() },
		build: constant("You may need to save more or work longer to meet your retirement income goals"),
	},
	{
		name:  "large_gap",
		when:  func(p retirementPlan) bool { return p.gap > LargeGapThreshold },
		build: constant("Significant gap detected - consider consulting a financial advisor"),
	},
	{
		name:  "on_track",
		when:  func(p retirementPlan) bool { return !p.hasGap() },
		build: constant("Your projected savings should meet your retirement income needs"),
	},
	{
		name:  "near_retirement",
		when:  func(p retirementPlan) bool { return p.yearsToRetirement < 10 },
		build: constant("You're close to retirement - focus on capital preservation and reducing risk"),
	},
	{
		name:  "long_horizon",
		when:  func(p retirementPlan) bool { return p.yearsToRetirement > 30 },
		build: constant("You have time on your side - consider more aggressive investment strategies"),
	},
	{
		name:  "no_social_security",
		when:  func(p retirementPlan) bool { return p.in.SocialSecurityIncome == 0 },
		build: constant("Consider your Social Security benefits in your retirement planning"),
	},
	{
		name:  "no_pension",
		when:  func(p retirementPlan) bool { return p.in.PensionIncome == 0 },
		build: constant("If available, employer pensions can significantly boost retirement income"),
	},
	{
		name:  "high_inflation",
		when:  func(p retirementPlan) bool { return p.inflation > 0.03 },
		build: constant("Higher inflation expected - ensure your investments can outpace inflation"),
	},
}

func constant(s string) func(retirementPlan) string {
	return func(retirementPlan) string { return s }
}

// CalculateRetirement projects savings to retirement and analyses whether
// they support the desired income.
func CalculateRetirement(in domain.RetirementInput) (*domain.RetirementResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	g := newGuard("retirement")
	p := newRetirementPlan(in)

	balances := projectSavings(in.CurrentSavings, in.MonthlyContribution, p.rate, p.yearsToRetirement)
	rows := make([]domain.RetirementYear, 0, len(balances))
	for i, balance := range balances {
		year := i + 1
		contributed := in.CurrentSavings + in.MonthlyContribution*12*float64(year)
		rows = append(rows, domain.RetirementYear{
			Year:          year,
			Age:           in.CurrentAge + year,
			Balance:       g.cents("balance", balance),
			Contributions: g.cents("contributions", contributed),
			Interest:      g.cents("interest", balance-contributed),
		})
	}

	totalContributions := in.CurrentSavings + in.MonthlyContribution*12*float64(p.yearsToRetirement)
	score, level, description := p.readiness()

	result := &domain.RetirementResult{
		CurrentAge:              in.CurrentAge,
		RetirementAge:           in.RetirementAge,
		LifeExpectancy:          in.LifeExpectancy,
		YearsToRetirement:       p.yearsToRetirement,
		YearsInRetirement:       p.yearsInRetirement,
		CurrentSavings:          g.cents("current_savings", in.CurrentSavings),
		ProjectedSavings:        g.cents("projected_savings", p.projected),
		TotalContributions:      g.cents("total_contributions", totalContributions),
		InterestEarned:          g.cents("interest_earned", p.projected-totalContributions),
		InflationAdjustedIncome: g.cents("inflation_adjusted_income", p.otherIncome),
		InflationAdjustedGoal:   g.cents("inflation_adjusted_goal", p.goal),
		RequiredSavings:         g.cents("required_savings", p.requiredSavings),
		SavingsGap:              g.cents("savings_gap", p.gap),
		ReadinessScore:          score,
		ReadinessLevel:          level,
		ReadinessDescription:    description,
		YearlyProjections:       rows,
		WithdrawalScenarios:     p.withdrawalScenarios(g),
		CatchUpScenarios:        p.catchUpScenarios(g),
		Recommendations:         evaluate(recommendationRules, p),
	}
	if g.err != nil {
		return nil, g.err
	}
	return result, nil
}

var amountPrinter = message.NewPrinter(language.English)

// formatWhole renders a whole-dollar amount with thousands separators.
func formatWhole(v float64) string {
	return amountPrinter.Sprintf("%.0f", v)
}
