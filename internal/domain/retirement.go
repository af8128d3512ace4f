package domain

import "github.com/shopspring/decimal"

// RetirementInput describes a saver's plan. Incomes from social security and
// pensions are monthly; the desired retirement income is annual and in
// today's dollars.
type RetirementInput struct {
	CurrentAge              int     `json:"current_age" yaml:"current_age"`
	RetirementAge           int     `json:"retirement_age" yaml:"retirement_age"`
	CurrentSavings          float64 `json:"current_savings" yaml:"current_savings"`
	MonthlyContribution     float64 `json:"monthly_contribution" yaml:"monthly_contribution"`
	ExpectedReturn          float64 `json:"expected_return" yaml:"expected_return"`
	LifeExpectancy          int     `json:"life_expectancy" yaml:"life_expectancy"`
	InflationRate           float64 `json:"inflation_rate" yaml:"inflation_rate"`
	SocialSecurityIncome    float64 `json:"social_security_income" yaml:"social_security_income"`
	PensionIncome           float64 `json:"pension_income" yaml:"pension_income"`
	DesiredRetirementIncome float64 `json:"desired_retirement_income" yaml:"desired_retirement_income"`
}

// DefaultRetirementInput returns the values assumed for omitted fields.
func DefaultRetirementInput() RetirementInput {
	return RetirementInput{
		LifeExpectancy: 85,
		InflationRate:  2.5,
	}
}

// Validate checks the retirement input ranges.
func (in RetirementInput) Validate() error {
	if in.CurrentAge < 18 || in.CurrentAge > 100 {
		return NewValidationError("current_age", "must be between 18 and 100")
	}
	if in.RetirementAge <= in.CurrentAge {
		return NewValidationError("retirement_age", "must be greater than current_age")
	}
	if in.RetirementAge > 100 {
		return NewValidationError("retirement_age", "cannot exceed 100")
	}
	if in.LifeExpectancy <= in.RetirementAge {
		return NewValidationError("life_expectancy", "must be greater than retirement_age")
	}
	if in.LifeExpectancy > 120 {
		return NewValidationError("life_expectancy", "cannot exceed 120")
	}
	return firstError(
		checkAmount("current_savings", in.CurrentSavings),
		checkAmount("monthly_contribution", in.MonthlyContribution),
		checkPercent("expected_return", in.ExpectedReturn),
		checkPercent("inflation_rate", in.InflationRate),
		checkAmount("social_security_income", in.SocialSecurityIncome),
		checkAmount("pension_income", in.PensionIncome),
		checkAmount("desired_retirement_income", in.DesiredRetirementIncome),
	)
}

// RetirementYear is one row of the accumulation projection. Contributions
// include the starting savings; both Contributions and Interest are
// cumulative.
type RetirementYear struct {
	Year          int             `json:"year"`
	Age           int             `json:"age"`
	Balance       decimal.Decimal `json:"balance"`
	Contributions decimal.Decimal `json:"contributions"`
	Interest      decimal.Decimal `json:"interest"`
}

// WithdrawalScenario describes one way of drawing down projected savings.
// A nil YearsSustainable means the withdrawal never exhausts the balance.
type WithdrawalScenario struct {
	Method            string           `json:"method"`
	WithdrawalRate    decimal.Decimal  `json:"withdrawal_rate"`
	AnnualWithdrawal  decimal.Decimal  `json:"annual_withdrawal"`
	MonthlyWithdrawal decimal.Decimal  `json:"monthly_withdrawal"`
	YearsSustainable  *decimal.Decimal `json:"years_sustainable"`
	Description       string           `json:"description"`
}

// CatchUpScenario is an alternative plan that closes a savings gap. Only the
// fields relevant to the scenario are set.
type CatchUpScenario struct {
	Scenario                 string           `json:"scenario"`
	Description              string           `json:"description"`
	AdditionalMonthlySavings *decimal.Decimal `json:"additional_monthly_savings,omitempty"`
	NewTotalMonthlySavings   *decimal.Decimal `json:"new_total_monthly_savings,omitempty"`
	RequiredReturnRate       *decimal.Decimal `json:"required_return_rate,omitempty"`
	CurrentReturnRate        *decimal.Decimal `json:"current_return_rate,omitempty"`
	AdditionalYears          *int             `json:"additional_years,omitempty"`
	NewRetirementAge         *int             `json:"new_retirement_age,omitempty"`
	ProjectedSavings         *decimal.Decimal `json:"projected_savings,omitempty"`
	AchievableIncome         *decimal.Decimal `json:"achievable_income,omitempty"`
	CurrentGoal              *decimal.Decimal `json:"current_goal,omitempty"`
}

// RetirementResult is the full retirement readiness analysis. Amounts at
// retirement are in future (inflated) dollars unless noted.
type RetirementResult struct {
	CurrentAge              int                  `json:"current_age"`
	RetirementAge           int                  `json:"retirement_age"`
	LifeExpectancy          int                  `json:"life_expectancy"`
	YearsToRetirement       int                  `json:"years_to_retirement"`
	YearsInRetirement       int                  `json:"years_in_retirement"`
	CurrentSavings          decimal.Decimal      `json:"current_savings"`
	ProjectedSavings        decimal.Decimal      `json:"projected_savings"`
	TotalContributions      decimal.Decimal      `json:"total_contributions"`
	InterestEarned          decimal.Decimal      `json:"interest_earned"`
	InflationAdjustedIncome decimal.Decimal      `json:"inflation_adjusted_income"`
	InflationAdjustedGoal   decimal.Decimal      `json:"inflation_adjusted_goal"`
	RequiredSavings         decimal.Decimal      `json:"required_savings"`
	SavingsGap              decimal.Decimal      `json:"savings_gap"`
	ReadinessScore          int                  `json:"readiness_score"`
	ReadinessLevel          string               `json:"readiness_level"`
	ReadinessDescription    string               `json:"readiness_description"`
	YearlyProjections       []RetirementYear     `json:"yearly_projections"`
	WithdrawalScenarios     []WithdrawalScenario `json:"withdrawal_scenarios"`
	CatchUpScenarios        []CatchUpScenario    `json:"catch_up_scenarios"`
	Recommendations         []string             `json:"recommendations"`
}
