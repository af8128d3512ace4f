package domain

import "github.com/shopspring/decimal"

// MortgageInput describes a fixed-rate home loan.
type MortgageInput struct {
	LoanAmount    float64 `json:"loan_amount" yaml:"loan_amount"`
	InterestRate  float64 `json:"interest_rate" yaml:"interest_rate"` // annual %
	LoanTermYears int     `json:"loan_term_years" yaml:"loan_term_years"`
	DownPayment   float64 `json:"down_payment" yaml:"down_payment"`
	PropertyTax   float64 `json:"property_tax" yaml:"property_tax"` // annual
	Insurance     float64 `json:"insurance" yaml:"insurance"`       // annual
	PMIRate       float64 `json:"pmi_rate" yaml:"pmi_rate"`         // annual % of principal
	AnnualIncome  float64 `json:"annual_income" yaml:"annual_income"`
}

// DefaultMortgageInput returns the values assumed for omitted fields.
func DefaultMortgageInput() MortgageInput {
	return MortgageInput{
		LoanTermYears: 30,
		AnnualIncome:  100000,
	}
}

// Validate checks the mortgage input ranges.
func (in MortgageInput) Validate() error {
	if err := checkFinite("loan_amount", in.LoanAmount); err != nil {
		return err
	}
	if in.LoanAmount <= 0 {
		return NewValidationError("loan_amount", "must be greater than 0")
	}
	if in.LoanAmount > MaxAmount {
		return NewValidationError("loan_amount", "cannot exceed %.0f", MaxAmount)
	}
	if err := checkRange("interest_rate", in.InterestRate, 0, 20); err != nil {
		return err
	}
	if in.LoanTermYears < 1 || in.LoanTermYears > 50 {
		return NewValidationError("loan_term_years", "must be between 1 and 50 years")
	}
	if err := checkAmount("down_payment", in.DownPayment); err != nil {
		return err
	}
	if in.DownPayment >= in.LoanAmount {
		return NewValidationError("down_payment", "must be less than the loan amount")
	}
	return firstError(
		checkAmount("property_tax", in.PropertyTax),
		checkAmount("insurance", in.Insurance),
		checkPercent("pmi_rate", in.PMIRate),
		checkAmount("annual_income", in.AnnualIncome),
	)
}

// AmortizationYear aggregates twelve monthly amortization steps.
type AmortizationYear struct {
	Year             int             `json:"year"`
	BeginningBalance decimal.Decimal `json:"beginning_balance"`
	TotalPayment     decimal.Decimal `json:"total_payment"`
	PrincipalPaid    decimal.Decimal `json:"principal_paid"`
	InterestPaid     decimal.Decimal `json:"interest_paid"`
	PMIPaid          decimal.Decimal `json:"pmi_paid"`
	EndingBalance    decimal.Decimal `json:"ending_balance"`
}

// LoanSummary echoes the loan terms a result was computed from.
type LoanSummary struct {
	LoanAmount        decimal.Decimal `json:"loan_amount"`
	DownPayment       decimal.Decimal `json:"down_payment"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	LoanTermYears     int             `json:"loan_term_years"`
	PropertyTaxAnnual decimal.Decimal `json:"property_tax_annual"`
	InsuranceAnnual   decimal.Decimal `json:"insurance_annual"`
}

// MortgageResult is the full mortgage analysis.
//
// PMIMonthly is decided once from the down payment percentage and is part of
// TotalMonthlyPayment and TotalCost for the life of the loan. PMITotal and
// PMIRemovalYear track the schedule-level view where PMI stops once equity
// reaches 20% of the purchase price.
type MortgageResult struct {
	MonthlyPayment        decimal.Decimal    `json:"monthly_payment"`
	TotalMonthlyPayment   decimal.Decimal    `json:"total_monthly_payment"`
	TotalInterest         decimal.Decimal    `json:"total_interest"`
	TotalPayments         decimal.Decimal    `json:"total_payments"`
	TotalCost             decimal.Decimal    `json:"total_cost"`
	Principal             decimal.Decimal    `json:"principal"`
	DownPaymentPercentage decimal.Decimal    `json:"down_payment_percentage"`
	PMIMonthly            decimal.Decimal    `json:"pmi_monthly"`
	PMITotal              decimal.Decimal    `json:"pmi_total"`
	PMIRemovalYear        int                `json:"pmi_removal_year,omitempty"`
	DebtToIncomeRatio     decimal.Decimal    `json:"debt_to_income_ratio"`
	AmortizationSchedule  []AmortizationYear `json:"amortization_schedule"`
	Insights              []Insight          `json:"insights"`
	LoanSummary           LoanSummary        `json:"loan_summary"`
}
