package config

import (
	"fmt"
	"os"

	"github.com/rpgo/finplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of calculator input files. Files may be YAML or
// JSON; omitted fields keep the calculator defaults.
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// decodeFile reads filename and unmarshals it over target.
func decodeFile(filename string, target any) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return nil
}

type validator interface {
	Validate() error
}

func load[T validator](filename string, defaults T) (*T, error) {
	in := defaults
	if err := decodeFile(filename, &in); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &in, nil
}

// LoadMortgage loads a mortgage input file.
func (ip *InputParser) LoadMortgage(filename string) (*domain.MortgageInput, error) {
	return load(filename, domain.DefaultMortgageInput())
}

// LoadCompoundInterest loads a compound interest input file.
func (ip *InputParser) LoadCompoundInterest(filename string) (*domain.CompoundInterestInput, error) {
	return load(filename, domain.DefaultCompoundInterestInput())
}

// LoadRetirement loads a retirement input file.
func (ip *InputParser) LoadRetirement(filename string) (*domain.RetirementInput, error) {
	return load(filename, domain.DefaultRetirementInput())
}

// LoadNetWorth loads a net worth input file.
func (ip *InputParser) LoadNetWorth(filename string) (*domain.NetWorthInput, error) {
	return load(filename, domain.NetWorthInput{})
}

// CreateExample returns an example input for the calculator kind.
func (ip *InputParser) CreateExample(kind domain.CalculatorKind) (any, error) {
	switch kind {
	case domain.KindMortgage:
		return ip.CreateExampleMortgage(), nil
	case domain.KindCompoundInterest:
		return ip.CreateExampleCompoundInterest(), nil
	case domain.KindRetirement:
		return ip.CreateExampleRetirement(), nil
	case domain.KindNetWorth:
		return ip.CreateExampleNetWorth(), nil
	default:
		return nil, fmt.Errorf("no example for calculator %q", kind)
	}
}

// WriteExample writes an example input for kind to filename as YAML.
func (ip *InputParser) WriteExample(kind domain.CalculatorKind, filename string) error {
	example, err := ip.CreateExample(kind)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal example: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// CreateExampleMortgage creates an example mortgage input
func (ip *InputParser) CreateExampleMortgage() *domain.MortgageInput {
	return &domain.MortgageInput{
		LoanAmount:    300000,
		InterestRate:  4.5,
		LoanTermYears: 30,
		DownPayment:   60000,
		PropertyTax:   3600,
		Insurance:     1200,
		PMIRate:       0.5,
		AnnualIncome:  80000,
	}
}

// CreateExampleCompoundInterest creates an example savings projection
func (ip *InputParser) CreateExampleCompoundInterest() *domain.CompoundInterestInput {
	return &domain.CompoundInterestInput{
		Principal:                10000,
		MonthlyContribution:      500,
		InterestRate:             7,
		CompoundingFrequency:     domain.CompoundMonthly,
		TimePeriod:               20,
		TaxRate:                  15,
		InflationRate:            2.5,
		ContributionIncreaseRate: 3,
	}
}

// CreateExampleRetirement creates an example retirement plan
func (ip *InputParser) CreateExampleRetirement() *domain.RetirementInput {
	return &domain.RetirementInput{
		CurrentAge:              35,
		RetirementAge:           65,
		CurrentSavings:          85000,
		MonthlyContribution:     1200,
		ExpectedReturn:          7,
		LifeExpectancy:          90,
		InflationRate:           2.5,
		SocialSecurityIncome:    2200,
		PensionIncome:           0,
		DesiredRetirementIncome: 90000,
	}
}

// CreateExampleNetWorth creates an example balance sheet
func (ip *InputParser) CreateExampleNetWorth() *domain.NetWorthInput {
	return &domain.NetWorthInput{
		Assets: map[string]float64{
			"cash_savings":        18000,
			"checking_accounts":   4500,
			"investment_accounts": 65000,
			"retirement_accounts": 210000,
			"vehicles":            22000,
		},
		Liabilities: map[string]float64{
			"credit_cards":  2400,
			"student_loans": 18500,
			"car_loans":     11000,
		},
		Houses: []domain.House{
			{Value: 450000, Mortgage: 310000, EquityLoan: 0},
		},
	}
}
