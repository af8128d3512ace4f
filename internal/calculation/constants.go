package calculation

// Mortgage thresholds (percent unless noted).
const (
	PMIEquityThreshold      = 20.0
	HighPMIRate             = 1.0
	HighMortgageRate        = 6.0
	LowMortgageRate         = 4.0
	MaxDebtToIncome         = 43.0
	ComfortableDebtToIncome = 28.0
	RefinanceRateFloor      = 5.0
	RefinanceMinTermYears   = 10
)

// Compound growth thresholds (percent).
const (
	LowRealReturn      = 2.0
	HighInflation      = 3.0
	HighTaxRate        = 25.0
	ComparisonRateStep = 2.0
)

// Retirement planning constants.
const (
	SafeWithdrawalRate     = 0.04
	WorkLongerMaxYears     = 15
	WorkLongerReasonable   = 10
	RequiredReturnCeiling  = 1.0 // 100% annual return
	RequiredReturnHeadroom = 0.05
	LargeGapThreshold      = 100000.0
	AlmostThereMonthly     = 1.0
	SignificantGapMonthly  = 1000.0
)

// Net worth thresholds as fractions of total assets, and home equity
// thresholds in percent.
const (
	CreditCardShareLimit    = 0.10
	CashReserveShareFloor   = 0.10
	RetirementShareFloor    = 0.15
	RealEstateShareLimit    = 0.70
	LowHomeEquityPercent    = 20.0
	StrongHomeEquityPercent = 50.0
)
