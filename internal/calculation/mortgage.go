package calculation

import (
	"fmt"
	"math"

	"github.com/rpgo/finplan/internal/domain"
)

// MonthlyPayment returns the fixed annuity payment for principal p over n
// months at monthly rate r. A zero rate spreads the principal evenly.
func MonthlyPayment(p, r float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if r == 0 {
		return p / float64(n)
	}
	growth := math.Pow(1+r, float64(n))
	return p * r * growth / (growth - 1)
}

type amortYear struct {
	year          int
	beginning     float64
	principalPaid float64
	interestPaid  float64
	pmiPaid       float64
	ending        float64
}

type amortization struct {
	years       []amortYear
	pmiTotal    float64
	removalYear int
}

// amortize walks the loan month by month and aggregates each year. PMI is
// charged until equity against the purchase price reaches the threshold.
func amortize(purchasePrice, principal, rate, payment, pmiMonthly float64, years int) amortization {
	var out amortization
	out.years = make([]amortYear, 0, years)

	balance := principal
	pmiActive := pmiMonthly > 0
	equityTarget := purchasePrice * PMIEquityThreshold / 100

	for y := 1; y <= years; y++ {
		row := amortYear{year: y, beginning: balance}
		for m := 0; m < 12; m++ {
			if pmiActive && purchasePrice-balance >= equityTarget {
				pmiActive = false
				out.removalYear = y
			}
			if pmiActive {
				row.pmiPaid += pmiMonthly
			}
			interest := balance * rate
			principalPart := payment - interest
			balance -= principalPart
			row.interestPaid += interest
			row.principalPaid += principalPart
		}
		row.ending = balance
		out.pmiTotal += row.pmiPaid
		out.years = append(out.years, row)
	}
	return out
}

type mortgageFacts struct {
	in                 domain.MortgageInput
	downPaymentPercent float64
	pmiMonthly         float64
	debtToIncome       float64
}

var mortgageRules = []rule[mortgageFacts, domain.Insight]{
	{
		name: "low_down_payment",
		when: func(f mortgageFacts) bool { return f.downPaymentPercent < PMIEquityThreshold },
		build: func(f mortgageFacts) domain.Insight {
			return domain.Insight{
				Type:  domain.InsightWarning,
				Title: "Low Down Payment",
				Message: fmt.Sprintf("Your %.1f%% down payment is below the recommended 20%%. You'll pay PMI of $%.2f/month until you reach 20%% equity.",
					f.downPaymentPercent, f.pmiMonthly),
			}
		},
	},
	{
		name: "good_down_payment",
		when: func(f mortgageFacts) bool { return f.downPaymentPercent >= PMIEquityThreshold },
		build: func(f mortgageFacts) domain.Insight {
			return domain.Insight{
				Type:    domain.InsightSuccess,
				Title:   "Good Down Payment",
				Message: fmt.Sprintf("Your %.1f%% down payment is excellent! You avoid PMI and have better loan terms.", f.downPaymentPercent),
			}
		},
	},
	{
		name: "high_pmi",
		when: func(f mortgageFacts) bool { return f.pmiMonthly > 0 && f.in.PMIRate >= HighPMIRate },
		build: func(f mortgageFacts) domain.Insight {
			return domain.Insight{
				Type:  domain.InsightWarning,
				Title: "High PMI",
				Message: fmt.Sprintf("A %.2f%% PMI rate adds $%.2f/month. A larger down payment or a lender-paid PMI option could remove this cost.",
					f.in.PMIRate, f.pmiMonthly),
			}
		},
	},
	{
		name: "high_interest_rate",
		when: func(f mortgageFacts) bool { return f.in.InterestRate > HighMortgageRate },
		build: func(f mortgageFacts) domain.Insight {
			return domain.Insight{
				Type:    domain.InsightWarning,
				Title:   "High Interest Rate",
				Message: fmt.Sprintf("Your %g%% interest rate is relatively high. Consider improving your credit score or shopping around for better rates.", f.in.InterestRate),
			}
		},
	},
	{
		name: "great_interest_rate",
		when: func(f mortgageFacts) bool { return f.in.InterestRate < LowMortgageRate },
		build: func(f mortgageFacts) domain.Insight {
			return domain.Insight{
				Type:    domain.InsightSuccess,
				Title:   "Great Interest Rate",
				Message: fmt.Sprintf("Your %g%% interest rate is excellent! You're getting very favorable terms.", f.in.InterestRate),
			}
		},
	},
	{
		name: "thirty_year_term",
		when: func(f mortgageFacts) bool { return f.in.LoanTermYears == 30 },
		build: func(mortgageFacts) domain.Insight {
			return domain.Insight{
				Type:    domain.InsightInfo,
				Title:   "30-Year Fixed Rate",
				Message: "Standard 30-year term provides lower monthly payments but higher total interest. Consider a 15-year term if you can afford higher payments.",
			}
		},
	},
	{
		name: "fifteen_year_term",
		when: func(f mortgageFacts) bool { return f.in.LoanTermYears == 15 },
		build: func(mortgageFacts) domain.Insight {
			return domain.Insight{
				Type:    domain.InsightSuccess,
				Title:   "15-Year Fixed Rate",
				Message: "Great choice! 15-year terms typically have lower interest rates and save significantly on total interest.",
			}
		},
	},
	{
		name: "high_debt_to_income",
		when: func(f mortgageFacts) bool { return f.in.AnnualIncome > 0 && f.debtToIncome > MaxDebtToIncome },
		build: func(f mortgageFacts) domain.Insight {
			return domain.Insight{
				Type:    domain.InsightWarning,
				Title:   "High Debt-to-Income Ratio",
				Message: fmt.Sprintf("Your mortgage payment represents %.1f%% of your income, which is above the recommended 43%% maximum.", f.debtToIncome),
			}
		},
	},
	{
		name: "good_debt_to_income",
		when: func(f mortgageFacts) bool { return f.in.AnnualIncome > 0 && f.debtToIncome <= ComfortableDebtToIncome },
		build: func(f mortgageFacts) domain.Insight {
			return domain.Insight{
				Type:    domain.InsightSuccess,
				Title:   "Good Debt-to-Income Ratio",
				Message: fmt.Sprintf("Your mortgage payment represents %.1f%% of your income, which is well within recommended limits.", f.debtToIncome),
			}
		},
	},
	{
		name: "refinancing_opportunity",
		when: func(f mortgageFacts) bool {
			return f.in.InterestRate > RefinanceRateFloor && f.in.LoanTermYears > RefinanceMinTermYears
		},
		build: func(mortgageFacts) domain.Insight {
			return domain.Insight{
				Type:    domain.InsightInfo,
				Title:   "Refinancing Opportunity",
				Message: "Consider refinancing if rates drop below your current rate. This could save thousands in interest over the loan term.",
			}
		},
	},
}

// CalculateMortgage computes the payment, totals, annual amortization schedule
// and insights for a fixed-rate loan.
func CalculateMortgage(in domain.MortgageInput) (*domain.MortgageResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	principal := in.LoanAmount - in.DownPayment
	downPaymentPercent := in.DownPayment * 100 / in.LoanAmount
	rate := in.InterestRate / 100 / 12
	months := in.LoanTermYears * 12
	payment := MonthlyPayment(principal, rate, months)

	pmiMonthly := 0.0
	if downPaymentPercent < PMIEquityThreshold {
		pmiMonthly = principal * in.PMIRate / 100 / 12
	}

	totalMonthly := payment + in.PropertyTax/12 + in.Insurance/12 + pmiMonthly
	totalPayments := totalMonthly * float64(months)
	totalInterest := payment*float64(months) - principal
	totalCost := totalPayments + in.DownPayment

	debtToIncome := 0.0
	if in.AnnualIncome > 0 {
		debtToIncome = totalMonthly * 12 / in.AnnualIncome * 100
	}

	g := newGuard("mortgage")
	schedule := amortize(in.LoanAmount, principal, rate, payment, pmiMonthly, in.LoanTermYears)
	yearlyPayment := g.cents("total_payment", payment*12)
	rows := make([]domain.AmortizationYear, 0, len(schedule.years))
	for _, y := range schedule.years {
		rows = append(rows, domain.AmortizationYear{
			Year:             y.year,
			BeginningBalance: g.cents("beginning_balance", y.beginning),
			TotalPayment:     yearlyPayment,
			PrincipalPaid:    g.cents("principal_paid", y.principalPaid),
			InterestPaid:     g.cents("interest_paid", y.interestPaid),
			PMIPaid:          g.cents("pmi_paid", y.pmiPaid),
			EndingBalance:    g.cents("ending_balance", y.ending),
		})
	}

	facts := mortgageFacts{
		in:                 in,
		downPaymentPercent: downPaymentPercent,
		pmiMonthly:         pmiMonthly,
		debtToIncome:       debtToIncome,
	}

	result := &domain.MortgageResult{
		MonthlyPayment:        g.cents("monthly_payment", payment),
		TotalMonthlyPayment:   g.cents("total_monthly_payment", totalMonthly),
		TotalInterest:         g.cents("total_interest", totalInterest),
		TotalPayments:         g.cents("total_payments", totalPayments),
		TotalCost:             g.cents("total_cost", totalCost),
		Principal:             g.cents("principal", principal),
		DownPaymentPercentage: g.round("down_payment_percentage", downPaymentPercent, 2),
		PMIMonthly:            g.cents("pmi_monthly", pmiMonthly),
		PMITotal:              g.cents("pmi_total", schedule.pmiTotal),
		PMIRemovalYear:        schedule.removalYear,
		DebtToIncomeRatio:     g.round("debt_to_income_ratio", debtToIncome, 2),
		AmortizationSchedule:  rows,
		Insights:              evaluate(mortgageRules, facts),
		LoanSummary: domain.LoanSummary{
			LoanAmount:        g.cents("loan_amount", in.LoanAmount),
			DownPayment:       g.cents("down_payment", in.DownPayment),
			InterestRate:      g.round("interest_rate", in.InterestRate, 3),
			LoanTermYears:     in.LoanTermYears,
			PropertyTaxAnnual: g.cents("property_tax", in.PropertyTax),
			InsuranceAnnual:   g.cents("insurance", in.Insurance),
		},
	}
	if g.err != nil {
		return nil, g.err
	}
	return result, nil
}
