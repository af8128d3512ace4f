// Package output renders calculator results for the console, CSV, JSON and
// PNG charts.
package output

import (
	"fmt"
	"strconv"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/pkg/money"
	"github.com/shopspring/decimal"
)

// Field is one labelled summary value.
type Field struct {
	Label string
	Value string
}

// Table is a titled grid of preformatted cells.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Note is an insight line shown under the summary.
type Note struct {
	Kind  string
	Title string
	Text  string
}

// Series is one chart line. X and Y have the same length.
type Series struct {
	Name   string
	X      []float64
	Y      []float64
	Dashed bool
}

// Document is the format neutral view of a calculator result. Formatters
// and the chart renderer only look at documents, never at the result types.
type Document struct {
	Kind            domain.CalculatorKind
	Title           string
	Summary         []Field
	Tables          []Table
	Notes           []Note
	Recommendations []string

	// XLabel names the chart x axis. When XLabels is set the x values are
	// indexes into it.
	XLabel  string
	XLabels []string
	Series  []Series

	// Result is the value the JSON formatter encodes.
	Result any
}

// FromResult builds a document from any calculator result.
func FromResult(result any) (*Document, error) {
	switch r := result.(type) {
	case *domain.MortgageResult:
		return FromMortgage(r), nil
	case *domain.CompoundInterestResult:
		return FromCompoundInterest(r), nil
	case *domain.RetirementResult:
		return FromRetirement(r), nil
	case *domain.NetWorthResult:
		return FromNetWorth(r), nil
	default:
		return nil, fmt.Errorf("no document layout for %T", result)
	}
}

func insightNotes(insights []domain.Insight) []Note {
	notes := make([]Note, 0, len(insights))
	for _, in := range insights {
		notes = append(notes, Note{Kind: string(in.Type), Title: in.Title, Text: in.Message})
	}
	return notes
}

func amount(d decimal.Decimal) string { return d.StringFixed(2) }

func optionalAmount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

// FromMortgage lays out a mortgage result: the payment summary and the
// yearly amortization schedule.
func FromMortgage(r *domain.MortgageResult) *Document {
	doc := &Document{
		Kind:  domain.KindMortgage,
		Title: "Mortgage Payment Analysis",
		Summary: []Field{
			{"Loan Principal", FormatCurrency(r.Principal)},
			{"Monthly Payment (P&I)", FormatCurrency(r.MonthlyPayment)},
			{"Total Monthly Payment", FormatCurrency(r.TotalMonthlyPayment)},
			{"Down Payment", FormatPercentage(r.DownPaymentPercentage)},
			{"Monthly PMI", FormatCurrency(r.PMIMonthly)},
			{"Total Interest", FormatCurrency(r.TotalInterest)},
			{"Total Payments", FormatCurrency(r.TotalPayments)},
			{"Total Cost", FormatCurrency(r.TotalCost)},
			{"Debt-to-Income", FormatPercentage(r.DebtToIncomeRatio)},
		},
		Notes:  insightNotes(r.Insights),
		XLabel: "Year",
		Result: r,
	}
	if r.PMIRemovalYear > 0 {
		doc.Summary = append(doc.Summary, Field{"PMI Removed In Year", strconv.Itoa(r.PMIRemovalYear)})
	}

	schedule := Table{
		Title:  "Amortization Schedule",
		Header: []string{"Year", "Beginning Balance", "Payments", "Principal", "Interest", "PMI", "Ending Balance"},
	}
	balance := Series{Name: "Remaining Balance", X: []float64{0}, Y: []float64{money.Float(r.Principal)}}
	interest := Series{Name: "Cumulative Interest", X: []float64{0}, Y: []float64{0}, Dashed: true}
	cumulative := decimal.Zero
	for _, y := range r.AmortizationSchedule {
		schedule.Rows = append(schedule.Rows, []string{
			strconv.Itoa(y.Year),
			amount(y.BeginningBalance),
			amount(y.TotalPayment),
			amount(y.PrincipalPaid),
			amount(y.InterestPaid),
			amount(y.PMIPaid),
			amount(y.EndingBalance),
		})
		cumulative = cumulative.Add(y.InterestPaid)
		balance.X = append(balance.X, float64(y.Year))
		balance.Y = append(balance.Y, money.Float(y.EndingBalance))
		interest.X = append(interest.X, float64(y.Year))
		interest.Y = append(interest.Y, money.Float(cumulative))
	}
	doc.Tables = []Table{schedule}
	doc.Series = []Series{balance, interest}
	return doc
}

// FromCompoundInterest lays out a growth projection with its comparison
// scenarios.
func FromCompoundInterest(r *domain.CompoundInterestResult) *Document {
	doc := &Document{
		Kind:  domain.KindCompoundInterest,
		Title: "Compound Interest Projection",
		Summary: []Field{
			{"Final Amount", FormatCurrency(r.FinalAmount)},
			{"Total Contributions", FormatCurrency(r.TotalContributions)},
			{"Interest Earned", FormatCurrency(r.InterestEarned)},
			{"Effective Rate", FormatPercentage(r.EffectiveRate)},
			{"Real Rate", FormatPercentage(r.RealRate)},
			{"Inflation Adjusted Balance", FormatCurrency(r.InflationAdjustedBalance)},
			{"Purchasing Power Loss", FormatCurrency(r.PurchasingPowerLoss)},
		},
		Notes:  insightNotes(r.Insights),
		XLabel: "Year",
		Result: r,
	}

	projection := Table{
		Title:  "Yearly Projection",
		Header: []string{"Year", "Balance", "Contributions", "Interest", "Monthly Contribution"},
	}
	principal := r.Inputs.Principal
	balance := Series{Name: "Balance", X: []float64{0}, Y: []float64{principal}}
	contributions := Series{Name: "Contributions", X: []float64{0}, Y: []float64{principal}, Dashed: true}
	for _, y := range r.YearlyProjections {
		projection.Rows = append(projection.Rows, []string{
			strconv.Itoa(y.Year),
			amount(y.Balance),
			amount(y.Contributions),
			amount(y.Interest),
			amount(y.MonthlyContribution),
		})
		balance.X = append(balance.X, float64(y.Year))
		balance.Y = append(balance.Y, money.Float(y.Balance))
		contributions.X = append(contributions.X, float64(y.Year))
		contributions.Y = append(contributions.Y, money.Float(y.Contributions))
	}

	comparison := Table{
		Title:  "Comparison Scenarios",
		Header: []string{"Scenario", "Final Balance", "Difference", "Description"},
	}
	for _, s := range r.ComparisonScenarios {
		comparison.Rows = append(comparison.Rows, []string{s.Name, amount(s.FinalBalance), amount(s.Difference), s.Description})
	}

	doc.Tables = []Table{projection, comparison}
	doc.Series = []Series{balance, contributions}
	return doc
}

// FromRetirement lays out a retirement projection, withdrawal strategies
// and catch-up options.
func FromRetirement(r *domain.RetirementResult) *Document {
	doc := &Document{
		Kind:  domain.KindRetirement,
		Title: "Retirement Readiness",
		Summary: []Field{
			{"Years To Retirement", strconv.Itoa(r.YearsToRetirement)},
			{"Years In Retirement", strconv.Itoa(r.YearsInRetirement)},
			{"Projected Savings", FormatCurrency(r.ProjectedSavings)},
			{"Total Contributions", FormatCurrency(r.TotalContributions)},
			{"Interest Earned", FormatCurrency(r.InterestEarned)},
			{"Required Savings", FormatCurrency(r.RequiredSavings)},
			{"Savings Gap", FormatCurrency(r.SavingsGap)},
			{"Inflation Adjusted Goal", FormatCurrency(r.InflationAdjustedGoal)},
			{"Readiness", fmt.Sprintf("%d (%s)", r.ReadinessScore, r.ReadinessLevel)},
		},
		Notes:           []Note{{Kind: "info", Title: r.ReadinessLevel, Text: r.ReadinessDescription}},
		Recommendations: r.Recommendations,
		XLabel:          "Age",
		Result:          r,
	}

	projection := Table{
		Title:  "Savings Projection",
		Header: []string{"Year", "Age", "Balance", "Contributions", "Interest"},
	}
	start := float64(r.CurrentAge)
	savings := Series{Name: "Savings", X: []float64{start}, Y: []float64{money.Float(r.CurrentSavings)}}
	contributed := Series{Name: "Contributions", X: []float64{start}, Y: []float64{money.Float(r.CurrentSavings)}, Dashed: true}
	for _, y := range r.YearlyProjections {
		projection.Rows = append(projection.Rows, []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.Age),
			amount(y.Balance),
			amount(y.Contributions),
			amount(y.Interest),
		})
		savings.X = append(savings.X, float64(y.Age))
		savings.Y = append(savings.Y, money.Float(y.Balance))
		contributed.X = append(contributed.X, float64(y.Age))
		contributed.Y = append(contributed.Y, money.Float(y.Contributions))
	}

	withdrawals := Table{
		Title:  "Withdrawal Strategies",
		Header: []string{"Method", "Rate", "Annual", "Monthly", "Years Sustainable"},
	}
	for _, w := range r.WithdrawalScenarios {
		years := "indefinite"
		if w.YearsSustainable != nil {
			years = w.YearsSustainable.StringFixed(1)
		}
		withdrawals.Rows = append(withdrawals.Rows, []string{
			w.Method, FormatPercentage(w.WithdrawalRate), amount(w.AnnualWithdrawal), amount(w.MonthlyWithdrawal), years,
		})
	}

	catchUp := Table{
		Title:  "Catch-Up Options",
		Header: []string{"Scenario", "Additional Monthly", "Required Return", "New Retirement Age", "Achievable Income", "Description"},
	}
	for _, c := range r.CatchUpScenarios {
		age := ""
		if c.NewRetirementAge != nil {
			age = strconv.Itoa(*c.NewRetirementAge)
		}
		catchUp.Rows = append(catchUp.Rows, []string{
			c.Scenario,
			optionalAmount(c.AdditionalMonthlySavings),
			optionalAmount(c.RequiredReturnRate),
			age,
			optionalAmount(c.AchievableIncome),
			c.Description,
		})
	}

	doc.Tables = []Table{projection, withdrawals}
	if len(catchUp.Rows) > 0 {
		doc.Tables = append(doc.Tables, catchUp)
	}
	doc.Series = []Series{savings, contributed}
	return doc
}

// FromNetWorth lays out the balance sheet and the twelve month trend.
func FromNetWorth(r *domain.NetWorthResult) *Document {
	doc := &Document{
		Kind:  domain.KindNetWorth,
		Title: "Net Worth Statement",
		Summary: []Field{
			{"Total Assets", FormatCurrency(r.TotalAssets)},
			{"Total Liabilities", FormatCurrency(r.TotalLiabilities)},
			{"Net Worth", FormatCurrency(r.CurrentNetWorth)},
		},
		XLabel: "Month",
		Result: r,
	}
	for _, in := range r.Insights {
		doc.Notes = append(doc.Notes, Note{Kind: string(in.Type), Title: in.Title, Text: in.Description})
	}

	sheet := Table{
		Title:  "Balance Sheet",
		Header: []string{"Side", "Category", "Amount", "Share"},
	}
	for _, item := range r.Assets.Breakdown {
		sheet.Rows = append(sheet.Rows, []string{"Asset", item.Name, amount(item.Amount), FormatPercentage(item.Percentage)})
	}
	for _, item := range r.Liabilities.Breakdown {
		sheet.Rows = append(sheet.Rows, []string{"Liability", item.Name, amount(item.Amount), FormatPercentage(item.Percentage)})
	}

	trend := Table{Title: "Monthly Trend", Header: []string{"Month", "Net Worth"}}
	series := Series{Name: "Net Worth"}
	for i, p := range r.MonthlyTrends {
		trend.Rows = append(trend.Rows, []string{p.Month, amount(p.NetWorth)})
		doc.XLabels = append(doc.XLabels, p.Month)
		series.X = append(series.X, float64(i))
		series.Y = append(series.Y, money.Float(p.NetWorth))
	}

	doc.Tables = []Table{sheet, trend}
	doc.Series = []Series{series}
	return doc
}
