package calculation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/pkg/money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// categoryGroup maps input category keys onto one breakdown line.
type categoryGroup struct {
	name string
	keys []string
}

// Asset groups in breakdown order. Houses also receive every houses[].value.
var assetGroups = []categoryGroup{
	{name: "Cash & Savings", keys: []string{"cash_savings", "checking_accounts", "savings_accounts"}},
	{name: "Investment Accounts", keys: []string{"investment_accounts"}},
	{name: "Retirement Accounts", keys: []string{"retirement_accounts"}},
	{name: "Houses", keys: []string{"primary_residence"}},
	{name: "Rental Properties", keys: []string{"rental_properties"}},
	{name: "Other Real Estate", keys: []string{"real_estate"}},
	{name: "Vehicles", keys: []string{"vehicles"}},
	{name: "Other Assets", keys: []string{"other_assets"}},
}

// Liability groups in breakdown order. House Mortgages and Home Equity Loans
// also receive the matching houses[] amounts.
var liabilityGroups = []categoryGroup{
	{name: "House Mortgages", keys: []string{"mortgage"}},
	{name: "Home Equity Loans", keys: []string{"home_equity_loan"}},
	{name: "Rental Mortgages", keys: []string{"rental_mortgages"}},
	{name: "Credit Cards", keys: []string{"credit_cards"}},
	{name: "Student Loans", keys: []string{"student_loans"}},
	{name: "Car Loans", keys: []string{"car_loans"}},
	{name: "Personal Loans", keys: []string{"personal_loans"}},
	{name: "Other Debt", keys: []string{"other_debt"}},
}

var (
	monthNames     = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	trendFactors12 = []float64{0.92, 0.94, 0.96, 0.97, 0.98, 0.99, 1.00, 1.01, 1.02, 1.01, 1.00, 1}
	trendFactors6  = []float64{0.95, 0.97, 0.98, 0.99, 1.01, 1}
)

var titleCaser = cases.Title(language.English)

// categoryLabel turns an unrecognised key such as "crypto_wallet" into
// "Crypto Wallet".
func categoryLabel(key string) string {
	return titleCaser.String(strings.ReplaceAll(strings.TrimSpace(key), "_", " "))
}

type sheetLine struct {
	name   string
	amount decimal.Decimal
}

// balanceSheet holds the grouped lines and the housing totals in cents.
type balanceSheet struct {
	in          domain.NetWorthInput
	houses      decimal.Decimal
	mortgages   decimal.Decimal
	equityLoans decimal.Decimal
	assets      []sheetLine
	liabilities []sheetLine
}

func (b balanceSheet) asset(key string) decimal.Decimal {
	return money.Cents(b.in.Assets[key])
}

func (b balanceSheet) liability(key string) decimal.Decimal {
	return money.Cents(b.in.Liabilities[key])
}

func sumLines(lines []sheetLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.amount)
	}
	return total
}

// groupCategories folds known keys into their group lines, adds the extra
// amounts per group name and appends unknown keys in name order.
func groupCategories(values map[string]float64, groups []categoryGroup, extra map[string]decimal.Decimal) []sheetLine {
	known := make(map[string]bool)
	lines := make([]sheetLine, 0, len(groups)+len(values))
	for _, grp := range groups {
		amount := extra[grp.name]
		for _, k := range grp.keys {
			known[k] = true
			amount = amount.Add(money.Cents(values[k]))
		}
		lines = append(lines, sheetLine{name: grp.name, amount: amount})
	}

	others := make([]string, 0)
	for k := range values {
		if !known[k] {
			others = append(others, k)
		}
	}
	sort.Strings(others)
	for _, k := range others {
		lines = append(lines, sheetLine{name: categoryLabel(k), amount: money.Cents(values[k])})
	}
	return lines
}

func newBalanceSheet(in domain.NetWorthInput) balanceSheet {
	b := balanceSheet{in: in}
	for _, h := range in.Houses {
		b.houses = b.houses.Add(money.Cents(h.Value))
		b.mortgages = b.mortgages.Add(money.Cents(h.Mortgage))
		b.equityLoans = b.equityLoans.Add(money.Cents(h.EquityLoan))
	}
	b.assets = groupCategories(in.Assets, assetGroups,
		map[string]decimal.Decimal{"Houses": b.houses})
	b.liabilities = groupCategories(in.Liabilities, liabilityGroups,
		map[string]decimal.Decimal{"House Mortgages": b.mortgages, "Home Equity Loans": b.equityLoans})

	// Legacy single-home keys count with the houses list.
	b.houses = b.houses.Add(b.asset("primary_residence"))
	b.mortgages = b.mortgages.Add(b.liability("mortgage"))
	b.equityLoans = b.equityLoans.Add(b.liability("home_equity_loan"))
	return b
}

func breakdown(lines []sheetLine, total decimal.Decimal) domain.Breakdown {
	items := make([]domain.BreakdownItem, 0, len(lines))
	for _, l := range lines {
		if !l.amount.IsPositive() {
			continue
		}
		items = append(items, domain.BreakdownItem{
			Name:       l.name,
			Amount:     l.amount,
			Percentage: money.Share(l.amount, total),
		})
	}
	return domain.Breakdown{Total: total, Breakdown: items}
}

func trend(netWorth decimal.Decimal, factors []float64) []domain.TrendPoint {
	points := make([]domain.TrendPoint, 0, len(factors))
	for i, f := range factors {
		points = append(points, domain.TrendPoint{
			Month:    monthNames[i],
			NetWorth: netWorth.Mul(decimal.NewFromFloat(f)).Round(2),
		})
	}
	return points
}

type netWorthFacts struct {
	sheet       balanceSheet
	assets      decimal.Decimal
	liabilities decimal.Decimal
	netWorth    decimal.Decimal
}

// exceedsShare reports whether amount is above fraction of total assets.
func (f netWorthFacts) exceedsShare(amount decimal.Decimal, fraction float64) bool {
	return amount.GreaterThan(f.assets.Mul(decimal.NewFromFloat(fraction)))
}

// belowShare reports whether amount is under fraction of total assets.
func (f netWorthFacts) belowShare(amount decimal.Decimal, fraction float64) bool {
	return amount.LessThan(f.assets.Mul(decimal.NewFromFloat(fraction)))
}

func (f netWorthFacts) cash() decimal.Decimal {
	return money.Sum(f.sheet.asset("cash_savings"), f.sheet.asset("checking_accounts"), f.sheet.asset("savings_accounts"))
}

func (f netWorthFacts) homeEquityPercent() float64 {
	equity := f.sheet.houses.Sub(f.sheet.mortgages).Sub(f.sheet.equityLoans)
	return money.Float(money.Share(equity, f.sheet.houses))
}

var netWorthRules = []rule[netWorthFacts, domain.NetWorthInsight]{
	{
		name: "positive_net_worth",
		when: func(f netWorthFacts) bool { return !f.netWorth.IsNegative() },
		build: func(f netWorthFacts) domain.NetWorthInsight {
			return domain.NetWorthInsight{
				Type:        domain.InsightPositive,
				Title:       "Positive Net Worth",
				Description: fmt.Sprintf("Great job! Your net worth is $%s. You're building wealth effectively.", formatWhole(money.Float(f.netWorth))),
			}
		},
	},
	{
		name: "negative_net_worth",
		when: func(f netWorthFacts) bool { return f.netWorth.IsNegative() },
		build: func(f netWorthFacts) domain.NetWorthInsight {
			return domain.NetWorthInsight{
				Type:        domain.InsightWarning,
				Title:       "Negative Net Worth",
				Description: fmt.Sprintf("Your net worth is $%s in the negative. Focus on debt reduction and building assets.", formatWhole(money.Float(f.netWorth.Abs()))),
			}
		},
	},
	{
		name: "high_credit_card_debt",
		when: func(f netWorthFacts) bool {
			cc := f.sheet.liability("credit_cards")
			return cc.IsPositive() && f.exceedsShare(cc, CreditCardShareLimit)
		},
		build: func(netWorthFacts) domain.NetWorthInsight {
			return domain.NetWorthInsight{
				Type:        domain.InsightWarning,
				Title:       "High Credit Card Debt",
				Description: "Credit card debt represents a significant portion of your liabilities. Consider paying down high-interest debt first.",
			}
		},
	},
	{
		name: "low_cash_reserves",
		when: func(f netWorthFacts) bool { return f.belowShare(f.cash(), CashReserveShareFloor) },
		build: func(netWorthFacts) domain.NetWorthInsight {
			return domain.NetWorthInsight{
				Type:        domain.InsightInfo,
				Title:       "Low Cash Reserves",
				Description: "Consider building up your emergency fund to cover 3-6 months of expenses.",
			}
		},
	},
	{
		name: "low_retirement_savings",
		when: func(f netWorthFacts) bool {
			r := f.sheet.asset("retirement_accounts")
			return r.IsPositive() && f.belowShare(r, RetirementShareFloor)
		},
		build: func(netWorthFacts) domain.NetWorthInsight {
			return domain.NetWorthInsight{
				Type:        domain.InsightInfo,
				Title:       "Retirement Savings",
				Description: "Consider increasing your retirement contributions to ensure long-term financial security.",
			}
		},
	},
	{
		name: "low_home_equity",
		when: func(f netWorthFacts) bool {
			return f.sheet.houses.IsPositive() && f.sheet.mortgages.IsPositive() && f.homeEquityPercent() < LowHomeEquityPercent
		},
		build: func(f netWorthFacts) domain.NetWorthInsight {
			return domain.NetWorthInsight{
				Type:        domain.InsightWarning,
				Title:       "Low Home Equity",
				Description: fmt.Sprintf("Your home equity is %.1f%%. Consider building equity before taking on additional home debt.", f.homeEquityPercent()),
			}
		},
	},
	{
		name: "strong_home_equity",
		when: func(f netWorthFacts) bool {
			return f.sheet.houses.IsPositive() && f.sheet.mortgages.IsPositive() && f.homeEquityPercent() > StrongHomeEquityPercent
		},
		build: func(f netWorthFacts) domain.NetWorthInsight {
			return domain.NetWorthInsight{
				Type:        domain.InsightPositive,
				Title:       "Strong Home Equity",
				Description: fmt.Sprintf("Great job! You have %.1f%% equity in your homes, providing a solid financial foundation.", f.homeEquityPercent()),
			}
		},
	},
	{
		name: "home_equity_loans",
		when: func(f netWorthFacts) bool { return f.sheet.equityLoans.IsPositive() },
		build: func(netWorthFacts) domain.NetWorthInsight {
			return domain.NetWorthInsight{
				Type:        domain.InsightInfo,
				Title:       "Home Equity Loans",
				Description: "Monitor your home equity loan balances. Consider paying them down to maintain home equity.",
			}
		},
	},
	{
		name: "rental_property_debt",
		when: func(f netWorthFacts) bool {
			props, debt := f.sheet.asset("rental_properties"), f.sheet.liability("rental_mortgages")
			return props.IsPositive() && debt.IsPositive() && props.LessThan(debt)
		},
		build: func(netWorthFacts) domain.NetWorthInsight {
			return domain.NetWorthInsight{
				Type:        domain.InsightWarning,
				Title:       "Rental Property Debt",
				Description: "Your rental properties have negative equity. Review your rental strategy and property values.",
			}
		},
	},
	{
		name: "rental_property_equity",
		when: func(f netWorthFacts) bool {
			props, debt := f.sheet.asset("rental_properties"), f.sheet.liability("rental_mortgages")
			return props.IsPositive() && debt.IsPositive() && !props.LessThan(debt)
		},
		build: func(f netWorthFacts) domain.NetWorthInsight {
			equity := f.sheet.asset("rental_properties").Sub(f.sheet.liability("rental_mortgages"))
			return domain.NetWorthInsight{
				Type:        domain.InsightPositive,
				Title:       "Rental Property Equity",
				Description: fmt.Sprintf("Your rental properties have $%s in equity, contributing to your net worth.", formatWhole(money.Float(equity))),
			}
		},
	},
	{
		name: "real_estate_concentration",
		when: func(f netWorthFacts) bool {
			return f.exceedsShare(f.sheet.houses.Add(f.sheet.asset("rental_properties")), RealEstateShareLimit)
		},
		build: func(netWorthFacts) domain.NetWorthInsight {
			return domain.NetWorthInsight{
				Type:        domain.InsightInfo,
				Title:       "Real Estate Concentration",
				Description: "Real estate represents a large portion of your assets. Consider diversifying your portfolio.",
			}
		},
	},
}

// CalculateNetWorth aggregates assets, liabilities and owned houses into
// totals, percentage breakdowns and insights. Sums are exact in cents so net
// worth always equals assets minus liabilities.
func CalculateNetWorth(in domain.NetWorthInput) (*domain.NetWorthResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	sheet := newBalanceSheet(in)
	totalAssets := sumLines(sheet.assets)
	totalLiabilities := sumLines(sheet.liabilities)
	netWorth := totalAssets.Sub(totalLiabilities)

	facts := netWorthFacts{
		sheet:       sheet,
		assets:      totalAssets,
		liabilities: totalLiabilities,
		netWorth:    netWorth,
	}

	return &domain.NetWorthResult{
		CurrentNetWorth:  netWorth,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		Assets:           breakdown(sheet.assets, totalAssets),
		Liabilities:      breakdown(sheet.liabilities, totalLiabilities),
		MonthlyTrends:    trend(netWorth, trendFactors12),
		MonthlyTrends6:   trend(netWorth, trendFactors6),
		Insights:         evaluate(netWorthRules, facts),
	}, nil
}
