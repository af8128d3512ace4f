package calculation

import (
	"testing"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func householdSheet() domain.NetWorthInput {
	return domain.NetWorthInput{
		Assets: map[string]float64{
			"cash_savings":        15000.10,
			"checking_accounts":   4200.33,
			"investment_accounts": 82000,
			"retirement_accounts": 140000.45,
			"vehicles":            18000,
		},
		Liabilities: map[string]float64{
			"credit_cards":  3200.70,
			"student_loans": 21000,
			"car_loans":     9000.01,
		},
		Houses: []domain.House{
			{Value: 420000, Mortgage: 280000, EquityLoan: 15000},
		},
	}
}

func lineNames(b domain.Breakdown) []string {
	names := make([]string, 0, len(b.Breakdown))
	for _, item := range b.Breakdown {
		names = append(names, item.Name)
	}
	return names
}

func lineAmount(b domain.Breakdown, name string) decimal.Decimal {
	for _, item := range b.Breakdown {
		if item.Name == name {
			return item.Amount
		}
	}
	return decimal.Zero
}

func netWorthTitles(insights []domain.NetWorthInsight) []string {
	titles := make([]string, 0, len(insights))
	for _, i := range insights {
		titles = append(titles, i.Title)
	}
	return titles
}

func TestCalculateNetWorth_Totals(t *testing.T) {
	result, err := CalculateNetWorth(householdSheet())
	require.NoError(t, err)

	assert.True(t, result.TotalAssets.Equal(decimal.RequireFromString("679200.88")), "assets %s", result.TotalAssets)
	assert.True(t, result.TotalLiabilities.Equal(decimal.RequireFromString("328200.71")), "liabilities %s", result.TotalLiabilities)
	assert.True(t, result.CurrentNetWorth.Equal(result.TotalAssets.Sub(result.TotalLiabilities)))
	assert.True(t, result.Assets.Total.Equal(result.TotalAssets))
	assert.True(t, result.Liabilities.Total.Equal(result.TotalLiabilities))

	assert.True(t, lineAmount(result.Assets, "Cash & Savings").Equal(decimal.RequireFromString("19200.43")))
	assert.True(t, lineAmount(result.Assets, "Houses").Equal(decimal.NewFromInt(420000)))
	assert.True(t, lineAmount(result.Liabilities, "House Mortgages").Equal(decimal.NewFromInt(280000)))
	assert.True(t, lineAmount(result.Liabilities, "Home Equity Loans").Equal(decimal.NewFromInt(15000)))

	assert.Equal(t, []string{"Cash & Savings", "Investment Accounts", "Retirement Accounts", "Houses", "Vehicles"}, lineNames(result.Assets))
}

func TestCalculateNetWorth_PercentagesSumToHundred(t *testing.T) {
	inputs := map[string]domain.NetWorthInput{
		"household": householdSheet(),
		"thirds": {
			Assets:      map[string]float64{"cash_savings": 1, "vehicles": 1, "other_assets": 1},
			Liabilities: map[string]float64{"credit_cards": 1, "car_loans": 2},
		},
		"single line": {
			Assets: map[string]float64{"investment_accounts": 123.45},
		},
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			result, err := CalculateNetWorth(in)
			require.NoError(t, err)
			for _, b := range []domain.Breakdown{result.Assets, result.Liabilities} {
				if len(b.Breakdown) == 0 {
					continue
				}
				sum := decimal.Zero
				for _, item := range b.Breakdown {
					assert.True(t, item.Amount.IsPositive())
					sum = sum.Add(item.Percentage)
				}
				assert.InDelta(t, 100, sum.InexactFloat64(), 0.1)
			}
		})
	}
}

func TestCalculateNetWorth_Houses(t *testing.T) {
	tests := []struct {
		name          string
		houses        []domain.House
		houseTotal    string
		mortgageTotal string
	}{
		{name: "no houses", houseTotal: "0", mortgageTotal: "0"},
		{
			name:          "one house",
			houses:        []domain.House{{Value: 300000, Mortgage: 200000}},
			houseTotal:    "300000",
			mortgageTotal: "200000",
		},
		{
			name: "several houses",
			houses: []domain.House{
				{Value: 300000, Mortgage: 200000},
				{Value: 150000.50, Mortgage: 0, EquityLoan: 10000},
				{Value: 0, Mortgage: 5000},
			},
			houseTotal:    "450000.5",
			mortgageTotal: "205000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := domain.NetWorthInput{
				Assets: map[string]float64{"cash_savings": 50000},
				Houses: tt.houses,
			}
			result, err := CalculateNetWorth(in)
			require.NoError(t, err)

			assert.True(t, lineAmount(result.Assets, "Houses").Equal(decimal.RequireFromString(tt.houseTotal)))
			assert.True(t, lineAmount(result.Liabilities, "House Mortgages").Equal(decimal.RequireFromString(tt.mortgageTotal)))
			if len(tt.houses) == 0 {
				assert.NotContains(t, lineNames(result.Assets), "Houses")
				assert.Empty(t, result.Liabilities.Breakdown)
			}
			assert.True(t, result.CurrentNetWorth.Equal(result.TotalAssets.Sub(result.TotalLiabilities)))
		})
	}
}

func TestCalculateNetWorth_LegacyHomeKeys(t *testing.T) {
	in := domain.NetWorthInput{
		Assets:      map[string]float64{"primary_residence": 250000},
		Liabilities: map[string]float64{"mortgage": 225000},
		Houses:      []domain.House{{Value: 100000}},
	}
	result, err := CalculateNetWorth(in)
	require.NoError(t, err)

	assert.True(t, lineAmount(result.Assets, "Houses").Equal(decimal.NewFromInt(350000)))
	assert.True(t, lineAmount(result.Liabilities, "House Mortgages").Equal(decimal.NewFromInt(225000)))
	// equity is (350000 - 225000) / 350000, about 35.7%
	titles := netWorthTitles(result.Insights)
	assert.NotContains(t, titles, "Low Home Equity")
	assert.NotContains(t, titles, "Strong Home Equity")
	assert.Contains(t, titles, "Real Estate Concentration")
}

func TestCalculateNetWorth_UnknownCategories(t *testing.T) {
	in := domain.NetWorthInput{
		Assets: map[string]float64{
			"cash_savings":  1000,
			"crypto_wallet": 500,
			"art":           250,
		},
		Liabilities: map[string]float64{"tax_bill": 100},
	}
	result, err := CalculateNetWorth(in)
	require.NoError(t, err)

	assert.Equal(t, []string{"Cash & Savings", "Art", "Crypto Wallet"}, lineNames(result.Assets))
	assert.Equal(t, []string{"Tax Bill"}, lineNames(result.Liabilities))
	assert.True(t, result.TotalAssets.Equal(decimal.NewFromInt(1750)))
	assert.True(t, result.CurrentNetWorth.Equal(decimal.NewFromInt(1650)))
}

func TestCalculateNetWorth_Empty(t *testing.T) {
	result, err := CalculateNetWorth(domain.NetWorthInput{})
	require.NoError(t, err)

	assert.True(t, result.CurrentNetWorth.IsZero())
	assert.Empty(t, result.Assets.Breakdown)
	assert.Empty(t, result.Liabilities.Breakdown)
	assert.Len(t, result.MonthlyTrends, 12)
	assert.Len(t, result.MonthlyTrends6, 6)
	assert.Equal(t, []string{"Positive Net Worth"}, netWorthTitles(result.Insights))
}

func TestCalculateNetWorth_Trends(t *testing.T) {
	result, err := CalculateNetWorth(householdSheet())
	require.NoError(t, err)

	require.Len(t, result.MonthlyTrends, 12)
	require.Len(t, result.MonthlyTrends6, 6)
	assert.Equal(t, "Jan", result.MonthlyTrends[0].Month)
	assert.Equal(t, "Dec", result.MonthlyTrends[11].Month)
	assert.True(t, result.MonthlyTrends[11].NetWorth.Equal(result.CurrentNetWorth))
	assert.True(t, result.MonthlyTrends6[5].NetWorth.Equal(result.CurrentNetWorth))
	assert.True(t, result.MonthlyTrends[0].NetWorth.LessThan(result.CurrentNetWorth))
}

func TestCalculateNetWorth_Insights(t *testing.T) {
	tests := []struct {
		name     string
		in       domain.NetWorthInput
		expected []string
		absent   []string
	}{
		{
			name: "break even",
			in: domain.NetWorthInput{
				Assets:      map[string]float64{"cash_savings": 5000},
				Liabilities: map[string]float64{"student_loans": 5000},
			},
			expected: []string{"Positive Net Worth"},
			absent:   []string{"Negative Net Worth"},
		},
		{
			name:     "household",
			in:       householdSheet(),
			expected: []string{"Positive Net Worth", "Home Equity Loans"},
			absent:   []string{"Negative Net Worth", "High Credit Card Debt", "Low Home Equity"},
		},
		{
			name: "credit card heavy",
			in: domain.NetWorthInput{
				Assets:      map[string]float64{"cash_savings": 1000, "vehicles": 9000},
				Liabilities: map[string]float64{"credit_cards": 20000},
			},
			expected: []string{"Negative Net Worth", "High Credit Card Debt"},
			absent:   []string{"Positive Net Worth"},
		},
		{
			name: "thin cash and retirement",
			in: domain.NetWorthInput{
				Assets: map[string]float64{"cash_savings": 500, "retirement_accounts": 1000, "investment_accounts": 98500},
			},
			expected: []string{"Positive Net Worth", "Low Cash Reserves", "Retirement Savings"},
		},
		{
			name: "underwater home",
			in: domain.NetWorthInput{
				Assets: map[string]float64{"cash_savings": 100000},
				Houses: []domain.House{{Value: 200000, Mortgage: 190000}},
			},
			expected: []string{"Low Home Equity"},
			absent:   []string{"Strong Home Equity", "Home Equity Loans"},
		},
		{
			name: "paid down home",
			in: domain.NetWorthInput{
				Assets: map[string]float64{"cash_savings": 100000},
				Houses: []domain.House{{Value: 400000, Mortgage: 100000}},
			},
			expected: []string{"Strong Home Equity", "Real Estate Concentration"},
		},
		{
			name: "rentals underwater",
			in: domain.NetWorthInput{
				Assets:      map[string]float64{"rental_properties": 300000, "cash_savings": 500000},
				Liabilities: map[string]float64{"rental_mortgages": 350000},
			},
			expected: []string{"Rental Property Debt"},
			absent:   []string{"Rental Property Equity"},
		},
		{
			name: "rentals with equity",
			in: domain.NetWorthInput{
				Assets:      map[string]float64{"rental_properties": 300000, "cash_savings": 500000},
				Liabilities: map[string]float64{"rental_mortgages": 100000},
			},
			expected: []string{"Rental Property Equity"},
			absent:   []string{"Rental Property Debt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateNetWorth(tt.in)
			require.NoError(t, err)
			titles := netWorthTitles(result.Insights)
			for _, want := range tt.expected {
				assert.Contains(t, titles, want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, titles, unwanted)
			}
		})
	}
}

func TestCalculateNetWorth_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    domain.NetWorthInput
		field string
	}{
		{
			name:  "negative asset",
			in:    domain.NetWorthInput{Assets: map[string]float64{"vehicles": 10, "cash_savings": -1}},
			field: "assets.cash_savings",
		},
		{
			name:  "negative liability",
			in:    domain.NetWorthInput{Liabilities: map[string]float64{"credit_cards": -100}},
			field: "liabilities.credit_cards",
		},
		{
			name:  "empty category",
			in:    domain.NetWorthInput{Assets: map[string]float64{"": 5}},
			field: "assets",
		},
		{
			name: "negative house mortgage",
			in: domain.NetWorthInput{Houses: []domain.House{
				{Value: 100},
				{Value: 100, Mortgage: -1},
			}},
			field: "houses[1].mortgage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateNetWorth(tt.in)
			ve, ok := domain.AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
