package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// House is one owned home and the debt secured against it.
type House struct {
	Value      float64 `json:"value" yaml:"value"`
	Mortgage   float64 `json:"mortgage" yaml:"mortgage"`
	EquityLoan float64 `json:"equity_loan" yaml:"equity_loan"`
}

// NetWorthInput maps asset and liability categories to amounts. Known
// categories are grouped into named breakdown lines; anything else is
// reported under its own name.
type NetWorthInput struct {
	Assets      map[string]float64 `json:"assets" yaml:"assets"`
	Liabilities map[string]float64 `json:"liabilities" yaml:"liabilities"`
	Houses      []House            `json:"houses" yaml:"houses"`
}

// Validate checks that every amount is finite and non-negative. Categories
// are checked in key order so the reported field is deterministic.
func (in NetWorthInput) Validate() error {
	if err := checkCategories("assets", in.Assets); err != nil {
		return err
	}
	if err := checkCategories("liabilities", in.Liabilities); err != nil {
		return err
	}
	for i, h := range in.Houses {
		prefix := fmt.Sprintf("houses[%d]", i)
		if err := firstError(
			checkAmount(prefix+".value", h.Value),
			checkAmount(prefix+".mortgage", h.Mortgage),
			checkAmount(prefix+".equity_loan", h.EquityLoan),
		); err != nil {
			return err
		}
	}
	return nil
}

func checkCategories(group string, values map[string]float64) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == "" {
			return NewValidationError(group, "category name cannot be empty")
		}
		if err := checkAmount(group+"."+k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

// BreakdownItem is one non-zero category line.
type BreakdownItem struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Breakdown is a total and its category lines.
type Breakdown struct {
	Total     decimal.Decimal `json:"total"`
	Breakdown []BreakdownItem `json:"breakdown"`
}

// TrendPoint is one month of the illustrative net worth trend.
type TrendPoint struct {
	Month    string          `json:"month"`
	NetWorth decimal.Decimal `json:"netWorth"`
}

// NetWorthInsight is a rule-generated observation about a balance sheet.
type NetWorthInsight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}

// NetWorthResult is the aggregated balance sheet. The monthly trends are
// illustrative factors applied to the current net worth, not history.
type NetWorthResult struct {
	CurrentNetWorth  decimal.Decimal   `json:"currentNetWorth"`
	TotalAssets      decimal.Decimal   `json:"totalAssets"`
	TotalLiabilities decimal.Decimal   `json:"totalLiabilities"`
	Assets           Breakdown         `json:"assets"`
	Liabilities      Breakdown         `json:"liabilities"`
	MonthlyTrends    []TrendPoint      `json:"monthlyTrends"`
	MonthlyTrends6   []TrendPoint      `json:"monthlyTrends6"`
	Insights         []NetWorthInsight `json:"insights"`
}

// NetWorthSnapshot is a saved net worth calculation.
type NetWorthSnapshot struct {
	ID               string          `json:"id"`
	Label            string          `json:"label,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	Input            NetWorthInput   `json:"input"`
	NetWorth         decimal.Decimal `json:"net_worth"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
}
