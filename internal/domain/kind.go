package domain

import (
	"fmt"
	"strings"
)

// CalculatorKind names one of the projection calculators.
type CalculatorKind string

const (
	KindMortgage         CalculatorKind = "mortgage"
	KindCompoundInterest CalculatorKind = "compound-interest"
	KindRetirement       CalculatorKind = "retirement"
	KindNetWorth         CalculatorKind = "net-worth"
)

var kindAliases = map[string]CalculatorKind{
	"mortgage":          KindMortgage,
	"compound-interest": KindCompoundInterest,
	"compound_interest": KindCompoundInterest,
	"compound":          KindCompoundInterest,
	"retirement":        KindRetirement,
	"net-worth":         KindNetWorth,
	"net_worth":         KindNetWorth,
	"networth":          KindNetWorth,
}

// CalculatorKinds lists the calculators in display order.
func CalculatorKinds() []CalculatorKind {
	return []CalculatorKind{KindMortgage, KindCompoundInterest, KindRetirement, KindNetWorth}
}

// ParseCalculatorKind resolves a kind name or one of its aliases.
func ParseCalculatorKind(name string) (CalculatorKind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown calculator %q (valid: mortgage, compound-interest, retirement, net-worth)", name)
}

// Title returns a human readable calculator name.
func (k CalculatorKind) Title() string {
	switch k {
	case KindMortgage:
		return "Mortgage"
	case KindCompoundInterest:
		return "Compound Interest"
	case KindRetirement:
		return "Retirement"
	case KindNetWorth:
		return "Net Worth"
	default:
		return string(k)
	}
}
