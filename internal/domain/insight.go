// Package domain holds the input and result records of the projection
// engine together with their validation rules.
package domain

import "github.com/shopspring/decimal"

func init() {
	// Results carry money as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// InsightType classifies a generated insight for display.
type InsightType string

const (
	InsightSuccess  InsightType = "success"
	InsightWarning  InsightType = "warning"
	InsightInfo     InsightType = "info"
	InsightPositive InsightType = "positive"
)

// Insight is a rule-generated observation attached to calculator results.
type Insight struct {
	Type    InsightType `json:"type" yaml:"type"`
	Title   string      `json:"title" yaml:"title"`
	Message string      `json:"message" yaml:"message"`
}
