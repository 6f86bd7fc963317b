// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// CategorySpend is one entry in the top-categories breakdown of a
// financial analysis.
type CategorySpend struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// FinancialAnalysis is the AI-generated coaching snapshot for a user.
// It is produced by the coach service and cached; it is never treated as
// a source of truth for any balance or total.
type FinancialAnalysis struct {
	HealthScore     int             `json:"health_score"` // 0-100
	Summary         string          `json:"summary"`
	Recommendations []string        `json:"recommendations"`
	Strengths       []string        `json:"strengths"`
	Weaknesses      []string        `json:"weaknesses"`
	TopCategories   []CategorySpend `json:"top_categories"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// FinancialTips is the lighter-weight AI output: short actionable tips
// without the full analysis breakdown.
type FinancialTips struct {
	Tips        []string  `json:"tips"`
	GeneratedAt time.Time `json:"generated_at"`
}
