// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsStrategy classifies how demanding a savings plan is relative to
// the user's trailing average net savings.
type SavingsStrategy string

const (
	StrategyAggressive SavingsStrategy = "aggressive"
	StrategyModerate   SavingsStrategy = "moderate"
	StrategyRelaxed    SavingsStrategy = "relaxed"
)

// Milestone is one of the four fixed checkpoints (25/50/75/100%) on the
// way to a goal's target amount.
type Milestone struct {
	Percentage    int
	Amount        decimal.Decimal
	ProjectedDate time.Time
	IsCompleted   bool
}

// SavingsPlan is a derived, never-persisted projection of the savings
// cadence required to complete a goal. It is recomputed on demand from
// the goal and the trailing transaction window.
type SavingsPlan struct {
	GoalID              string
	Remaining           decimal.Decimal
	DailyTarget         decimal.Decimal
	WeeklyTarget        decimal.Decimal
	MonthlyTarget       decimal.Decimal
	AvgMonthlySavings   decimal.Decimal
	Strategy            SavingsStrategy
	IsOnTrack           bool
	ProjectedCompletion time.Time
	Milestones          []Milestone
}
