// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultGoalIcon is the default icon for savings goals.
const DefaultGoalIcon = "piggy-bank"

// DefaultGoalColor is the default color for savings goals.
const DefaultGoalColor = "#10B981"

// Contribution is one entry in a goal's append-only contribution history.
// Withdrawals are represented by removing an entry, not by negative
// amounts.
type Contribution struct {
	Date   time.Time
	Amount decimal.Decimal
}

// Goal represents a savings goal in the QUANTA system. CurrentAmount is
// expected to equal the sum of ContributionHistory amounts, but the two
// are written independently and the invariant is not enforced
// transactionally.
type Goal struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	Name                  string
	TargetAmount          decimal.Decimal
	CurrentAmount         decimal.Decimal
	Icon                  string
	Color                 string
	ContributionAmount    *decimal.Decimal
	ContributionFrequency Frequency
	TargetDate            *time.Time
	AutoDeduct            bool
	ContributionHistory   []Contribution
	LastContributionDate  *time.Time
	NextContributionDate  *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             *time.Time // Soft-delete support
}

// NewGoal creates a new Goal entity with zero saved amount.
func NewGoal(
	userID uuid.UUID,
	name string,
	targetAmount decimal.Decimal,
	icon, color string,
	frequency Frequency,
) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:                    uuid.New(),
		UserID:                userID,
		Name:                  name,
		TargetAmount:          targetAmount,
		CurrentAmount:         decimal.Zero,
		Icon:                  icon,
		Color:                 color,
		ContributionFrequency: frequency,
		ContributionHistory:   []Contribution{},
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// Remaining returns the amount still needed to reach the target, floored
// at zero.
func (g *Goal) Remaining() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsCompleted reports whether the goal has reached its target.
func (g *Goal) IsCompleted() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// NextContributionAfter returns the next contribution date one cadence
// period after the given time: 7 days for weekly, 14 for biweekly, one
// calendar month otherwise.
func (g *Goal) NextContributionAfter(from time.Time) time.Time {
	switch g.ContributionFrequency {
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return from.AddDate(0, 0, 14)
	default:
		return from.AddDate(0, 1, 0)
	}
}
