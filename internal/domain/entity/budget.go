// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the period type for a spending budget.
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Budget represents a per-category spending limit in the QUANTA system.
type Budget struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CategoryID    uuid.UUID
	LimitAmount   decimal.Decimal
	AlertOnExceed bool
	Period        BudgetPeriod
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewBudget creates a new Budget entity.
func NewBudget(userID, categoryID uuid.UUID, limitAmount decimal.Decimal, alertOnExceed bool, period BudgetPeriod) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:            uuid.New(),
		UserID:        userID,
		CategoryID:    categoryID,
		LimitAmount:   limitAmount,
		AlertOnExceed: alertOnExceed,
		Period:        period,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// BudgetWithSpending represents a budget with its category and the
// spending accumulated within the current period.
type BudgetWithSpending struct {
	Budget          *Budget
	Category        *Category
	CurrentSpending decimal.Decimal
}

// IsExceeded reports whether current spending is over the limit.
func (b *BudgetWithSpending) IsExceeded() bool {
	return b.CurrentSpending.GreaterThan(b.Budget.LimitAmount)
}
