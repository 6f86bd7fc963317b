// Package budget contains spending budget use cases.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID uuid.UUID
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*entity.BudgetWithSpending
}

// ListBudgetsUseCase lists a user's budgets with the spending
// accumulated in the current period window.
type ListBudgetsUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute lists the budgets with spending.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	budgets, err := uc.budgetRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	now := uc.clock.Now()
	out := make([]*entity.BudgetWithSpending, 0, len(budgets))
	for _, b := range budgets {
		start, end := PeriodWindow(b.Period, now)
		spending, err := uc.budgetRepo.GetCurrentSpending(ctx, input.UserID, b.CategoryID, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to compute budget spending: %w", err)
		}

		category, err := uc.categoryRepo.FindByID(ctx, b.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to load budget category: %w", err)
		}

		out = append(out, &entity.BudgetWithSpending{
			Budget:          b,
			Category:        category,
			CurrentSpending: spending,
		})
	}

	return &ListBudgetsOutput{Budgets: out}, nil
}

// PeriodWindow returns the start and end of the period containing now:
// the calendar month, the ISO-agnostic Monday-to-Sunday week, or the
// calendar year.
func PeriodWindow(period entity.BudgetPeriod, now time.Time) (time.Time, time.Time) {
	switch period {
	case entity.BudgetPeriodWeekly:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday closes the week
		}
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(weekday - 1))
		return start, start.AddDate(0, 0, 7)
	case entity.BudgetPeriodYearly:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	}
}
