// Package dashboard contains the summary read-path use case.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/application/adapter"
)

// GetSummaryInput represents the input for the dashboard summary.
type GetSummaryInput struct {
	UserID uuid.UUID
}

// GetSummaryOutput represents the dashboard summary payload.
type GetSummaryOutput struct {
	// Balance is income minus expense over the whole ledger.
	Balance decimal.Decimal
	// MonthIncome and MonthExpense cover the current calendar month.
	MonthIncome  decimal.Decimal
	MonthExpense decimal.Decimal
	MonthNet     decimal.Decimal
	// AvgMonthlySavings is the trailing 3-month average net savings,
	// floored at zero. The savings projector and the coach prompt both
	// consume this number.
	AvgMonthlySavings decimal.Decimal
	// Goals snapshot for the overview cards.
	GoalCount      int
	GoalsCompleted int
	TotalSaved     decimal.Decimal
}

// GetSummaryUseCase aggregates the dashboard overview numbers.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	goalRepo        adapter.GoalRepository
	clock           adapter.Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	transactionRepo adapter.TransactionRepository,
	goalRepo adapter.GoalRepository,
	clock adapter.Clock,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		clock:           clock,
	}
}

// Execute computes the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	allTime, err := uc.transactionRepo.GetTotals(ctx, adapter.TransactionFilter{UserID: input.UserID})
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}

	now := uc.clock.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	month, err := uc.transactionRepo.GetTotals(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &monthStart,
		EndDate:   &monthEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute month totals: %w", err)
	}

	avg, err := trailingAvgMonthlySavings(ctx, uc.transactionRepo, input.UserID, now)
	if err != nil {
		return nil, err
	}

	goals, err := uc.goalRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	out := &GetSummaryOutput{
		Balance:           allTime.NetTotal,
		MonthIncome:       month.IncomeTotal,
		MonthExpense:      month.ExpenseTotal,
		MonthNet:          month.NetTotal,
		AvgMonthlySavings: avg,
		GoalCount:         len(goals),
		TotalSaved:        decimal.Zero,
	}
	for _, g := range goals {
		out.TotalSaved = out.TotalSaved.Add(g.CurrentAmount)
		if g.IsCompleted() {
			out.GoalsCompleted++
		}
	}

	return out, nil
}

// trailingAvgMonthlySavings computes (income - expense) over the last 3
// months divided by 3, floored at zero.
func trailingAvgMonthlySavings(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	userID uuid.UUID,
	now time.Time,
) (decimal.Decimal, error) {
	start := now.AddDate(0, -3, 0)
	totals, err := transactionRepo.GetTotals(ctx, adapter.TransactionFilter{
		UserID:    userID,
		StartDate: &start,
		EndDate:   &now,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute trailing totals: %w", err)
	}

	avg := totals.NetTotal.Div(decimal.NewFromInt(3))
	if avg.IsNegative() {
		return decimal.Zero, nil
	}
	return avg, nil
}
