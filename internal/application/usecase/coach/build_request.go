// Package coach contains AI coaching use cases.
package coach

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
)

// maxTopCategories bounds the category breakdown handed to the AI.
const maxTopCategories = 5

// trailingWindowMonths is the transaction window the coach reasons over.
const trailingWindowMonths = 3

// buildCoachRequest assembles the statistics snapshot the AI prompt is
// rendered from: balance, current month totals, trailing average
// savings, top expense categories and the user's goals.
func buildCoachRequest(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	goalRepo adapter.GoalRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
	userID uuid.UUID,
	now time.Time,
) (*adapter.CoachRequest, error) {
	allTime, err := transactionRepo.GetTotals(ctx, adapter.TransactionFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	month, err := transactionRepo.GetTotals(ctx, adapter.TransactionFilter{
		UserID:    userID,
		StartDate: &monthStart,
		EndDate:   &monthEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute month totals: %w", err)
	}

	windowStart := now.AddDate(0, -trailingWindowMonths, 0)
	window, err := transactionRepo.GetTotals(ctx, adapter.TransactionFilter{
		UserID:    userID,
		StartDate: &windowStart,
		EndDate:   &now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute trailing totals: %w", err)
	}
	avg := window.NetTotal.Div(decimal.NewFromInt(trailingWindowMonths))
	if avg.IsNegative() {
		avg = decimal.Zero
	}

	transactions, err := transactionRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	recent := make([]*entity.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !tx.Date.Before(windowStart) {
			recent = append(recent, tx)
		}
	}

	categories, err := categoryRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	goals, err := goalRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	request := &adapter.CoachRequest{
		Stats: adapter.CoachStats{
			Balance:           allTime.NetTotal,
			MonthIncome:       month.IncomeTotal,
			MonthExpenses:     month.ExpenseTotal,
			AvgMonthlySavings: avg,
			TopCategories:     topCategories(recent, categories),
		},
		Transactions: recent,
		Goals:        goals,
		Categories:   categories,
	}
	if user != nil {
		request.Currency = user.Currency
		request.Locale = user.Locale
	}

	return request, nil
}

// topCategories aggregates window expenses per category, descending by
// amount, capped at maxTopCategories.
func topCategories(transactions []*entity.Transaction, categories []*entity.Category) []entity.CategorySpend {
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	spend := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, tx := range transactions {
		if tx.Type != entity.TransactionTypeExpense {
			continue
		}
		name := "uncategorized"
		if tx.CategoryID != nil {
			if n, ok := names[*tx.CategoryID]; ok {
				name = n
			}
		}
		spend[name] = spend[name].Add(tx.Amount)
		total = total.Add(tx.Amount)
	}

	out := make([]entity.CategorySpend, 0, len(spend))
	for name, amount := range spend {
		pct := 0.0
		if total.IsPositive() {
			pct, _ = amount.Div(total).Mul(decimal.NewFromInt(100)).Round(1).Float64()
		}
		amt, _ := amount.Round(2).Float64()
		out = append(out, entity.CategorySpend{
			Name:       name,
			Amount:     amt,
			Percentage: pct,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > maxTopCategories {
		out = out[:maxTopCategories]
	}
	return out
}
