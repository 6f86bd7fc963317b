// Package recurring contains the recurring expense reconciliation use cases.
package recurring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
)

// DefaultPendingHorizonDays is the display horizon for upcoming recurring charges.
const DefaultPendingHorizonDays = 7

// PendingPaymentsInput represents the input for listing pending payments.
type PendingPaymentsInput struct {
	UserID      uuid.UUID
	HorizonDays int // Defaults to DefaultPendingHorizonDays when zero
}

// PendingPaymentsOutput represents the output of listing pending payments.
type PendingPaymentsOutput struct {
	Payments []*entity.PendingPayment
}

// PendingPaymentsUseCase computes which recurring expenses have an
// upcoming due date within the horizon. This is a display-only
// projection: pay/postpone/reject decisions are session state on the
// client and are never persisted here.
type PendingPaymentsUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewPendingPaymentsUseCase creates a new PendingPaymentsUseCase instance.
func NewPendingPaymentsUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *PendingPaymentsUseCase {
	return &PendingPaymentsUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute computes the pending payment list.
func (uc *PendingPaymentsUseCase) Execute(ctx context.Context, input PendingPaymentsInput) (*PendingPaymentsOutput, error) {
	horizon := input.HorizonDays
	if horizon <= 0 {
		horizon = DefaultPendingHorizonDays
	}

	transactions, err := uc.transactionRepo.FindRecurringByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring transactions: %w", err)
	}

	now := uc.clock.Now()
	payments := make([]*entity.PendingPayment, 0)
	for _, tx := range transactions {
		due := nextOccurrence(tx.Date, now)
		days := daysUntil(due, now)
		if days < 0 || days > horizon {
			continue
		}

		payments = append(payments, &entity.PendingPayment{
			TransactionID: tx.ID,
			TemplateID:    tx.RecurringTemplateID,
			Description:   tx.Description,
			Amount:        tx.Amount,
			CategoryID:    tx.CategoryID,
			DueDate:       due,
			DaysUntilDue:  days,
		})
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].DueDate.Before(payments[j].DueDate)
	})

	return &PendingPaymentsOutput{Payments: payments}, nil
}

// nextOccurrence projects the transaction's day-of-month into the
// current month, rolling to the next month when that day has already
// passed. Overflowing days normalize forward (the 31st in a 30-day
// month lands on the 1st).
func nextOccurrence(txDate, now time.Time) time.Time {
	day := txDate.Day()
	next := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, time.UTC)
	if day < now.Day() {
		next = time.Date(now.Year(), now.Month()+1, day, 0, 0, 0, 0, time.UTC)
	}
	return next
}

// daysUntil returns ceil((due - now) / 1 day). A charge due today yields 0.
func daysUntil(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}
