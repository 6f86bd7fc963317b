// Package recurring contains the recurring expense reconciliation use cases.
package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

// SettleItemInput represents the input for settling a monthly expense item.
type SettleItemInput struct {
	UserID uuid.UUID
	Period string
	ItemID uuid.UUID
}

// SettleItemOutput represents the output of settling a monthly expense item.
type SettleItemOutput struct {
	Item        *entity.MonthlyExpenseItem
	Transaction *entity.Transaction
}

// SettleItemUseCase marks a monthly expense item paid and ensures a
// settled ledger transaction exists for it.
type SettleItemUseCase struct {
	transactionRepo adapter.TransactionRepository
	documentRepo    adapter.MonthlyDocumentRepository
	clock           adapter.Clock
}

// NewSettleItemUseCase creates a new SettleItemUseCase instance.
func NewSettleItemUseCase(
	transactionRepo adapter.TransactionRepository,
	documentRepo adapter.MonthlyDocumentRepository,
	clock adapter.Clock,
) *SettleItemUseCase {
	return &SettleItemUseCase{
		transactionRepo: transactionRepo,
		documentRepo:    documentRepo,
		clock:           clock,
	}
}

// Execute performs the settlement.
func (uc *SettleItemUseCase) Execute(ctx context.Context, input SettleItemInput) (*SettleItemOutput, error) {
	if !isValidPeriod(input.Period) {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidPeriod,
			"period must be of the form YYYY-MM",
			domainerror.ErrInvalidPeriod,
		)
	}

	doc, err := uc.documentRepo.FindByUserAndPeriod(ctx, input.UserID, input.Period)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly document: %w", err)
	}
	if doc == nil {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMonthlyDocumentNotFound,
			"no monthly document for period "+input.Period,
			domainerror.ErrMonthlyDocumentNotFound,
		)
	}

	item := doc.ItemByID(input.ItemID)
	if item == nil {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMonthlyItemNotFound,
			"monthly expense item not found",
			domainerror.ErrMonthlyItemNotFound,
		)
	}
	if item.Status == entity.ItemStatusPaid {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeItemAlreadyPaid,
			"item is already paid",
			domainerror.ErrItemAlreadyPaid,
		)
	}

	now := uc.clock.Now()
	if err := uc.documentRepo.UpdateItemStatus(ctx, input.UserID, input.Period, item.ID, entity.ItemStatusPaid); err != nil {
		return nil, fmt.Errorf("failed to settle monthly item: %w", err)
	}
	item.Status = entity.ItemStatusPaid
	item.PaidAt = &now

	// A settlement without a ledger record gets one created from the item
	// snapshot. A settlement reached through the reconciler already has
	// its canonical transaction.
	transaction, err := uc.transactionRepo.FindByRecurringItem(ctx, input.UserID, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up settlement transaction: %w", err)
	}
	if transaction == nil {
		transaction = entity.NewTransaction(
			input.UserID,
			now,
			item.NameSnapshot,
			item.Amount,
			entity.TransactionTypeExpense,
			item.CategoryID,
			"",
			true,
		)
		transaction.Source = entity.SourceRecurring
		templateID := item.TemplateID
		itemID := item.ID
		transaction.RecurringTemplateID = &templateID
		transaction.RecurringItemID = &itemID

		if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
			return nil, fmt.Errorf("failed to create settlement transaction: %w", err)
		}
	}

	return &SettleItemOutput{
		Item:        item,
		Transaction: transaction,
	}, nil
}
