// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction updates.
type UpdateTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	Type          entity.TransactionType
	CategoryID    *uuid.UUID
	Notes         string
	Payment       entity.PaymentMethod
}

// UpdateTransactionOutput represents the output of transaction updates.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles edits to one-off transactions.
// Marking a transaction recurring is a conversion, handled by the
// reconciler, not an update.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	clock           adapter.Clock
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		clock:           clock,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	if err := validateFields(input.Description, input.Notes, input.Amount, input.Type); err != nil {
		return nil, err
	}

	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if transaction == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	if transaction.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	if input.CategoryID != nil {
		if err := validateCategory(ctx, uc.categoryRepo, input.UserID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	transaction.Date = input.Date
	transaction.Description = input.Description
	transaction.Amount = input.Amount
	transaction.Type = input.Type
	transaction.CategoryID = input.CategoryID
	transaction.Notes = input.Notes
	if input.Payment != "" {
		transaction.Payment = input.Payment
	}
	transaction.UpdatedAt = uc.clock.Now()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &UpdateTransactionOutput{Transaction: transaction}, nil
}
