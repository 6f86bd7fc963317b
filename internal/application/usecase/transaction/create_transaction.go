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

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  *uuid.UUID
	Notes       string
	Payment     entity.PaymentMethod
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles one-off transaction creation.
// Recurring entries go through the reconciler instead.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validateFields(input.Description, input.Notes, input.Amount, input.Type); err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if err := validateCategory(ctx, uc.categoryRepo, input.UserID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Date,
		input.Description,
		input.Amount,
		input.Type,
		input.CategoryID,
		input.Notes,
		false,
	)
	if input.Payment != "" {
		transaction.Payment = input.Payment
	}

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{Transaction: transaction}, nil
}

// validateFields applies the shared field checks for create and update.
func validateFields(description, notes string, amount decimal.Decimal, transactionType entity.TransactionType) error {
	if description == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"description is required",
			nil,
		)
	}
	if len(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	if len(notes) > MaxNotesLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}
	if transactionType != entity.TransactionTypeExpense && transactionType != entity.TransactionTypeIncome {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

// validateCategory checks that the category exists and is usable by the
// user: their own, or a seeded system category.
func validateCategory(ctx context.Context, categoryRepo adapter.CategoryRepository, userID, categoryID uuid.UUID) error {
	category, err := categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}
	if !category.BelongsTo(userID) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotOwned,
			"category does not belong to user",
			domainerror.ErrCategoryNotOwnedByUser,
		)
	}
	return nil
}
