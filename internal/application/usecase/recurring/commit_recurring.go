// Package recurring contains the recurring expense reconciliation use cases.
package recurring

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

// CommitRecurringInput represents the input for committing a recurring expense.
type CommitRecurringInput struct {
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID
	Notes       string
	Frequency   entity.Frequency

	// ExistingTransactionID is set when converting a one-off transaction
	// into a recurring one. The transaction is updated in place; no new
	// ledger record is created for the conversion.
	ExistingTransactionID *uuid.UUID
}

// CommitRecurringOutput represents the output of committing a recurring expense.
type CommitRecurringOutput struct {
	Transaction *entity.Transaction
	Template    *entity.RecurringTemplate
	Item        *entity.MonthlyExpenseItem
	Period      string
	AutoPaid    bool
}

// CommitRecurringUseCase converts an expense marked recurring into a
// persistent template, materializes the period's expected charge, and
// settles it if its due date has already passed.
//
// The steps are sequential writes with no rollback: a failure after the
// template write leaves an orphaned template. The persistence layer
// offers per-document atomicity only.
type CommitRecurringUseCase struct {
	transactionRepo adapter.TransactionRepository
	templateRepo    adapter.RecurringTemplateRepository
	documentRepo    adapter.MonthlyDocumentRepository
	clock           adapter.Clock
}

// NewCommitRecurringUseCase creates a new CommitRecurringUseCase instance.
func NewCommitRecurringUseCase(
	transactionRepo adapter.TransactionRepository,
	templateRepo adapter.RecurringTemplateRepository,
	documentRepo adapter.MonthlyDocumentRepository,
	clock adapter.Clock,
) *CommitRecurringUseCase {
	return &CommitRecurringUseCase{
		transactionRepo: transactionRepo,
		templateRepo:    templateRepo,
		documentRepo:    documentRepo,
		clock:           clock,
	}
}

// Execute performs the recurring commit.
func (uc *CommitRecurringUseCase) Execute(ctx context.Context, input CommitRecurringInput) (*CommitRecurringOutput, error) {
	if !input.Frequency.IsValid() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMissingRecurringFields,
			"frequency must be 'weekly', 'biweekly', or 'monthly'",
			nil,
		)
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMissingRecurringFields,
			"amount must be greater than zero",
			nil,
		)
	}

	// Load the prior transaction when converting an existing one-off.
	var existing *entity.Transaction
	if input.ExistingTransactionID != nil {
		tx, err := uc.transactionRepo.FindByID(ctx, *input.ExistingTransactionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load transaction: %w", err)
		}
		if tx == nil {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		if tx.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeNotAuthorizedTransaction,
				"not authorized to modify transaction",
				domainerror.ErrNotAuthorizedToModifyTransaction,
			)
		}
		existing = tx
	}

	// Step 1: ensure a template exists. Reuse the prior transaction's
	// template when it carries one; otherwise persist a new template.
	template, err := uc.ensureTemplate(ctx, input, existing)
	if err != nil {
		return nil, err
	}

	// Step 2: invalidate and regenerate the monthly document for the
	// transaction's period.
	now := uc.clock.Now()
	period := entity.PeriodOf(input.Date)
	doc, err := regenerate(ctx, uc.templateRepo, uc.documentRepo, input.UserID, period, now)
	if err != nil {
		return nil, err
	}

	// Step 3: the regenerated document must contain an item for the
	// template. Absence indicates a generation bug, not a transient
	// fault; the operation is aborted with a fatal error.
	item := doc.ItemByTemplate(template.ID)
	if item == nil {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeReconciliationInvariant,
			fmt.Sprintf("regenerated document %s has no item for template %s", period, template.ID),
			domainerror.ErrReconciliationInvariant,
		)
	}

	// Step 4: auto-pay. A recurring charge whose due date is today or in
	// the past is assumed already incurred.
	autoPaid := false
	if !dateAfter(input.Date, now) {
		if err := uc.documentRepo.UpdateItemStatus(ctx, input.UserID, period, item.ID, entity.ItemStatusPaid); err != nil {
			return nil, fmt.Errorf("failed to settle monthly item: %w", err)
		}
		item.Status = entity.ItemStatusPaid
		paidAt := now
		item.PaidAt = &paidAt
		autoPaid = true
	}

	// Step 5: make the transaction the canonical ledger record. The
	// monthly item is bookkeeping metadata, not a second ledger.
	transaction, err := uc.writeLedgerRecord(ctx, input, existing, template.ID, item.ID)
	if err != nil {
		return nil, err
	}

	return &CommitRecurringOutput{
		Transaction: transaction,
		Template:    template,
		Item:        item,
		Period:      period,
		AutoPaid:    autoPaid,
	}, nil
}

// ensureTemplate reuses the template referenced by the prior transaction
// or persists a new one from the input fields. Reused templates absorb
// the user's edits to amount, category and frequency.
func (uc *CommitRecurringUseCase) ensureTemplate(
	ctx context.Context,
	input CommitRecurringInput,
	existing *entity.Transaction,
) (*entity.RecurringTemplate, error) {
	if existing != nil && existing.RecurringTemplateID != nil {
		template, err := uc.templateRepo.FindByID(ctx, *existing.RecurringTemplateID)
		if err != nil {
			return nil, fmt.Errorf("failed to load recurring template: %w", err)
		}
		if template == nil {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeTemplateNotFound,
				"recurring template not found",
				domainerror.ErrTemplateNotFound,
			)
		}

		template.Name = input.Description
		template.DefaultAmount = input.Amount
		template.CategoryID = input.CategoryID
		template.Frequency = input.Frequency
		template.UpdatedAt = uc.clock.Now()
		if err := uc.templateRepo.Update(ctx, template); err != nil {
			return nil, fmt.Errorf("failed to update recurring template: %w", err)
		}
		return template, nil
	}

	template := entity.NewRecurringTemplate(
		input.UserID,
		input.Description,
		input.Amount,
		input.CategoryID,
		input.Frequency,
	)
	if err := uc.templateRepo.Create(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to create recurring template: %w", err)
	}
	return template, nil
}

// writeLedgerRecord updates the prior transaction in place or creates
// the ledger record for a newly entered recurring expense.
func (uc *CommitRecurringUseCase) writeLedgerRecord(
	ctx context.Context,
	input CommitRecurringInput,
	existing *entity.Transaction,
	templateID, itemID uuid.UUID,
) (*entity.Transaction, error) {
	frequency := input.Frequency

	if existing != nil {
		existing.Date = input.Date
		existing.Description = input.Description
		existing.Amount = input.Amount
		existing.CategoryID = input.CategoryID
		existing.Notes = input.Notes
		existing.IsRecurring = true
		existing.Frequency = &frequency
		existing.Source = entity.SourceRecurring
		existing.RecurringTemplateID = &templateID
		existing.RecurringItemID = &itemID
		existing.UpdatedAt = uc.clock.Now()

		if err := uc.transactionRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update transaction: %w", err)
		}
		return existing, nil
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Date,
		input.Description,
		input.Amount,
		entity.TransactionTypeExpense,
		input.CategoryID,
		input.Notes,
		true,
	)
	transaction.Frequency = &frequency
	transaction.Source = entity.SourceRecurring
	transaction.RecurringTemplateID = &templateID
	transaction.RecurringItemID = &itemID

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return transaction, nil
}

// dateAfter reports whether a is on a later calendar day than b.
// Comparisons are calendar-day granular: a charge dated today is due.
func dateAfter(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad > bd
}
