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

// GetMonthlyDocumentInput represents the input for fetching a monthly document.
type GetMonthlyDocumentInput struct {
	UserID uuid.UUID
	Period string
	// Refresh forces regeneration even when a cached document exists.
	Refresh bool
}

// GetMonthlyDocumentOutput represents the output of fetching a monthly document.
type GetMonthlyDocumentOutput struct {
	Document *entity.MonthlyExpenseDocument
}

// GetMonthlyDocumentUseCase returns the cached monthly expense document
// for a period, generating it on first access.
type GetMonthlyDocumentUseCase struct {
	templateRepo adapter.RecurringTemplateRepository
	documentRepo adapter.MonthlyDocumentRepository
	clock        adapter.Clock
}

// NewGetMonthlyDocumentUseCase creates a new GetMonthlyDocumentUseCase instance.
func NewGetMonthlyDocumentUseCase(
	templateRepo adapter.RecurringTemplateRepository,
	documentRepo adapter.MonthlyDocumentRepository,
	clock adapter.Clock,
) *GetMonthlyDocumentUseCase {
	return &GetMonthlyDocumentUseCase{
		templateRepo: templateRepo,
		documentRepo: documentRepo,
		clock:        clock,
	}
}

// Execute fetches or generates the monthly document.
func (uc *GetMonthlyDocumentUseCase) Execute(ctx context.Context, input GetMonthlyDocumentInput) (*GetMonthlyDocumentOutput, error) {
	if !isValidPeriod(input.Period) {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidPeriod,
			"period must be of the form YYYY-MM",
			domainerror.ErrInvalidPeriod,
		)
	}

	if !input.Refresh {
		doc, err := uc.documentRepo.FindByUserAndPeriod(ctx, input.UserID, input.Period)
		if err != nil {
			return nil, fmt.Errorf("failed to load monthly document: %w", err)
		}
		if doc != nil {
			return &GetMonthlyDocumentOutput{Document: doc}, nil
		}
	}

	doc, err := regenerate(ctx, uc.templateRepo, uc.documentRepo, input.UserID, input.Period, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	return &GetMonthlyDocumentOutput{Document: doc}, nil
}
