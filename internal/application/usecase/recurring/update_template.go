// Package recurring contains the recurring expense reconciliation use cases.
package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

// UpdateTemplateInput represents the input for updating a recurring template.
type UpdateTemplateInput struct {
	UserID     uuid.UUID
	TemplateID uuid.UUID

	Name          *string
	DefaultAmount *decimal.Decimal
	CategoryID    *uuid.UUID
	Frequency     *entity.Frequency
}

// UpdateTemplateOutput represents the output of updating a recurring template.
type UpdateTemplateOutput struct {
	Template *entity.RecurringTemplate
}

// UpdateTemplateUseCase handles editing a recurring template. Edits
// invalidate the current period's monthly document so the next read
// reflects the new amount or name.
type UpdateTemplateUseCase struct {
	templateRepo adapter.RecurringTemplateRepository
	documentRepo adapter.MonthlyDocumentRepository
	clock        adapter.Clock
}

// NewUpdateTemplateUseCase creates a new UpdateTemplateUseCase instance.
func NewUpdateTemplateUseCase(
	templateRepo adapter.RecurringTemplateRepository,
	documentRepo adapter.MonthlyDocumentRepository,
	clock adapter.Clock,
) *UpdateTemplateUseCase {
	return &UpdateTemplateUseCase{
		templateRepo: templateRepo,
		documentRepo: documentRepo,
		clock:        clock,
	}
}

// Execute performs the update.
func (uc *UpdateTemplateUseCase) Execute(ctx context.Context, input UpdateTemplateInput) (*UpdateTemplateOutput, error) {
	template, err := uc.loadOwned(ctx, input.UserID, input.TemplateID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		template.Name = *input.Name
	}
	if input.DefaultAmount != nil {
		if !input.DefaultAmount.IsPositive() {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeMissingRecurringFields,
				"amount must be greater than zero",
				nil,
			)
		}
		template.DefaultAmount = *input.DefaultAmount
	}
	if input.CategoryID != nil {
		template.CategoryID = input.CategoryID
	}
	if input.Frequency != nil {
		if !input.Frequency.IsValid() {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeMissingRecurringFields,
				"frequency must be 'weekly', 'biweekly', or 'monthly'",
				nil,
			)
		}
		template.Frequency = *input.Frequency
	}

	now := uc.clock.Now()
	template.UpdatedAt = now
	if err := uc.templateRepo.Update(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to update recurring template: %w", err)
	}

	if _, err := regenerate(ctx, uc.templateRepo, uc.documentRepo, input.UserID, entity.PeriodOf(now), now); err != nil {
		return nil, err
	}

	return &UpdateTemplateOutput{Template: template}, nil
}

func (uc *UpdateTemplateUseCase) loadOwned(ctx context.Context, userID, templateID uuid.UUID) (*entity.RecurringTemplate, error) {
	template, err := uc.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring template: %w", err)
	}
	if template == nil || template.UserID != userID {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeTemplateNotFound,
			"recurring template not found",
			domainerror.ErrTemplateNotFound,
		)
	}
	return template, nil
}
