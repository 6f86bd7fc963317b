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

// DeactivateTemplateInput represents the input for deactivating a template.
type DeactivateTemplateInput struct {
	UserID     uuid.UUID
	TemplateID uuid.UUID
}

// DeactivateTemplateOutput represents the output of deactivating a template.
type DeactivateTemplateOutput struct {
	Template *entity.RecurringTemplate
}

// DeactivateTemplateUseCase stops a recurring obligation. The template
// survives as an inactive record so historical transactions keep their
// reference; the current period's document is regenerated without it.
// Past periods are left untouched.
type DeactivateTemplateUseCase struct {
	templateRepo adapter.RecurringTemplateRepository
	documentRepo adapter.MonthlyDocumentRepository
	clock        adapter.Clock
}

// NewDeactivateTemplateUseCase creates a new DeactivateTemplateUseCase instance.
func NewDeactivateTemplateUseCase(
	templateRepo adapter.RecurringTemplateRepository,
	documentRepo adapter.MonthlyDocumentRepository,
	clock adapter.Clock,
) *DeactivateTemplateUseCase {
	return &DeactivateTemplateUseCase{
		templateRepo: templateRepo,
		documentRepo: documentRepo,
		clock:        clock,
	}
}

// Execute performs the deactivation.
func (uc *DeactivateTemplateUseCase) Execute(ctx context.Context, input DeactivateTemplateInput) (*DeactivateTemplateOutput, error) {
	template, err := uc.templateRepo.FindByID(ctx, input.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring template: %w", err)
	}
	if template == nil || template.UserID != input.UserID {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeTemplateNotFound,
			"recurring template not found",
			domainerror.ErrTemplateNotFound,
		)
	}
	if !template.Active {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeTemplateInactive,
			"recurring template is already inactive",
			domainerror.ErrTemplateInactive,
		)
	}

	now := uc.clock.Now()
	template.Active = false
	template.UpdatedAt = now
	if err := uc.templateRepo.Update(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to deactivate recurring template: %w", err)
	}

	if _, err := regenerate(ctx, uc.templateRepo, uc.documentRepo, input.UserID, entity.PeriodOf(now), now); err != nil {
		return nil, err
	}

	return &DeactivateTemplateOutput{Template: template}, nil
}
