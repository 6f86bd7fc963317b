// Package recurring contains the recurring expense reconciliation use cases.
package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
)

// ListTemplatesInput represents the input for listing recurring templates.
type ListTemplatesInput struct {
	UserID     uuid.UUID
	ActiveOnly bool
}

// ListTemplatesOutput represents the output of listing recurring templates.
type ListTemplatesOutput struct {
	Templates []*entity.RecurringTemplate
}

// ListTemplatesUseCase handles listing a user's recurring templates.
type ListTemplatesUseCase struct {
	templateRepo adapter.RecurringTemplateRepository
}

// NewListTemplatesUseCase creates a new ListTemplatesUseCase instance.
func NewListTemplatesUseCase(templateRepo adapter.RecurringTemplateRepository) *ListTemplatesUseCase {
	return &ListTemplatesUseCase{templateRepo: templateRepo}
}

// Execute lists the templates.
func (uc *ListTemplatesUseCase) Execute(ctx context.Context, input ListTemplatesInput) (*ListTemplatesOutput, error) {
	var (
		templates []*entity.RecurringTemplate
		err       error
	)
	if input.ActiveOnly {
		templates, err = uc.templateRepo.FindActiveByUser(ctx, input.UserID)
	} else {
		templates, err = uc.templateRepo.FindByUser(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring templates: %w", err)
	}

	return &ListTemplatesOutput{Templates: templates}, nil
}
