// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category updates. Nil
// fields are left unchanged.
type UpdateCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID

	Name  *string
	Color *string
	Icon  *string
}

// UpdateCategoryOutput represents the output of category updates.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles edits to user categories. System
// categories are immutable.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository, clock adapter.Clock) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{categoryRepo: categoryRepo, clock: clock}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := loadOwnedCategory(ctx, uc.categoryRepo, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeMissingCategoryFields,
				"name is required",
				nil,
			)
		}
		if *input.Name != category.Name {
			exists, err := uc.categoryRepo.ExistsByUserAndName(ctx, input.UserID, *input.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to check category name: %w", err)
			}
			if exists {
				return nil, domainerror.NewCategoryError(
					domainerror.ErrCodeCategoryNameExists,
					fmt.Sprintf("category %q already exists", *input.Name),
					domainerror.ErrCategoryNameExists,
				)
			}
		}
		category.Name = *input.Name
	}
	if input.Color != nil {
		category.Color = *input.Color
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}

	category.UpdatedAt = uc.clock.Now()
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{Category: category}, nil
}

// loadOwnedCategory fetches a category and rejects access to system
// categories and categories owned by other users.
func loadOwnedCategory(ctx context.Context, repo adapter.CategoryRepository, userID, categoryID uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	if category.IsSystem {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeSystemCategoryImmutable,
			"system categories cannot be modified",
			domainerror.ErrSystemCategoryImmutable,
		)
	}
	if category.UserID != userID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeUnauthorizedCategory,
			"not authorized to access category",
			domainerror.ErrUnauthorizedCategoryAccess,
		)
	}
	return category, nil
}
