// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/application/adapter"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// DeleteCategoryUseCase handles user category deletion. A category that
// still has transactions cannot be removed; the seeded system
// categories can never be removed.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	category, err := loadOwnedCategory(ctx, uc.categoryRepo, input.UserID, input.CategoryID)
	if err != nil {
		return err
	}

	count, err := uc.categoryRepo.CountTransactions(ctx, category.ID)
	if err != nil {
		return fmt.Errorf("failed to count category transactions: %w", err)
	}
	if count > 0 {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryInUse,
			fmt.Sprintf("category has %d transactions", count),
			domainerror.ErrCategoryInUse,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
