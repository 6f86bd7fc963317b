// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
	"github.com/quanta/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget in the database.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	result := r.db.WithContext(ctx).Create(budgetModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a budget by its ID, or nil when none exists.
func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindByUser retrieves all budgets for a given user.
func (r *budgetRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var budgetModels []model.BudgetModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]*entity.Budget, len(budgetModels))
	for i, bm := range budgetModels {
		budgets[i] = bm.ToEntity()
	}
	return budgets, nil
}

// Update updates an existing budget in the database.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	result := r.db.WithContext(ctx).Save(budgetModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a budget from the database.
func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.BudgetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ExistsByUserAndCategory checks if a budget exists for the given user and category.
func (r *budgetRepository) ExistsByUserAndCategory(ctx context.Context, userID, categoryID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.BudgetModel{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// GetCurrentSpending sums expense amounts for a category within a date range.
func (r *budgetRepository) GetCurrentSpending(ctx context.Context, userID, categoryID uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, error) {
	var spendingResult struct {
		Total decimal.Decimal
	}
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Where("type = ?", string(entity.TransactionTypeExpense)).
		Where("date >= ? AND date < ?", startDate, endDate).
		Scan(&spendingResult)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return spendingResult.Total, nil
}
