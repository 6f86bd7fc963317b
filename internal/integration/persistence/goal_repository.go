// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
	"github.com/quanta/backend/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Create(goalModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a goal by its ID with its contribution history, or
// nil when none exists.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := r.db.WithContext(ctx).
		Preload("Contributions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUser retrieves all goals for a given user.
func (r *goalRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	result := r.db.WithContext(ctx).
		Preload("Contributions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i, gm := range goalModels {
		goals[i] = gm.ToEntity()
	}
	return goals, nil
}

// Update updates a goal's scalar fields in the database. The
// contribution history is written through ReplaceContributions.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Save(goalModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ReplaceContributions replaces the stored contribution history for a goal.
func (r *goalRepository) ReplaceContributions(ctx context.Context, goalID uuid.UUID, history []entity.Contribution) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", goalID).Delete(&model.ContributionModel{}).Error; err != nil {
			return err
		}

		for i, contribution := range history {
			contributionModel := &model.ContributionModel{
				ID:       uuid.New(),
				GoalID:   goalID,
				Date:     contribution.Date,
				Amount:   contribution.Amount,
				Position: i,
			}
			if err := tx.Create(contributionModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete soft-deletes a goal from the database.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.GoalModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
