// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
	"github.com/quanta/backend/internal/integration/persistence/model"
)

// recurringTemplateRepository implements the adapter.RecurringTemplateRepository interface.
type recurringTemplateRepository struct {
	db *gorm.DB
}

// NewRecurringTemplateRepository creates a new recurring template repository instance.
func NewRecurringTemplateRepository(db *gorm.DB) adapter.RecurringTemplateRepository {
	return &recurringTemplateRepository{
		db: db,
	}
}

// Create creates a new recurring template in the database.
func (r *recurringTemplateRepository) Create(ctx context.Context, template *entity.RecurringTemplate) error {
	templateModel := model.RecurringTemplateFromEntity(template)
	result := r.db.WithContext(ctx).Create(templateModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a template by its ID, or nil when none exists.
func (r *recurringTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTemplate, error) {
	var templateModel model.RecurringTemplateModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&templateModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return templateModel.ToEntity(), nil
}

// FindByUser retrieves all templates for a given user, active first,
// ordered by creation time.
func (r *recurringTemplateRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringTemplate, error) {
	var templateModels []model.RecurringTemplateModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("active DESC, created_at ASC").
		Find(&templateModels)
	if result.Error != nil {
		return nil, result.Error
	}

	templates := make([]*entity.RecurringTemplate, len(templateModels))
	for i, tm := range templateModels {
		templates[i] = tm.ToEntity()
	}
	return templates, nil
}

// FindActiveByUser retrieves the active templates for a user ordered by
// creation time. Document generation relies on this ordering.
func (r *recurringTemplateRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringTemplate, error) {
	var templateModels []model.RecurringTemplateModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at ASC, id ASC").
		Find(&templateModels)
	if result.Error != nil {
		return nil, result.Error
	}

	templates := make([]*entity.RecurringTemplate, len(templateModels))
	for i, tm := range templateModels {
		templates[i] = tm.ToEntity()
	}
	return templates, nil
}

// Update updates an existing template in the database.
func (r *recurringTemplateRepository) Update(ctx context.Context, template *entity.RecurringTemplate) error {
	templateModel := model.RecurringTemplateFromEntity(template)
	result := r.db.WithContext(ctx).Save(templateModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a template from the database.
func (r *recurringTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.RecurringTemplateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// monthlyDocumentRepository implements the adapter.MonthlyDocumentRepository interface.
type monthlyDocumentRepository struct {
	db *gorm.DB
}

// NewMonthlyDocumentRepository creates a new monthly document repository instance.
func NewMonthlyDocumentRepository(db *gorm.DB) adapter.MonthlyDocumentRepository {
	return &monthlyDocumentRepository{
		db: db,
	}
}

// FindByUserAndPeriod retrieves the cached document for a period, or nil
// when none has been generated yet.
func (r *monthlyDocumentRepository) FindByUserAndPeriod(ctx context.Context, userID uuid.UUID, period string) (*entity.MonthlyExpenseDocument, error) {
	var documentModel model.MonthlyDocumentModel
	result := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ? AND period = ?", userID, period).
		First(&documentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return documentModel.ToEntity(), nil
}

// Save stores a document, replacing any existing document for the same
// user and period.
func (r *monthlyDocumentRepository) Save(ctx context.Context, doc *entity.MonthlyExpenseDocument) error {
	documentModel := model.MonthlyDocumentFromEntity(doc)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.MonthlyDocumentModel
		err := tx.Where("user_id = ? AND period = ?", doc.UserID, doc.Period).First(&existing).Error
		if err == nil {
			if err := tx.Where("document_id = ?", existing.ID).Delete(&model.MonthlyItemModel{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.MonthlyDocumentModel{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Omit("Items").Create(documentModel).Error; err != nil {
			return err
		}
		for i := range documentModel.Items {
			if err := tx.Create(&documentModel.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the cached document for a period.
func (r *monthlyDocumentRepository) Delete(ctx context.Context, userID uuid.UUID, period string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.MonthlyDocumentModel
		err := tx.Where("user_id = ? AND period = ?", userID, period).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Where("document_id = ?", existing.ID).Delete(&model.MonthlyItemModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.MonthlyDocumentModel{}, "id = ?", existing.ID).Error
	})
}

// UpdateItemStatus sets the settlement status of a single item within a
// stored document.
func (r *monthlyDocumentRepository) UpdateItemStatus(ctx context.Context, userID uuid.UUID, period string, itemID uuid.UUID, status entity.ItemStatus) error {
	var documentModel model.MonthlyDocumentModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND period = ?", userID, period).
		First(&documentModel)
	if result.Error != nil {
		return result.Error
	}

	updates := map[string]interface{}{
		"status": string(status),
	}
	if status == entity.ItemStatusPaid {
		updates["paid_at"] = time.Now().UTC()
	} else {
		updates["paid_at"] = nil
	}

	return r.db.WithContext(ctx).
		Model(&model.MonthlyItemModel{}).
		Where("document_id = ? AND id = ?", documentModel.ID, itemID).
		Updates(updates).Error
}
