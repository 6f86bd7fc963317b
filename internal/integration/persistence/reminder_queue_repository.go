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

// reminderQueueRepository implements the adapter.ReminderQueueRepository interface.
type reminderQueueRepository struct {
	db *gorm.DB
}

// NewReminderQueueRepository creates a new reminder queue repository instance.
func NewReminderQueueRepository(db *gorm.DB) adapter.ReminderQueueRepository {
	return &reminderQueueRepository{
		db: db,
	}
}

// Create adds a new reminder job to the queue.
func (r *reminderQueueRepository) Create(ctx context.Context, job *entity.ReminderJob) error {
	jobModel := model.ReminderJobFromEntity(job)
	result := r.db.WithContext(ctx).Create(jobModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// GetPendingJobs retrieves jobs ready to be processed, ordered by scheduled_at.
func (r *reminderQueueRepository) GetPendingJobs(ctx context.Context, limit int) ([]*entity.ReminderJob, error) {
	var jobModels []model.ReminderJobModel

	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.ReminderStatusPending)).
		Where("scheduled_at <= ?", time.Now().UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&jobModels)
	if result.Error != nil {
		return nil, result.Error
	}

	jobs := make([]*entity.ReminderJob, len(jobModels))
	for i, jm := range jobModels {
		jobs[i] = jm.ToEntity()
	}
	return jobs, nil
}

// Update saves changes to a reminder job.
func (r *reminderQueueRepository) Update(ctx context.Context, job *entity.ReminderJob) error {
	jobModel := model.ReminderJobFromEntity(job)
	result := r.db.WithContext(ctx).Save(jobModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// GetByID retrieves a specific job by its ID, or nil when none exists.
func (r *reminderQueueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReminderJob, error) {
	var jobModel model.ReminderJobModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&jobModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return jobModel.ToEntity(), nil
}

// ExistsByDedupKey checks whether a job with the given dedup key has
// already been enqueued.
func (r *reminderQueueRepository) ExistsByDedupKey(ctx context.Context, dedupKey string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.ReminderJobModel{}).
		Where("dedup_key = ?", dedupKey).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// DeleteOldSentJobs removes sent jobs older than the specified number of days.
func (r *reminderQueueRepository) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)

	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.ReminderStatusSent)).
		Where("processed_at < ?", cutoff).
		Delete(&model.ReminderJobModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
