// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/domain/entity"
)

// ReminderQueueRepository defines the interface for reminder queue persistence operations.
type ReminderQueueRepository interface {
	// Create adds a new reminder job to the queue.
	Create(ctx context.Context, job *entity.ReminderJob) error

	// GetPendingJobs retrieves jobs ready to be processed, ordered by scheduled_at.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.ReminderJob, error)

	// Update saves changes to a reminder job.
	Update(ctx context.Context, job *entity.ReminderJob) error

	// GetByID retrieves a specific job by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ReminderJob, error)

	// ExistsByDedupKey checks whether a job with the given dedup key has
	// already been enqueued (any status).
	ExistsByDedupKey(ctx context.Context, dedupKey string) (bool, error)

	// DeleteOldSentJobs removes sent jobs older than the specified number of days.
	DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error)
}
