// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReminderStatus represents the status of a reminder job in the queue.
type ReminderStatus string

const (
	ReminderStatusPending    ReminderStatus = "pending"
	ReminderStatusProcessing ReminderStatus = "processing"
	ReminderStatusSent       ReminderStatus = "sent"
	ReminderStatusFailed     ReminderStatus = "failed"
)

// ReminderKind represents the kind of reminder being sent.
type ReminderKind string

const (
	ReminderRecurringDue    ReminderKind = "recurring_due"
	ReminderContributionDue ReminderKind = "contribution_due"
	ReminderBudgetExceeded  ReminderKind = "budget_exceeded"
)

// ReminderJob represents a reminder email in the queue waiting to be
// sent. DedupKey prevents the eligibility checker from enqueueing the
// same reminder twice for the same subject on the same day.
type ReminderJob struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Kind           ReminderKind
	DedupKey       string
	RecipientEmail string
	RecipientName  string
	Subject        string
	Data           map[string]interface{}
	Status         ReminderStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ProviderID     string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewReminderJob creates a new ReminderJob with default values.
func NewReminderJob(
	userID uuid.UUID,
	kind ReminderKind,
	dedupKey, recipientEmail, recipientName, subject string,
	data map[string]interface{},
) *ReminderJob {
	now := time.Now().UTC()
	return &ReminderJob{
		ID:             uuid.New(),
		UserID:         userID,
		Kind:           kind,
		DedupKey:       dedupKey,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		Data:           data,
		Status:         ReminderStatusPending,
		Attempts:       0,
		MaxAttempts:    3,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing marks the reminder job as currently being processed.
func (r *ReminderJob) MarkProcessing() {
	r.Status = ReminderStatusProcessing
}

// MarkSent marks the reminder job as successfully sent.
func (r *ReminderJob) MarkSent(providerID string) {
	r.Status = ReminderStatusSent
	r.ProviderID = providerID
	now := time.Now().UTC()
	r.ProcessedAt = &now
}

// MarkFailed marks the reminder job as failed and schedules a retry if
// attempts remain.
func (r *ReminderJob) MarkFailed(err error, permanent bool) {
	r.Attempts++
	r.LastError = err.Error()

	if permanent || r.Attempts >= r.MaxAttempts {
		r.Status = ReminderStatusFailed
		now := time.Now().UTC()
		r.ProcessedAt = &now
	} else {
		r.Status = ReminderStatusPending
		r.ScheduledAt = r.calculateNextRetry()
	}
}

// calculateNextRetry calculates the next retry time.
// Retry delays: 0s (immediate), 1min, 5min
func (r *ReminderJob) calculateNextRetry() time.Time {
	delays := []time.Duration{0, 1 * time.Minute, 5 * time.Minute}
	if r.Attempts < len(delays) {
		return time.Now().UTC().Add(delays[r.Attempts])
	}
	return time.Now().UTC().Add(5 * time.Minute)
}

// IsReadyToProcess returns true if the reminder job is ready to be processed.
func (r *ReminderJob) IsReadyToProcess() bool {
	return r.Status == ReminderStatusPending && time.Now().UTC().After(r.ScheduledAt)
}
