// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/domain/entity"
)

// ReminderJobModel represents the reminder_queue table in the database.
type ReminderJobModel struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID    `gorm:"type:uuid;not null;index"`
	Kind           string       `gorm:"type:varchar(30);not null"`
	DedupKey       string       `gorm:"type:varchar(255);uniqueIndex;not null"`
	RecipientEmail string       `gorm:"type:varchar(255);not null"`
	RecipientName  string       `gorm:"type:varchar(255)"`
	Subject        string       `gorm:"type:varchar(500);not null"`
	Data           string       `gorm:"type:jsonb;not null;default:'{}'"`
	Status         string       `gorm:"type:varchar(20);not null;default:'pending'"`
	Attempts       int          `gorm:"not null;default:0"`
	MaxAttempts    int          `gorm:"not null;default:3"`
	LastError      string       `gorm:"type:text"`
	ProviderID     string       `gorm:"type:varchar(100)"`
	CreatedAt      time.Time    `gorm:"not null"`
	ScheduledAt    time.Time    `gorm:"not null"`
	ProcessedAt    sql.NullTime `gorm:"type:timestamptz"`
}

// TableName returns the table name for the ReminderJobModel.
func (ReminderJobModel) TableName() string {
	return "reminder_queue"
}

// ToEntity converts a ReminderJobModel to a domain ReminderJob entity.
func (m *ReminderJobModel) ToEntity() *entity.ReminderJob {
	var data map[string]interface{}
	if m.Data != "" {
		if err := json.Unmarshal([]byte(m.Data), &data); err != nil {
			slog.Warn("Failed to unmarshal reminder data", "error", err, "id", m.ID)
		}
	}
	if data == nil {
		data = make(map[string]interface{})
	}

	var processedAt *time.Time
	if m.ProcessedAt.Valid {
		processedAt = &m.ProcessedAt.Time
	}

	return &entity.ReminderJob{
		ID:             m.ID,
		UserID:         m.UserID,
		Kind:           entity.ReminderKind(m.Kind),
		DedupKey:       m.DedupKey,
		RecipientEmail: m.RecipientEmail,
		RecipientName:  m.RecipientName,
		Subject:        m.Subject,
		Data:           data,
		Status:         entity.ReminderStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		ProviderID:     m.ProviderID,
		CreatedAt:      m.CreatedAt,
		ScheduledAt:    m.ScheduledAt,
		ProcessedAt:    processedAt,
	}
}

// ReminderJobFromEntity creates a ReminderJobModel from a domain ReminderJob entity.
func ReminderJobFromEntity(job *entity.ReminderJob) *ReminderJobModel {
	dataJSON, err := json.Marshal(job.Data)
	if err != nil {
		slog.Error("Failed to marshal reminder data", "error", err, "job_id", job.ID)
		dataJSON = []byte("{}")
	}

	var processedAt sql.NullTime
	if job.ProcessedAt != nil {
		processedAt = sql.NullTime{Time: *job.ProcessedAt, Valid: true}
	}

	return &ReminderJobModel{
		ID:             job.ID,
		UserID:         job.UserID,
		Kind:           string(job.Kind),
		DedupKey:       job.DedupKey,
		RecipientEmail: job.RecipientEmail,
		RecipientName:  job.RecipientName,
		Subject:        job.Subject,
		Data:           string(dataJSON),
		Status:         string(job.Status),
		Attempts:       job.Attempts,
		MaxAttempts:    job.MaxAttempts,
		LastError:      job.LastError,
		ProviderID:     job.ProviderID,
		CreatedAt:      job.CreatedAt,
		ScheduledAt:    job.ScheduledAt,
		ProcessedAt:    processedAt,
	}
}
