// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quanta/backend/internal/domain/entity"
)

// RecurringTemplateModel represents the recurring_templates table in the database.
type RecurringTemplateModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(255);not null"`
	DefaultAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	Active        bool            `gorm:"default:true;index"`
	Frequency     string          `gorm:"type:varchar(10);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the RecurringTemplateModel.
func (RecurringTemplateModel) TableName() string {
	return "recurring_templates"
}

// ToEntity converts a RecurringTemplateModel to a domain RecurringTemplate entity.
func (m *RecurringTemplateModel) ToEntity() *entity.RecurringTemplate {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.RecurringTemplate{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		DefaultAmount: m.DefaultAmount,
		CategoryID:    m.CategoryID,
		Active:        m.Active,
		Frequency:     entity.Frequency(m.Frequency),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}

// RecurringTemplateFromEntity creates a RecurringTemplateModel from a domain entity.
func RecurringTemplateFromEntity(template *entity.RecurringTemplate) *RecurringTemplateModel {
	var deletedAt gorm.DeletedAt
	if template.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *template.DeletedAt, Valid: true}
	}

	return &RecurringTemplateModel{
		ID:            template.ID,
		UserID:        template.UserID,
		Name:          template.Name,
		DefaultAmount: template.DefaultAmount,
		CategoryID:    template.CategoryID,
		Active:        template.Active,
		Frequency:     string(template.Frequency),
		CreatedAt:     template.CreatedAt,
		UpdatedAt:     template.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}

// MonthlyDocumentModel represents the monthly_expense_documents table.
// One row exists per user and period; the items live in their own table
// and are replaced wholesale on regeneration.
type MonthlyDocumentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_monthly_doc_user_period"`
	Period        string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_monthly_doc_user_period"`
	InitializedAt time.Time `gorm:"not null"`

	Items []MonthlyItemModel `gorm:"foreignKey:DocumentID;references:ID"`
}

// TableName returns the table name for the MonthlyDocumentModel.
func (MonthlyDocumentModel) TableName() string {
	return "monthly_expense_documents"
}

// MonthlyItemModel represents one expected charge within a monthly document.
type MonthlyItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DocumentID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	TemplateID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	NameSnapshot string          `gorm:"type:varchar(255);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid"`
	Status       string          `gorm:"type:varchar(10);not null;default:'pending'"`
	PaidAt       *time.Time      `gorm:"type:timestamptz"`
	Position     int             `gorm:"not null"`
}

// TableName returns the table name for the MonthlyItemModel.
func (MonthlyItemModel) TableName() string {
	return "monthly_expense_items"
}

// ToEntity converts a MonthlyDocumentModel with its items to a domain document.
func (m *MonthlyDocumentModel) ToEntity() *entity.MonthlyExpenseDocument {
	items := make([]entity.MonthlyExpenseItem, len(m.Items))
	for i, im := range m.Items {
		items[i] = entity.MonthlyExpenseItem{
			ID:           im.ID,
			TemplateID:   im.TemplateID,
			NameSnapshot: im.NameSnapshot,
			Amount:       im.Amount,
			CategoryID:   im.CategoryID,
			Status:       entity.ItemStatus(im.Status),
			PaidAt:       im.PaidAt,
		}
	}

	return &entity.MonthlyExpenseDocument{
		ID:            m.ID,
		UserID:        m.UserID,
		Period:        m.Period,
		Items:         items,
		InitializedAt: m.InitializedAt,
	}
}

// MonthlyDocumentFromEntity creates a MonthlyDocumentModel from a domain document.
func MonthlyDocumentFromEntity(doc *entity.MonthlyExpenseDocument) *MonthlyDocumentModel {
	items := make([]MonthlyItemModel, len(doc.Items))
	for i, item := range doc.Items {
		items[i] = MonthlyItemModel{
			ID:           item.ID,
			DocumentID:   doc.ID,
			TemplateID:   item.TemplateID,
			NameSnapshot: item.NameSnapshot,
			Amount:       item.Amount,
			CategoryID:   item.CategoryID,
			Status:       string(item.Status),
			PaidAt:       item.PaidAt,
			Position:     i,
		}
	}

	return &MonthlyDocumentModel{
		ID:            doc.ID,
		UserID:        doc.UserID,
		Period:        doc.Period,
		InitializedAt: doc.InitializedAt,
		Items:         items,
	}
}
