// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quanta/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
// System categories carry a nil user_id and IsSystem=true.
type CategoryModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index"`
	Name      string         `gorm:"type:varchar(100);not null"`
	Color     string         `gorm:"type:varchar(7);not null"`
	Icon      string         `gorm:"type:varchar(50);not null"`
	Type      string         `gorm:"type:varchar(10);not null"`
	IsSystem  bool           `gorm:"default:false;index"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	userID := uuid.Nil
	if m.UserID != nil {
		userID = *m.UserID
	}

	return &entity.Category{
		ID:        m.ID,
		UserID:    userID,
		Name:      m.Name,
		Color:     m.Color,
		Icon:      m.Icon,
		Type:      entity.CategoryType(m.Type),
		IsSystem:  m.IsSystem,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	var deletedAt gorm.DeletedAt
	if category.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *category.DeletedAt, Valid: true}
	}

	var userID *uuid.UUID
	if category.UserID != uuid.Nil {
		id := category.UserID
		userID = &id
	}

	return &CategoryModel{
		ID:        category.ID,
		UserID:    userID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		Type:      string(category.Type),
		IsSystem:  category.IsSystem,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
		DeletedAt: deletedAt,
	}
}
