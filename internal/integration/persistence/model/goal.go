// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quanta/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID                    uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID                uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name                  string           `gorm:"type:varchar(255);not null"`
	TargetAmount          decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	CurrentAmount         decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0"`
	Icon                  string           `gorm:"type:varchar(50);not null"`
	Color                 string           `gorm:"type:varchar(7);not null"`
	ContributionAmount    *decimal.Decimal `gorm:"type:decimal(15,2)"`
	ContributionFrequency string           `gorm:"type:varchar(10);not null;default:'monthly'"`
	TargetDate            *time.Time       `gorm:"type:date"`
	AutoDeduct            bool             `gorm:"default:false"`
	LastContributionDate  *time.Time       `gorm:"type:timestamptz"`
	NextContributionDate  *time.Time       `gorm:"type:timestamptz"`
	CreatedAt             time.Time        `gorm:"not null"`
	UpdatedAt             time.Time        `gorm:"not null"`
	DeletedAt             gorm.DeletedAt   `gorm:"index"` // Soft-delete support

	Contributions []ContributionModel `gorm:"foreignKey:GoalID;references:ID"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ContributionModel represents one entry in a goal's contribution history.
type ContributionModel struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GoalID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date     time.Time       `gorm:"type:timestamptz;not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Position int             `gorm:"not null"`
}

// TableName returns the table name for the ContributionModel.
func (ContributionModel) TableName() string {
	return "goal_contributions"
}

// ToEntity converts a GoalModel with its contributions to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	history := make([]entity.Contribution, len(m.Contributions))
	for i, cm := range m.Contributions {
		history[i] = entity.Contribution{
			Date:   cm.Date,
			Amount: cm.Amount,
		}
	}

	return &entity.Goal{
		ID:                    m.ID,
		UserID:                m.UserID,
		Name:                  m.Name,
		TargetAmount:          m.TargetAmount,
		CurrentAmount:         m.CurrentAmount,
		Icon:                  m.Icon,
		Color:                 m.Color,
		ContributionAmount:    m.ContributionAmount,
		ContributionFrequency: entity.Frequency(m.ContributionFrequency),
		TargetDate:            m.TargetDate,
		AutoDeduct:            m.AutoDeduct,
		ContributionHistory:   history,
		LastContributionDate:  m.LastContributionDate,
		NextContributionDate:  m.NextContributionDate,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
		DeletedAt:             deletedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity. The
// contribution history is not carried over: it is written through
// ReplaceContributions as its own operation.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	var deletedAt gorm.DeletedAt
	if goal.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *goal.DeletedAt, Valid: true}
	}

	return &GoalModel{
		ID:                    goal.ID,
		UserID:                goal.UserID,
		Name:                  goal.Name,
		TargetAmount:          goal.TargetAmount,
		CurrentAmount:         goal.CurrentAmount,
		Icon:                  goal.Icon,
		Color:                 goal.Color,
		ContributionAmount:    goal.ContributionAmount,
		ContributionFrequency: string(goal.ContributionFrequency),
		TargetDate:            goal.TargetDate,
		AutoDeduct:            goal.AutoDeduct,
		LastContributionDate:  goal.LastContributionDate,
		NextContributionDate:  goal.NextContributionDate,
		CreatedAt:             goal.CreatedAt,
		UpdatedAt:             goal.UpdatedAt,
		DeletedAt:             deletedAt,
	}
}
