// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Frequency represents the cadence of a recurring obligation or a goal
// contribution schedule.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// IsValid reports whether the frequency is one of the supported cadences.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}

// RecurringTemplate is the reusable definition of a repeating obligation.
// One exists per recurring expense; it is created the first time a
// transaction is marked recurring and updated when the user edits the
// amount, category or cadence.
type RecurringTemplate struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	DefaultAmount decimal.Decimal
	CategoryID    *uuid.UUID
	Active        bool
	Frequency     Frequency
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewRecurringTemplate creates a new active RecurringTemplate entity.
func NewRecurringTemplate(
	userID uuid.UUID,
	name string,
	defaultAmount decimal.Decimal,
	categoryID *uuid.UUID,
	frequency Frequency,
) *RecurringTemplate {
	now := time.Now().UTC()

	return &RecurringTemplate{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		DefaultAmount: defaultAmount,
		CategoryID:    categoryID,
		Active:        true,
		Frequency:     frequency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ItemStatus represents the settlement status of a monthly expense item.
type ItemStatus string

const (
	ItemStatusPending ItemStatus = "pending"
	ItemStatusPaid    ItemStatus = "paid"
)

// monthlyItemNamespace seeds deterministic item IDs so that regenerating
// a document for the same period and template set yields identical items.
var monthlyItemNamespace = uuid.MustParse("9f2d1c6e-4a0b-4f6d-8a31-5b7e9c0d2f18")

// MonthlyItemID derives the deterministic item ID for a template within a
// period.
func MonthlyItemID(templateID uuid.UUID, period string) uuid.UUID {
	return uuid.NewSHA1(monthlyItemNamespace, []byte(templateID.String()+"/"+period))
}

// MonthlyExpenseItem is one expected charge inside a MonthlyExpenseDocument.
type MonthlyExpenseItem struct {
	ID           uuid.UUID
	TemplateID   uuid.UUID
	NameSnapshot string
	Amount       decimal.Decimal
	CategoryID   *uuid.UUID
	Status       ItemStatus
	PaidAt       *time.Time
}

// MonthlyExpenseDocument is the derived per-period materialization of
// which templates are due and their settlement status. Items are a
// deterministic function of the active templates and the period;
// settlement status is the only mutable part.
type MonthlyExpenseDocument struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Period        string // "YYYY-MM"
	Items         []MonthlyExpenseItem
	InitializedAt time.Time
}

// ItemByTemplate returns the item belonging to the given template, or nil.
func (d *MonthlyExpenseDocument) ItemByTemplate(templateID uuid.UUID) *MonthlyExpenseItem {
	for i := range d.Items {
		if d.Items[i].TemplateID == templateID {
			return &d.Items[i]
		}
	}
	return nil
}

// ItemByID returns the item with the given ID, or nil.
func (d *MonthlyExpenseDocument) ItemByID(itemID uuid.UUID) *MonthlyExpenseItem {
	for i := range d.Items {
		if d.Items[i].ID == itemID {
			return &d.Items[i]
		}
	}
	return nil
}

// PeriodOf formats a date as a "YYYY-MM" period string.
func PeriodOf(date time.Time) string {
	return fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month()))
}

// PendingPayment is a display-only projection of a recurring expense with
// an upcoming due date.
type PendingPayment struct {
	TransactionID uuid.UUID
	TemplateID    *uuid.UUID
	Description   string
	Amount        decimal.Decimal
	CategoryID    *uuid.UUID
	DueDate       time.Time
	DaysUntilDue  int
}
