package dto

import (
	"time"

	"github.com/quanta/backend/internal/domain/entity"
)

// UpdateTemplateRequest represents the request body for updating a
// recurring template.
type UpdateTemplateRequest struct {
	Name          *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	DefaultAmount *float64 `json:"default_amount,omitempty" binding:"omitempty,gt=0"`
	CategoryID    *string  `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Frequency     *string  `json:"frequency,omitempty" binding:"omitempty,oneof=weekly biweekly monthly"`
}

// SettleItemRequest represents the request body for settling a monthly item.
type SettleItemRequest struct {
	ItemID string `json:"item_id" binding:"required,uuid"`
}

// RecurringTemplateResponse represents a recurring template in API responses.
type RecurringTemplateResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	DefaultAmount float64   `json:"default_amount"`
	CategoryID    *string   `json:"category_id,omitempty"`
	Active        bool      `json:"active"`
	Frequency     string    `json:"frequency"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RecurringTemplateListResponse represents the response for listing templates.
type RecurringTemplateListResponse struct {
	Templates []RecurringTemplateResponse `json:"templates"`
}

// MonthlyItemResponse represents a single item of a monthly expense document.
type MonthlyItemResponse struct {
	ID         string  `json:"id"`
	TemplateID string  `json:"template_id"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	CategoryID *string `json:"category_id,omitempty"`
	Status     string  `json:"status"`
	PaidAt     *string `json:"paid_at,omitempty"`
}

// MonthlyDocumentResponse represents a monthly expense document.
type MonthlyDocumentResponse struct {
	ID            string                `json:"id"`
	UserID        string                `json:"user_id"`
	Period        string                `json:"period"`
	Items         []MonthlyItemResponse `json:"items"`
	TotalAmount   float64               `json:"total_amount"`
	PaidAmount    float64               `json:"paid_amount"`
	InitializedAt time.Time             `json:"initialized_at"`
}

// PendingPaymentResponse represents an upcoming recurring charge.
type PendingPaymentResponse struct {
	TransactionID string  `json:"transaction_id"`
	TemplateID    *string `json:"template_id,omitempty"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	CategoryID    *string `json:"category_id,omitempty"`
	DueDate       string  `json:"due_date"`
	DaysUntilDue  int     `json:"days_until_due"`
}

// PendingPaymentListResponse represents the response for listing pending payments.
type PendingPaymentListResponse struct {
	Payments []PendingPaymentResponse `json:"payments"`
}

// SettleItemResponse represents the response after settling a monthly item.
type SettleItemResponse struct {
	Item        MonthlyItemResponse  `json:"item"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// CommitRecurringResponse represents the response after committing a
// recurring transaction.
type CommitRecurringResponse struct {
	Transaction TransactionResponse       `json:"transaction"`
	Template    RecurringTemplateResponse `json:"template"`
	Item        *MonthlyItemResponse      `json:"item,omitempty"`
	Period      string                    `json:"period"`
	AutoPaid    bool                      `json:"auto_paid"`
}

// ToRecurringTemplateResponse converts a domain RecurringTemplate to a DTO.
func ToRecurringTemplateResponse(t *entity.RecurringTemplate) RecurringTemplateResponse {
	response := RecurringTemplateResponse{
		ID:            t.ID.String(),
		UserID:        t.UserID.String(),
		Name:          t.Name,
		DefaultAmount: t.DefaultAmount.InexactFloat64(),
		Active:        t.Active,
		Frequency:     string(t.Frequency),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.CategoryID != nil {
		categoryID := t.CategoryID.String()
		response.CategoryID = &categoryID
	}
	return response
}

// ToRecurringTemplateListResponse converts templates to a list response.
func ToRecurringTemplateListResponse(templates []*entity.RecurringTemplate) RecurringTemplateListResponse {
	response := RecurringTemplateListResponse{
		Templates: make([]RecurringTemplateResponse, 0, len(templates)),
	}
	for _, t := range templates {
		response.Templates = append(response.Templates, ToRecurringTemplateResponse(t))
	}
	return response
}

// ToMonthlyItemResponse converts a domain MonthlyExpenseItem to a DTO.
func ToMonthlyItemResponse(item *entity.MonthlyExpenseItem) MonthlyItemResponse {
	response := MonthlyItemResponse{
		ID:         item.ID.String(),
		TemplateID: item.TemplateID.String(),
		Name:       item.NameSnapshot,
		Amount:     item.Amount.InexactFloat64(),
		Status:     string(item.Status),
	}
	if item.CategoryID != nil {
		categoryID := item.CategoryID.String()
		response.CategoryID = &categoryID
	}
	if item.PaidAt != nil {
		paidAt := item.PaidAt.Format(time.RFC3339)
		response.PaidAt = &paidAt
	}
	return response
}

// ToMonthlyDocumentResponse converts a domain MonthlyExpenseDocument to
// a DTO with paid and total aggregates.
func ToMonthlyDocumentResponse(doc *entity.MonthlyExpenseDocument) MonthlyDocumentResponse {
	response := MonthlyDocumentResponse{
		ID:            doc.ID.String(),
		UserID:        doc.UserID.String(),
		Period:        doc.Period,
		Items:         make([]MonthlyItemResponse, 0, len(doc.Items)),
		InitializedAt: doc.InitializedAt,
	}
	for i := range doc.Items {
		item := &doc.Items[i]
		response.Items = append(response.Items, ToMonthlyItemResponse(item))
		amount := item.Amount.InexactFloat64()
		response.TotalAmount += amount
		if item.Status == entity.ItemStatusPaid {
			response.PaidAmount += amount
		}
	}
	return response
}

// ToPendingPaymentListResponse converts pending payments to a list response.
func ToPendingPaymentListResponse(payments []*entity.PendingPayment) PendingPaymentListResponse {
	response := PendingPaymentListResponse{
		Payments: make([]PendingPaymentResponse, 0, len(payments)),
	}
	for _, p := range payments {
		item := PendingPaymentResponse{
			TransactionID: p.TransactionID.String(),
			Description:   p.Description,
			Amount:        p.Amount.InexactFloat64(),
			DueDate:       p.DueDate.Format("2006-01-02"),
			DaysUntilDue:  p.DaysUntilDue,
		}
		if p.TemplateID != nil {
			templateID := p.TemplateID.String()
			item.TemplateID = &templateID
		}
		if p.CategoryID != nil {
			categoryID := p.CategoryID.String()
			item.CategoryID = &categoryID
		}
		response.Payments = append(response.Payments, item)
	}
	return response
}
