// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// TransactionSource indicates how a transaction entered the ledger.
type TransactionSource string

const (
	// SourceManual is a transaction entered directly by the user.
	SourceManual TransactionSource = "manual"
	// SourceRecurring is a transaction created or converted by the
	// recurring expense reconciler. It carries template and monthly item
	// references and is the canonical ledger record for that charge.
	SourceRecurring TransactionSource = "recurring"
)

// PaymentMethod represents how a transaction was paid.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// Transaction represents a financial transaction in the QUANTA system.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal // Always positive; Type carries the sign
	Type        TransactionType
	CategoryID  *uuid.UUID // Optional, can be uncategorized
	Notes       string
	IsRecurring bool
	Frequency   *Frequency // Set when IsRecurring is true
	Payment     PaymentMethod
	Source      TransactionSource

	// Recurring bookkeeping. Set by the reconciler when this transaction
	// is the settlement record for a monthly expense item.
	RecurringTemplateID *uuid.UUID
	RecurringItemID     *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	categoryID *uuid.UUID,
	notes string,
	isRecurring bool,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        transactionType,
		CategoryID:  categoryID,
		Notes:       notes,
		IsRecurring: isRecurring,
		Payment:     PaymentMethodCash,
		Source:      SourceManual,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SignedAmount returns the amount with its ledger sign: negative for
// expenses, positive for income.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionWithCategory represents a transaction with its associated category.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionTotals represents aggregated totals for transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}
