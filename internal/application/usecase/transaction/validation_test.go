// Package transaction contains transaction-related use cases.
package transaction

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name         string
		description  string
		notes        string
		amount       decimal.Decimal
		txType       entity.TransactionType
		expectedCode domainerror.TransactionErrorCode
	}{
		{
			name:         "empty description",
			description:  "",
			amount:       decimal.NewFromInt(10),
			txType:       entity.TransactionTypeExpense,
			expectedCode: domainerror.ErrCodeMissingTransactionFields,
		},
		{
			name:         "description too long",
			description:  strings.Repeat("a", MaxDescriptionLength+1),
			amount:       decimal.NewFromInt(10),
			txType:       entity.TransactionTypeExpense,
			expectedCode: domainerror.ErrCodeDescriptionTooLong,
		},
		{
			name:         "notes too long",
			description:  "Groceries",
			notes:        strings.Repeat("a", MaxNotesLength+1),
			amount:       decimal.NewFromInt(10),
			txType:       entity.TransactionTypeExpense,
			expectedCode: domainerror.ErrCodeNotesTooLong,
		},
		{
			name:         "invalid type",
			description:  "Groceries",
			amount:       decimal.NewFromInt(10),
			txType:       entity.TransactionType("transfer"),
			expectedCode: domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name:         "zero amount",
			description:  "Groceries",
			amount:       decimal.Zero,
			txType:       entity.TransactionTypeExpense,
			expectedCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:         "negative amount",
			description:  "Groceries",
			amount:       decimal.NewFromInt(-10),
			txType:       entity.TransactionTypeIncome,
			expectedCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFields(tt.description, tt.notes, tt.amount, tt.txType)
			if err == nil {
				t.Fatal("expected an error")
			}
			var txnErr *domainerror.TransactionError
			if !errors.As(err, &txnErr) {
				t.Fatalf("expected TransactionError, got %T", err)
			}
			if txnErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, txnErr.Code)
			}
		})
	}

	t.Run("valid input", func(t *testing.T) {
		if err := validateFields("Groceries", "weekly run", decimal.NewFromInt(10), entity.TransactionTypeIncome); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
