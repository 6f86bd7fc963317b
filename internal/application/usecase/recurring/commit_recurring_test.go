// Package recurring contains the recurring expense reconciliation use cases.
package recurring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"

	"github.com/google/uuid"
)

func newCommitFixture(now time.Time) (*CommitRecurringUseCase, *fakeTransactionRepo, *fakeTemplateRepo, *fakeDocumentRepo) {
	txRepo := newFakeTransactionRepo()
	tmplRepo := newFakeTemplateRepo()
	docRepo := newFakeDocumentRepo()
	uc := NewCommitRecurringUseCase(txRepo, tmplRepo, docRepo, &fixedClock{now: now})
	return uc, txRepo, tmplRepo, docRepo
}

func TestCommitRecurring_NewExpense(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	uc, txRepo, tmplRepo, _ := newCommitFixture(now)
	userID := uuid.New()

	out, err := uc.Execute(context.Background(), CommitRecurringInput{
		UserID:      userID,
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Netflix",
		Amount:      decimal.NewFromFloat(39.90),
		Frequency:   entity.FrequencyMonthly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Period != "2025-03" {
		t.Errorf("expected period 2025-03, got %s", out.Period)
	}
	if out.Template == nil || out.Template.Name != "Netflix" {
		t.Fatalf("expected template named Netflix, got %+v", out.Template)
	}
	if !out.Template.Active {
		t.Error("expected new template to be active")
	}
	if len(tmplRepo.templates) != 1 {
		t.Errorf("expected 1 persisted template, got %d", len(tmplRepo.templates))
	}

	// Dated before "now", so the item settles immediately.
	if !out.AutoPaid {
		t.Error("expected past-dated expense to auto-pay")
	}
	if out.Item.Status != entity.ItemStatusPaid {
		t.Errorf("expected item status paid, got %s", out.Item.Status)
	}

	// The transaction is the canonical ledger record and carries the
	// reconciliation references.
	if out.Transaction == nil {
		t.Fatal("expected a transaction")
	}
	if out.Transaction.Source != entity.SourceRecurring {
		t.Errorf("expected source recurring, got %s", out.Transaction.Source)
	}
	if out.Transaction.RecurringTemplateID == nil || *out.Transaction.RecurringTemplateID != out.Template.ID {
		t.Error("expected transaction to reference the template")
	}
	if out.Transaction.RecurringItemID == nil || *out.Transaction.RecurringItemID != out.Item.ID {
		t.Error("expected transaction to reference the monthly item")
	}
	if len(txRepo.transactions) != 1 {
		t.Errorf("expected 1 persisted transaction, got %d", len(txRepo.transactions))
	}
}

func TestCommitRecurring_FutureDateStaysPending(t *testing.T) {
	now := time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC)
	uc, _, _, docRepo := newCommitFixture(now)
	userID := uuid.New()

	out, err := uc.Execute(context.Background(), CommitRecurringInput{
		UserID:      userID,
		Date:        time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
		Description: "Gym",
		Amount:      decimal.NewFromInt(80),
		Frequency:   entity.FrequencyMonthly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.AutoPaid {
		t.Error("expected future-dated expense to stay pending")
	}
	if out.Item.Status != entity.ItemStatusPending {
		t.Errorf("expected item status pending, got %s", out.Item.Status)
	}

	doc, _ := docRepo.FindByUserAndPeriod(context.Background(), userID, "2025-03")
	if doc == nil {
		t.Fatal("expected a stored monthly document")
	}
	if stored := doc.ItemByID(out.Item.ID); stored == nil || stored.Status != entity.ItemStatusPending {
		t.Error("expected stored item to be pending")
	}
}

func TestCommitRecurring_SameDayAutoPays(t *testing.T) {
	// Calendar-day comparison: a charge dated today is due even when its
	// timestamp is later in the day than now.
	now := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	uc, _, _, _ := newCommitFixture(now)

	out, err := uc.Execute(context.Background(), CommitRecurringInput{
		UserID:      uuid.New(),
		Date:        time.Date(2025, 3, 15, 22, 0, 0, 0, time.UTC),
		Description: "Rent",
		Amount:      decimal.NewFromInt(1200),
		Frequency:   entity.FrequencyMonthly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.AutoPaid {
		t.Error("expected same-day expense to auto-pay")
	}
}

func TestCommitRecurring_ConvertsExistingTransaction(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	uc, txRepo, tmplRepo, _ := newCommitFixture(now)
	userID := uuid.New()

	oneOff := entity.NewTransaction(
		userID,
		time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		"Spotify",
		decimal.NewFromFloat(21.90),
		entity.TransactionTypeExpense,
		nil,
		"",
		false,
	)
	if err := txRepo.Create(context.Background(), oneOff); err != nil {
		t.Fatal(err)
	}

	out, err := uc.Execute(context.Background(), CommitRecurringInput{
		UserID:                userID,
		Date:                  oneOff.Date,
		Description:           "Spotify",
		Amount:                oneOff.Amount,
		Frequency:             entity.FrequencyMonthly,
		ExistingTransactionID: &oneOff.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Conversion updates in place; no second ledger record appears.
	if len(txRepo.transactions) != 1 {
		t.Fatalf("expected 1 transaction after conversion, got %d", len(txRepo.transactions))
	}
	if out.Transaction.ID != oneOff.ID {
		t.Error("expected the original transaction to be reused")
	}
	if !out.Transaction.IsRecurring {
		t.Error("expected converted transaction to be recurring")
	}
	if out.Transaction.Source != entity.SourceRecurring {
		t.Errorf("expected source recurring, got %s", out.Transaction.Source)
	}
	if len(tmplRepo.templates) != 1 {
		t.Errorf("expected 1 template, got %d", len(tmplRepo.templates))
	}
}

func TestCommitRecurring_ReusesTemplateOnRecommit(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	uc, txRepo, tmplRepo, _ := newCommitFixture(now)
	userID := uuid.New()

	first, err := uc.Execute(context.Background(), CommitRecurringInput{
		UserID:      userID,
		Date:        time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Description: "Internet",
		Amount:      decimal.NewFromInt(100),
		Frequency:   entity.FrequencyMonthly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Re-committing the same transaction with an edited amount updates
	// the existing template instead of minting a new one.
	second, err := uc.Execute(context.Background(), CommitRecurringInput{
		UserID:                userID,
		Date:                  first.Transaction.Date,
		Description:           "Internet",
		Amount:                decimal.NewFromInt(120),
		Frequency:             entity.FrequencyMonthly,
		ExistingTransactionID: &first.Transaction.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.Template.ID != first.Template.ID {
		t.Error("expected the template to be reused")
	}
	if len(tmplRepo.templates) != 1 {
		t.Errorf("expected 1 template, got %d", len(tmplRepo.templates))
	}
	if !second.Template.DefaultAmount.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected template amount 120, got %s", second.Template.DefaultAmount)
	}
	if len(txRepo.transactions) != 1 {
		t.Errorf("expected 1 transaction, got %d", len(txRepo.transactions))
	}
}

func TestCommitRecurring_Validation(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	uc, _, _, _ := newCommitFixture(now)

	tests := []struct {
		name  string
		input CommitRecurringInput
	}{
		{
			name: "invalid frequency",
			input: CommitRecurringInput{
				UserID:      uuid.New(),
				Date:        now,
				Description: "Netflix",
				Amount:      decimal.NewFromInt(10),
				Frequency:   entity.Frequency("yearly"),
			},
		},
		{
			name: "zero amount",
			input: CommitRecurringInput{
				UserID:      uuid.New(),
				Date:        now,
				Description: "Netflix",
				Amount:      decimal.Zero,
				Frequency:   entity.FrequencyMonthly,
			},
		},
		{
			name: "negative amount",
			input: CommitRecurringInput{
				UserID:      uuid.New(),
				Date:        now,
				Description: "Netflix",
				Amount:      decimal.NewFromInt(-5),
				Frequency:   entity.FrequencyMonthly,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected an error")
			}
			var recErr *domainerror.RecurringError
			if !errors.As(err, &recErr) {
				t.Fatalf("expected RecurringError, got %T", err)
			}
			if recErr.Code != domainerror.ErrCodeMissingRecurringFields {
				t.Errorf("expected code %s, got %s", domainerror.ErrCodeMissingRecurringFields, recErr.Code)
			}
		})
	}
}

func TestCommitRecurring_RejectsForeignTransaction(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	uc, txRepo, _, _ := newCommitFixture(now)

	other := entity.NewTransaction(
		uuid.New(),
		now,
		"Netflix",
		decimal.NewFromInt(40),
		entity.TransactionTypeExpense,
		nil,
		"",
		false,
	)
	if err := txRepo.Create(context.Background(), other); err != nil {
		t.Fatal(err)
	}

	_, err := uc.Execute(context.Background(), CommitRecurringInput{
		UserID:                uuid.New(),
		Date:                  now,
		Description:           "Netflix",
		Amount:                decimal.NewFromInt(40),
		Frequency:             entity.FrequencyMonthly,
		ExistingTransactionID: &other.ID,
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) {
		t.Fatalf("expected TransactionError, got %T", err)
	}
	if txnErr.Code != domainerror.ErrCodeNotAuthorizedTransaction {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeNotAuthorizedTransaction, txnErr.Code)
	}
}
