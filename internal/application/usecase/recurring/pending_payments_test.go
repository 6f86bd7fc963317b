// Package recurring contains the recurring expense reconciliation use cases.
package recurring

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/domain/entity"

	"github.com/google/uuid"
)

func seedRecurringTransaction(t *testing.T, repo *fakeTransactionRepo, userID uuid.UUID, description string, date time.Time) *entity.Transaction {
	t.Helper()
	tx := entity.NewTransaction(
		userID,
		date,
		description,
		decimal.NewFromInt(50),
		entity.TransactionTypeExpense,
		nil,
		"",
		true,
	)
	freq := entity.FrequencyMonthly
	tx.Frequency = &freq
	tx.Source = entity.SourceRecurring
	if err := repo.Create(context.Background(), tx); err != nil {
		t.Fatal(err)
	}
	return tx
}

func TestPendingPayments_Horizon(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	txRepo := newFakeTransactionRepo()
	uc := NewPendingPaymentsUseCase(txRepo, &fixedClock{now: now})
	userID := uuid.New()

	// Day-of-month projections into March 2025, as seen from the 15th.
	dueToday := seedRecurringTransaction(t, txRepo, userID, "due today",
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	dueIn3 := seedRecurringTransaction(t, txRepo, userID, "due in 3 days",
		time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC))
	dueIn7 := seedRecurringTransaction(t, txRepo, userID, "due in 7 days",
		time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC))
	seedRecurringTransaction(t, txRepo, userID, "due in 8 days",
		time.Date(2025, 1, 23, 0, 0, 0, 0, time.UTC))
	// Day 10 already passed this month; rolls to April 10, 26 days out.
	seedRecurringTransaction(t, txRepo, userID, "rolled to next month",
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))

	out, err := uc.Execute(context.Background(), PendingPaymentsInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Payments) != 3 {
		t.Fatalf("expected 3 pending payments, got %d", len(out.Payments))
	}

	// Sorted by due date ascending.
	expected := []struct {
		id   uuid.UUID
		days int
	}{
		{dueToday.ID, 0},
		{dueIn3.ID, 3},
		{dueIn7.ID, 7},
	}
	for i, want := range expected {
		got := out.Payments[i]
		if got.TransactionID != want.id {
			t.Errorf("payment %d: unexpected transaction", i)
		}
		if got.DaysUntilDue != want.days {
			t.Errorf("payment %d: expected %d days until due, got %d", i, want.days, got.DaysUntilDue)
		}
	}
}

func TestPendingPayments_RollsToNextMonth(t *testing.T) {
	// From March 30, a charge on the 2nd rolls to April 2, inside the
	// horizon.
	now := time.Date(2025, 3, 30, 12, 0, 0, 0, time.UTC)
	txRepo := newFakeTransactionRepo()
	uc := NewPendingPaymentsUseCase(txRepo, &fixedClock{now: now})
	userID := uuid.New()

	rolled := seedRecurringTransaction(t, txRepo, userID, "rolls to april",
		time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC))

	out, err := uc.Execute(context.Background(), PendingPaymentsInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Payments) != 1 {
		t.Fatalf("expected 1 pending payment, got %d", len(out.Payments))
	}

	p := out.Payments[0]
	if p.TransactionID != rolled.ID {
		t.Error("unexpected transaction")
	}
	want := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	if !p.DueDate.Equal(want) {
		t.Errorf("expected due date %s, got %s", want, p.DueDate)
	}
	if p.DaysUntilDue != 3 {
		t.Errorf("expected 3 days until due, got %d", p.DaysUntilDue)
	}
}

func TestPendingPayments_IgnoresNonRecurring(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	txRepo := newFakeTransactionRepo()
	uc := NewPendingPaymentsUseCase(txRepo, &fixedClock{now: now})
	userID := uuid.New()

	oneOff := entity.NewTransaction(
		userID,
		time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
		"one-off",
		decimal.NewFromInt(30),
		entity.TransactionTypeExpense,
		nil,
		"",
		false,
	)
	if err := txRepo.Create(context.Background(), oneOff); err != nil {
		t.Fatal(err)
	}

	out, err := uc.Execute(context.Background(), PendingPaymentsInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Payments) != 0 {
		t.Errorf("expected no pending payments, got %d", len(out.Payments))
	}
}

func TestPendingPayments_CustomHorizon(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	txRepo := newFakeTransactionRepo()
	uc := NewPendingPaymentsUseCase(txRepo, &fixedClock{now: now})
	userID := uuid.New()

	seedRecurringTransaction(t, txRepo, userID, "due in 10 days",
		time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC))

	out, err := uc.Execute(context.Background(), PendingPaymentsInput{UserID: userID, HorizonDays: 14})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Payments) != 1 {
		t.Errorf("expected 1 pending payment within widened horizon, got %d", len(out.Payments))
	}
}
