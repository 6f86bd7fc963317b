// Package goal contains savings goal use cases.
package goal

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

func seedGoal(t *testing.T, repo *fakeGoalRepo, userID uuid.UUID, current decimal.Decimal) *entity.Goal {
	t.Helper()
	g := entity.NewGoal(userID, "Vacation", decimal.NewFromInt(1000), "", "", entity.FrequencyMonthly)
	g.CurrentAmount = current
	if !current.IsZero() {
		g.ContributionHistory = []entity.Contribution{
			{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Amount: current},
		}
	}
	if err := repo.Create(context.Background(), g); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestAddContribution(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	goalRepo := newFakeGoalRepo()
	txRepo := newFakeTransactionRepo(decimal.NewFromInt(500))
	catRepo := newFakeCategoryRepo()
	uc := NewAddContributionUseCase(goalRepo, txRepo, catRepo, &fixedClock{now: now})
	userID := uuid.New()
	g := seedGoal(t, goalRepo, userID, decimal.NewFromInt(100))

	out, err := uc.Execute(context.Background(), AddContributionInput{
		UserID: userID,
		GoalID: g.ID,
		Amount: decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Goal.CurrentAmount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected current amount 150, got %s", out.Goal.CurrentAmount)
	}
	if len(out.Goal.ContributionHistory) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(out.Goal.ContributionHistory))
	}
	last := out.Goal.ContributionHistory[1]
	if !last.Amount.Equal(decimal.NewFromInt(50)) || !last.Date.Equal(now) {
		t.Errorf("unexpected appended entry: %+v", last)
	}
	if out.Goal.LastContributionDate == nil || !out.Goal.LastContributionDate.Equal(now) {
		t.Error("expected last contribution date to be now")
	}
	wantNext := now.AddDate(0, 1, 0)
	if out.Goal.NextContributionDate == nil || !out.Goal.NextContributionDate.Equal(wantNext) {
		t.Errorf("expected next contribution date %s, got %v", wantNext, out.Goal.NextContributionDate)
	}

	// The mirror books the reservation as a savings expense.
	if out.MirrorTransaction == nil {
		t.Fatal("expected a mirror transaction")
	}
	if out.MirrorTransaction.Type != entity.TransactionTypeExpense {
		t.Errorf("expected expense mirror, got %s", out.MirrorTransaction.Type)
	}
	if !out.MirrorTransaction.Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected mirror amount 50, got %s", out.MirrorTransaction.Amount)
	}
	if out.MirrorTransaction.CategoryID == nil || *out.MirrorTransaction.CategoryID != catRepo.savings.ID {
		t.Error("expected mirror to use the savings system category")
	}
	if len(txRepo.transactions) != 1 {
		t.Errorf("expected 1 mirror transaction, got %d", len(txRepo.transactions))
	}

	// Stored state matches the returned goal.
	stored, _ := goalRepo.FindByID(context.Background(), g.ID)
	if !stored.CurrentAmount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected stored amount 150, got %s", stored.CurrentAmount)
	}
	if len(stored.ContributionHistory) != 2 {
		t.Errorf("expected 2 stored history entries, got %d", len(stored.ContributionHistory))
	}
}

func TestAddContribution_InsufficientFunds(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	goalRepo := newFakeGoalRepo()
	txRepo := newFakeTransactionRepo(decimal.NewFromInt(30))
	uc := NewAddContributionUseCase(goalRepo, txRepo, newFakeCategoryRepo(), &fixedClock{now: now})
	userID := uuid.New()
	g := seedGoal(t, goalRepo, userID, decimal.NewFromInt(100))

	_, err := uc.Execute(context.Background(), AddContributionInput{
		UserID: userID,
		GoalID: g.ID,
		Amount: decimal.NewFromInt(50),
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	var goalErr *domainerror.GoalError
	if !errors.As(err, &goalErr) {
		t.Fatalf("expected GoalError, got %T", err)
	}
	if goalErr.Code != domainerror.ErrCodeInsufficientFunds {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeInsufficientFunds, goalErr.Code)
	}

	// The gate blocks before any write happens.
	stored, _ := goalRepo.FindByID(context.Background(), g.ID)
	if !stored.CurrentAmount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected goal untouched at 100, got %s", stored.CurrentAmount)
	}
	if len(stored.ContributionHistory) != 1 {
		t.Errorf("expected history untouched, got %d entries", len(stored.ContributionHistory))
	}
	if len(txRepo.transactions) != 0 {
		t.Errorf("expected no mirror transaction, got %d", len(txRepo.transactions))
	}
}

func TestAddContribution_InvalidAmount(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	goalRepo := newFakeGoalRepo()
	uc := NewAddContributionUseCase(goalRepo, newFakeTransactionRepo(decimal.NewFromInt(500)), newFakeCategoryRepo(), &fixedClock{now: now})
	userID := uuid.New()
	g := seedGoal(t, goalRepo, userID, decimal.Zero)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := uc.Execute(context.Background(), AddContributionInput{
			UserID: userID,
			GoalID: g.ID,
			Amount: amount,
		})
		if err == nil {
			t.Fatalf("expected error for amount %s", amount)
		}
		var goalErr *domainerror.GoalError
		if !errors.As(err, &goalErr) || goalErr.Code != domainerror.ErrCodeInvalidContribution {
			t.Errorf("amount %s: expected code %s, got %v", amount, domainerror.ErrCodeInvalidContribution, err)
		}
	}
}

func TestRemoveContribution_UndoesAdd(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	goalRepo := newFakeGoalRepo()
	txRepo := newFakeTransactionRepo(decimal.NewFromInt(500))
	addUC := NewAddContributionUseCase(goalRepo, txRepo, newFakeCategoryRepo(), &fixedClock{now: now})
	removeUC := NewRemoveContributionUseCase(goalRepo, &fixedClock{now: now})
	userID := uuid.New()
	g := seedGoal(t, goalRepo, userID, decimal.NewFromInt(100))

	added, err := addUC.Execute(context.Background(), AddContributionInput{
		UserID: userID,
		GoalID: g.ID,
		Amount: decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !added.Goal.CurrentAmount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected 150 after add, got %s", added.Goal.CurrentAmount)
	}

	out, err := removeUC.Execute(context.Background(), RemoveContributionInput{
		UserID:       userID,
		GoalID:       g.ID,
		HistoryIndex: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Goal.CurrentAmount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected current amount back at 100, got %s", out.Goal.CurrentAmount)
	}
	if len(out.Goal.ContributionHistory) != 1 {
		t.Errorf("expected 1 history entry, got %d", len(out.Goal.ContributionHistory))
	}
	if !out.Removed.Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected removed amount 50, got %s", out.Removed.Amount)
	}
	if out.Goal.LastContributionDate == nil || !out.Goal.LastContributionDate.Equal(g.ContributionHistory[0].Date) {
		t.Error("expected last contribution date to follow the remaining entry")
	}

	// The mirror transaction from the add stays in the ledger.
	if len(txRepo.transactions) != 1 {
		t.Errorf("expected mirror transaction to survive the withdrawal, got %d", len(txRepo.transactions))
	}
}

func TestRemoveContribution_FlooredAtZero(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	goalRepo := newFakeGoalRepo()
	uc := NewRemoveContributionUseCase(goalRepo, &fixedClock{now: now})
	userID := uuid.New()

	// History and current amount have drifted: the entry exceeds the
	// stored amount. The subtraction floors at zero.
	g := entity.NewGoal(userID, "Drifted", decimal.NewFromInt(1000), "", "", entity.FrequencyMonthly)
	g.CurrentAmount = decimal.NewFromInt(30)
	g.ContributionHistory = []entity.Contribution{
		{Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(80)},
	}
	if err := goalRepo.Create(context.Background(), g); err != nil {
		t.Fatal(err)
	}

	out, err := uc.Execute(context.Background(), RemoveContributionInput{
		UserID:       userID,
		GoalID:       g.ID,
		HistoryIndex: 0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Goal.CurrentAmount.IsZero() {
		t.Errorf("expected current amount floored at 0, got %s", out.Goal.CurrentAmount)
	}
	if out.Goal.LastContributionDate != nil {
		t.Error("expected last contribution date cleared for empty history")
	}
}

func TestRemoveContribution_IndexOutOfRange(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	goalRepo := newFakeGoalRepo()
	uc := NewRemoveContributionUseCase(goalRepo, &fixedClock{now: now})
	userID := uuid.New()
	g := seedGoal(t, goalRepo, userID, decimal.NewFromInt(100))

	for _, index := range []int{-1, 1, 5} {
		_, err := uc.Execute(context.Background(), RemoveContributionInput{
			UserID:       userID,
			GoalID:       g.ID,
			HistoryIndex: index,
		})
		if err == nil {
			t.Fatalf("expected error for index %d", index)
		}
		var goalErr *domainerror.GoalError
		if !errors.As(err, &goalErr) || goalErr.Code != domainerror.ErrCodeContributionNotFound {
			t.Errorf("index %d: expected code %s, got %v", index, domainerror.ErrCodeContributionNotFound, err)
		}
	}
}

func TestContribution_ForeignGoalRejected(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	goalRepo := newFakeGoalRepo()
	uc := NewAddContributionUseCase(goalRepo, newFakeTransactionRepo(decimal.NewFromInt(500)), newFakeCategoryRepo(), &fixedClock{now: now})
	g := seedGoal(t, goalRepo, uuid.New(), decimal.Zero)

	_, err := uc.Execute(context.Background(), AddContributionInput{
		UserID: uuid.New(),
		GoalID: g.ID,
		Amount: decimal.NewFromInt(10),
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	var goalErr *domainerror.GoalError
	if !errors.As(err, &goalErr) || goalErr.Code != domainerror.ErrCodeGoalNotFound {
		t.Errorf("expected code %s, got %v", domainerror.ErrCodeGoalNotFound, err)
	}
}
