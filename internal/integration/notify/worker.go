// Package notify implements the reminder email pipeline.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/application/usecase/budget"
	"github.com/quanta/backend/internal/application/usecase/recurring"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

// WorkerConfig holds configuration for the reminder worker.
type WorkerConfig struct {
	CheckInterval time.Duration
	BatchSize     int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		CheckInterval: 30 * time.Minute,
		BatchSize:     20,
	}
}

// Worker runs the reminder loop: on every tick it checks each user for
// reminder-worthy events, enqueues deduplicated jobs, and drains the
// queue through the email sender. Sends are fire-and-forget; a failed
// job retries until its attempt cap and then stays failed.
type Worker struct {
	userRepo adapter.UserRepository
	goalRepo adapter.GoalRepository
	queue    adapter.ReminderQueueRepository
	sender   adapter.EmailSender
	clock    adapter.Clock

	pendingPayments *recurring.PendingPaymentsUseCase
	listBudgets     *budget.ListBudgetsUseCase

	checkInterval time.Duration
	batchSize     int
}

// NewWorker creates a new reminder worker.
func NewWorker(
	userRepo adapter.UserRepository,
	goalRepo adapter.GoalRepository,
	queue adapter.ReminderQueueRepository,
	sender adapter.EmailSender,
	clock adapter.Clock,
	pendingPayments *recurring.PendingPaymentsUseCase,
	listBudgets *budget.ListBudgetsUseCase,
	config WorkerConfig,
) *Worker {
	return &Worker{
		userRepo:        userRepo,
		goalRepo:        goalRepo,
		queue:           queue,
		sender:          sender,
		clock:           clock,
		pendingPayments: pendingPayments,
		listBudgets:     listBudgets,
		checkInterval:   config.CheckInterval,
		batchSize:       config.BatchSize,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Reminder worker started",
		"check_interval", w.checkInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	// Run immediately on start, then on ticker.
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Reminder worker shutting down")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce performs one eligibility sweep followed by a queue drain.
func (w *Worker) runOnce(ctx context.Context) {
	w.checkEligibility(ctx)
	w.drainQueue(ctx)
}

// checkEligibility enqueues reminder jobs for every user with a
// reminder-worthy event.
func (w *Worker) checkEligibility(ctx context.Context) {
	users, err := w.userRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Failed to list users for reminder checks", "error", err)
		return
	}

	for _, user := range users {
		if ctx.Err() != nil {
			return
		}
		if !user.EmailNotifications {
			continue
		}

		if user.RecurringReminders {
			w.checkRecurringDue(ctx, user)
		}
		if user.GoalAlerts {
			w.checkContributionsDue(ctx, user)
			w.checkBudgetsExceeded(ctx, user)
		}
	}
}

// checkRecurringDue enqueues reminders for recurring charges due within
// the pending-payment horizon.
func (w *Worker) checkRecurringDue(ctx context.Context, user *entity.User) {
	out, err := w.pendingPayments.Execute(ctx, recurring.PendingPaymentsInput{UserID: user.ID})
	if err != nil {
		slog.Error("Failed to compute pending payments for reminders", "error", err, "user_id", user.ID)
		return
	}

	for _, payment := range out.Payments {
		subject := fmt.Sprintf("Upcoming payment: %s", payment.Description)
		data := map[string]interface{}{
			"description":    payment.Description,
			"amount":         payment.Amount.StringFixed(2),
			"due_date":       payment.DueDate.Format("2006-01-02"),
			"days_until_due": payment.DaysUntilDue,
		}
		w.enqueue(ctx, user, entity.ReminderRecurringDue, subject, data)
	}
}

// checkContributionsDue enqueues reminders for goals whose next
// scheduled contribution falls on the current calendar day.
func (w *Worker) checkContributionsDue(ctx context.Context, user *entity.User) {
	goals, err := w.goalRepo.FindByUser(ctx, user.ID)
	if err != nil {
		slog.Error("Failed to list goals for reminders", "error", err, "user_id", user.ID)
		return
	}

	now := w.clock.Now()
	for _, goal := range goals {
		if goal.NextContributionDate == nil {
			continue
		}
		next := *goal.NextContributionDate
		if next.Year() != now.Year() || next.YearDay() != now.YearDay() {
			continue
		}

		subject := fmt.Sprintf("Contribution due today: %s", goal.Name)
		data := map[string]interface{}{
			"goal_name":      goal.Name,
			"current_amount": goal.CurrentAmount.StringFixed(2),
			"target_amount":  goal.TargetAmount.StringFixed(2),
		}
		if goal.ContributionAmount != nil {
			data["contribution_amount"] = goal.ContributionAmount.StringFixed(2)
		}
		w.enqueue(ctx, user, entity.ReminderContributionDue, subject, data)
	}
}

// checkBudgetsExceeded enqueues reminders for budgets whose current
// period spending is over the limit.
func (w *Worker) checkBudgetsExceeded(ctx context.Context, user *entity.User) {
	out, err := w.listBudgets.Execute(ctx, budget.ListBudgetsInput{UserID: user.ID})
	if err != nil {
		slog.Error("Failed to list budgets for reminders", "error", err, "user_id", user.ID)
		return
	}

	for _, b := range out.Budgets {
		if !b.Budget.AlertOnExceed || !b.IsExceeded() {
			continue
		}

		categoryName := "category"
		if b.Category != nil {
			categoryName = b.Category.Name
		}
		subject := fmt.Sprintf("Budget exceeded: %s", categoryName)
		data := map[string]interface{}{
			"category":         categoryName,
			"limit_amount":     b.Budget.LimitAmount.StringFixed(2),
			"current_spending": b.CurrentSpending.StringFixed(2),
			"period":           string(b.Budget.Period),
		}
		w.enqueue(ctx, user, entity.ReminderBudgetExceeded, subject, data)
	}
}

// enqueue creates a reminder job unless the same reminder was already
// enqueued for this subject today.
func (w *Worker) enqueue(ctx context.Context, user *entity.User, kind entity.ReminderKind, subject string, data map[string]interface{}) {
	day := w.clock.Now().Format("2006-01-02")
	dedupKey := fmt.Sprintf("%s/%s/%s/%s", user.ID, kind, subject, day)

	exists, err := w.queue.ExistsByDedupKey(ctx, dedupKey)
	if err != nil {
		slog.Error("Failed to check reminder dedup key", "error", err, "dedup_key", dedupKey)
		return
	}
	if exists {
		return
	}

	job := entity.NewReminderJob(user.ID, kind, dedupKey, user.Email, user.Name, subject, data)
	if err := w.queue.Create(ctx, job); err != nil {
		slog.Error("Failed to enqueue reminder", "error", err, "dedup_key", dedupKey)
		return
	}
	slog.Info("Reminder enqueued", "kind", string(kind), "user_id", user.ID, "subject", subject)
}

// drainQueue sends a batch of pending jobs.
func (w *Worker) drainQueue(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending reminder jobs", "error", err)
		return
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w.processJob(ctx, job)
	}
}

// processJob sends a single reminder job and records the outcome.
func (w *Worker) processJob(ctx context.Context, job *entity.ReminderJob) {
	logger := slog.With(
		"job_id", job.ID,
		"kind", string(job.Kind),
		"recipient", job.RecipientEmail,
	)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark reminder as processing", "error", err)
		return
	}

	html, text := renderReminder(job)
	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		permanent := isPermanentSendError(err)
		job.MarkFailed(err, permanent)
		if updateErr := w.queue.Update(ctx, job); updateErr != nil {
			logger.Error("Failed to record reminder failure", "error", updateErr)
		}
		logger.Warn("Reminder send failed", "error", err, "permanent", permanent, "attempts", job.Attempts)
		return
	}

	job.MarkSent(result.ProviderID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark reminder as sent", "error", err)
		return
	}
	logger.Info("Reminder sent", "provider_id", result.ProviderID)
}

// isPermanentSendError reports whether the send failure is not worth retrying.
func isPermanentSendError(err error) bool {
	var reminderErr *domainerror.ReminderError
	if errors.As(err, &reminderErr) {
		return reminderErr.Code == domainerror.ErrCodePermanentSendFailure
	}
	return false
}
