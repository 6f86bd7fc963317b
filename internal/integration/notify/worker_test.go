package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type fakeQueue struct {
	jobs    []*entity.ReminderJob
	updates int
}

func (q *fakeQueue) Create(_ context.Context, job *entity.ReminderJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.ReminderJob, error) {
	var pending []*entity.ReminderJob
	for _, job := range q.jobs {
		if job.Status == entity.ReminderStatusPending {
			pending = append(pending, job)
		}
		if len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

func (q *fakeQueue) Update(_ context.Context, _ *entity.ReminderJob) error {
	q.updates++
	return nil
}

func (q *fakeQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.ReminderJob, error) {
	for _, job := range q.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return nil, nil
}

func (q *fakeQueue) ExistsByDedupKey(_ context.Context, dedupKey string) (bool, error) {
	for _, job := range q.jobs {
		if job.DedupKey == dedupKey {
			return true, nil
		}
	}
	return false, nil
}

func (q *fakeQueue) DeleteOldSentJobs(_ context.Context, _ int) (int64, error) {
	return 0, nil
}

type fakeSender struct {
	sent    []adapter.SendEmailInput
	sendErr error
}

func (s *fakeSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ProviderID: "email-123"}, nil
}

func newTestJob(kind entity.ReminderKind, data map[string]interface{}) *entity.ReminderJob {
	return entity.NewReminderJob(
		uuid.New(), kind, "dedup", "jane@example.com", "Jane", "Test reminder", data,
	)
}

func newQueueWorker(queue adapter.ReminderQueueRepository, sender adapter.EmailSender) *Worker {
	clock := &fixedClock{now: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}
	return NewWorker(nil, nil, queue, sender, clock, nil, nil, DefaultWorkerConfig())
}

func TestWorker_DrainQueue(t *testing.T) {
	t.Run("SendsPendingJobAndMarksSent", func(t *testing.T) {
		queue := &fakeQueue{}
		sender := &fakeSender{}
		job := newTestJob(entity.ReminderRecurringDue, map[string]interface{}{
			"description": "Netflix",
			"amount":      "39.90",
			"due_date":    "2025-03-20",
		})
		queue.jobs = append(queue.jobs, job)

		w := newQueueWorker(queue, sender)
		w.drainQueue(context.Background())

		if job.Status != entity.ReminderStatusSent {
			t.Fatalf("expected status sent, got %s", job.Status)
		}
		if job.ProviderID != "email-123" {
			t.Errorf("expected provider ID email-123, got %q", job.ProviderID)
		}
		if len(sender.sent) != 1 {
			t.Fatalf("expected 1 email sent, got %d", len(sender.sent))
		}
		if sender.sent[0].To != "jane@example.com" {
			t.Errorf("unexpected recipient: %s", sender.sent[0].To)
		}
		if !strings.Contains(sender.sent[0].HTML, "Netflix") {
			t.Errorf("expected HTML body to mention the charge, got %q", sender.sent[0].HTML)
		}
	})

	t.Run("TransientFailureSchedulesRetry", func(t *testing.T) {
		queue := &fakeQueue{}
		sender := &fakeSender{
			sendErr: domainerror.NewReminderError(domainerror.ErrCodeTransientSendFailure, "provider timeout", nil),
		}
		job := newTestJob(entity.ReminderBudgetExceeded, map[string]interface{}{
			"category": "Groceries", "period": "monthly",
			"limit_amount": "500.00", "current_spending": "612.40",
		})
		queue.jobs = append(queue.jobs, job)

		w := newQueueWorker(queue, sender)
		w.drainQueue(context.Background())

		if job.Status != entity.ReminderStatusPending {
			t.Fatalf("expected retryable job to return to pending, got %s", job.Status)
		}
		if job.Attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", job.Attempts)
		}
	})

	t.Run("PermanentFailureMarksFailed", func(t *testing.T) {
		queue := &fakeQueue{}
		sender := &fakeSender{
			sendErr: domainerror.NewReminderError(domainerror.ErrCodePermanentSendFailure, "invalid recipient", nil),
		}
		job := newTestJob(entity.ReminderContributionDue, map[string]interface{}{
			"goal_name": "Vacation", "current_amount": "200.00", "target_amount": "1000.00",
		})
		queue.jobs = append(queue.jobs, job)

		w := newQueueWorker(queue, sender)
		w.drainQueue(context.Background())

		if job.Status != entity.ReminderStatusFailed {
			t.Fatalf("expected permanent failure to mark job failed, got %s", job.Status)
		}
		if job.Attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", job.Attempts)
		}
	})

	t.Run("ExhaustedAttemptsMarkFailed", func(t *testing.T) {
		queue := &fakeQueue{}
		sender := &fakeSender{sendErr: errors.New("connection reset")}
		job := newTestJob(entity.ReminderRecurringDue, map[string]interface{}{
			"description": "Rent", "amount": "1200.00", "due_date": "2025-03-16",
		})
		job.Attempts = 2
		queue.jobs = append(queue.jobs, job)

		w := newQueueWorker(queue, sender)
		w.drainQueue(context.Background())

		if job.Status != entity.ReminderStatusFailed {
			t.Fatalf("expected job at attempt cap to be failed, got %s", job.Status)
		}
	})
}

func TestIsPermanentSendError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		permanent bool
	}{
		{
			name:      "PermanentCode",
			err:       domainerror.NewReminderError(domainerror.ErrCodePermanentSendFailure, "unauthorized", nil),
			permanent: true,
		},
		{
			name:      "TransientCode",
			err:       domainerror.NewReminderError(domainerror.ErrCodeTransientSendFailure, "timeout", nil),
			permanent: false,
		},
		{
			name:      "PlainError",
			err:       errors.New("dial tcp: i/o timeout"),
			permanent: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPermanentSendError(tt.err); got != tt.permanent {
				t.Errorf("isPermanentSendError() = %v, want %v", got, tt.permanent)
			}
		})
	}
}

func TestRenderReminder(t *testing.T) {
	t.Run("ContributionWithoutAmount", func(t *testing.T) {
		job := newTestJob(entity.ReminderContributionDue, map[string]interface{}{
			"goal_name": "Emergency fund", "current_amount": "350.00", "target_amount": "2000.00",
		})

		html, text := renderReminder(job)
		if !strings.Contains(html, "Emergency fund") {
			t.Errorf("expected HTML to mention the goal, got %q", html)
		}
		if strings.Contains(text, "of  ") {
			t.Errorf("expected optional amount to be omitted cleanly, got %q", text)
		}
	})

	t.Run("UnknownKindFallsBack", func(t *testing.T) {
		job := newTestJob(entity.ReminderKind("unknown"), nil)

		html, text := renderReminder(job)
		if html == "" || text == "" {
			t.Fatal("expected fallback bodies for unknown kind")
		}
		if !strings.Contains(html, job.Subject) {
			t.Errorf("expected fallback to include the subject, got %q", html)
		}
	})
}
