// Package notify delivers interview lifecycle messages to candidates and interviewers.
package notify

import (
	"context"
	"log/slog"

	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
)

// Notifier is called after state changes are durable. Callers treat its errors as
// best-effort and never undo the change that triggered the call.
type Notifier interface {
	BookingConfirmed(ctx context.Context, iv model.Interview) error
	BookingCancelled(ctx context.Context, iv model.Interview) error
	Reminder(ctx context.Context, iv model.Interview, kind model.ReminderKind) error
}

// LogNotifier only logs; used when no outbox is configured.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) BookingConfirmed(_ context.Context, iv model.Interview) error {
	n.log("booking confirmed", iv)
	return nil
}

func (n LogNotifier) BookingCancelled(_ context.Context, iv model.Interview) error {
	n.log("booking cancelled", iv)
	return nil
}

func (n LogNotifier) Reminder(_ context.Context, iv model.Interview, kind model.ReminderKind) error {
	n.log("reminder due", iv, "kind", string(kind))
	return nil
}

func (n LogNotifier) log(msg string, iv model.Interview, extra ...any) {
	if n.Logger == nil {
		return
	}
	args := append([]any{"interview_id", iv.ID, "interviewer_id", iv.InterviewerID, "scheduled_time", iv.ScheduledTime}, extra...)
	n.Logger.Info(msg, args...)
}
