package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/apperr"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
)

func interview(id string, start time.Time, mins int) *model.Interview {
	return &model.Interview{
		ID:            id,
		InterviewerID: "iv-1",
		ScheduledTime: start,
		EndTime:       start.Add(time.Duration(mins) * time.Minute),
		Duration:      mins,
		Status:        model.StatusScheduled,
	}
}

func TestInsertIfFree(t *testing.T) {
	ctx := context.Background()
	s := New()
	nine := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	if err := s.InsertIfFree(ctx, interview("a", nine, 60)); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := s.InsertIfFree(ctx, interview("b", nine.Add(30*time.Minute), 60)); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("overlap: expected conflict, got %v", err)
	}
	// Touching end-to-start is not an overlap.
	if err := s.InsertIfFree(ctx, interview("c", nine.Add(time.Hour), 30)); err != nil {
		t.Fatalf("adjacent insert: %v", err)
	}

	if _, changed, err := s.TransitionStatus(ctx, "a", model.StatusScheduled, model.StatusCancelled); err != nil || !changed {
		t.Fatalf("cancel: changed=%v err=%v", changed, err)
	}
	if err := s.InsertIfFree(ctx, interview("d", nine, 60)); err != nil {
		t.Fatalf("cancelled interview should free the window: %v", err)
	}
}

func TestTransitionStatusIsCompareAndSet(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.InsertIfFree(ctx, interview("a", time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), 30))

	if _, changed, _ := s.TransitionStatus(ctx, "a", model.StatusScheduled, model.StatusCompleted); !changed {
		t.Fatal("expected first transition to apply")
	}
	got, changed, err := s.TransitionStatus(ctx, "a", model.StatusScheduled, model.StatusCancelled)
	if err != nil || changed {
		t.Fatalf("second transition: changed=%v err=%v", changed, err)
	}
	if got.Status != model.StatusCompleted {
		t.Fatalf("status = %s", got.Status)
	}
	if _, _, err := s.TransitionStatus(ctx, "missing", model.StatusScheduled, model.StatusCancelled); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClaimReminderOnce(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.InsertIfFree(ctx, interview("a", time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), 30))

	for i, want := range []bool{true, false} {
		ok, err := s.ClaimReminder(ctx, "a", model.ReminderOneHour)
		if err != nil || ok != want {
			t.Fatalf("claim %d: ok=%v err=%v", i, ok, err)
		}
	}
	if ok, _ := s.ClaimReminder(ctx, "a", model.ReminderFiveMinute); !ok {
		t.Fatal("five-minute flag is independent of the one-hour flag")
	}
	if _, err := s.ClaimReminder(ctx, "a", model.ReminderKind("weekly")); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
