// Package booking turns a requested window into a scheduled interview and manages its
// status afterwards.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/md-rashed-zaman/mockinterview/libs/runtime"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/apperr"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/availability"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/notify"
)

// Store persists interviews. InsertIfFree must re-check overlap against scheduled
// interviews of the same interviewer and insert atomically with respect to other
// InsertIfFree calls for that interviewer, returning a Conflict error on overlap.
type Store interface {
	InsertIfFree(ctx context.Context, iv *model.Interview) error
	GetInterview(ctx context.Context, id string) (model.Interview, error)
	TransitionStatus(ctx context.Context, id string, from, to model.InterviewStatus) (model.Interview, bool, error)
	ListByInterviewer(ctx context.Context, interviewerID string, limit int) ([]model.Interview, error)
}

// Availability answers whether a window fits the interviewer's templates.
type Availability interface {
	WindowAvailable(ctx context.Context, interviewerID string, start, end time.Time) (bool, error)
}

type Committer struct {
	store    Store
	avail    Availability
	notifier notify.Notifier
	clock    runtime.Clock
	logger   *slog.Logger
}

func NewCommitter(store Store, avail Availability, notifier notify.Notifier, clock runtime.Clock, logger *slog.Logger) *Committer {
	if clock == nil {
		clock = runtime.SystemClock()
	}
	if logger == nil {
		logger = runtime.DiscardLogger()
	}
	if notifier == nil {
		notifier = notify.LogNotifier{Logger: logger}
	}
	return &Committer{store: store, avail: avail, notifier: notifier, clock: clock, logger: logger}
}

type BookingRequest struct {
	InterviewerID string
	Candidate     model.CandidateInfo
	ScheduledTime time.Time
	Duration      int // minutes
	InterviewType string
	Timezone      string
	Notes         string
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Commit validates req, confirms the window is still free and persists the interview.
// The notification that follows is best-effort.
func (c *Committer) Commit(ctx context.Context, req BookingRequest) (model.Interview, error) {
	if err := validate(req); err != nil {
		return model.Interview{}, err
	}
	start := req.ScheduledTime.UTC()
	end := start.Add(time.Duration(req.Duration) * time.Minute)
	if start.Before(c.clock.Now()) {
		return model.Interview{}, apperr.Validation("scheduled_time is in the past")
	}

	ok, err := c.avail.WindowAvailable(ctx, req.InterviewerID, start, end)
	if err != nil {
		return model.Interview{}, err
	}
	if !ok {
		return model.Interview{}, apperr.Validation("requested time is outside interviewer availability")
	}

	iv := model.Interview{
		ID:             uuid.NewString(),
		InterviewerID:  req.InterviewerID,
		CandidateID:    strings.TrimSpace(req.Candidate.ID),
		CandidateName:  strings.TrimSpace(req.Candidate.Name),
		CandidateEmail: strings.TrimSpace(req.Candidate.Email),
		ScheduledTime:  start,
		EndTime:        end,
		Duration:       req.Duration,
		Status:         model.StatusScheduled,
		InterviewType:  strings.TrimSpace(req.InterviewType),
		Timezone:       req.Timezone,
		Notes:          req.Notes,
		RoomID:         uuid.NewString(),
	}
	if err := c.store.InsertIfFree(ctx, &iv); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return model.Interview{}, err
		}
		return model.Interview{}, fmt.Errorf("insert interview: %w", err)
	}

	if err := c.notifier.BookingConfirmed(ctx, iv); err != nil {
		c.logger.Warn("booking confirmation notification failed", "interview_id", iv.ID, "err", err)
	}
	c.logger.Info("interview scheduled", "interview_id", iv.ID, "interviewer_id", iv.InterviewerID, "scheduled_time", iv.ScheduledTime)
	return iv, nil
}

func validate(req BookingRequest) error {
	if strings.TrimSpace(req.InterviewerID) == "" {
		return apperr.Validation("interviewer_id is required")
	}
	if strings.TrimSpace(req.Candidate.Name) == "" {
		return apperr.Validation("candidate_name is required")
	}
	email := strings.TrimSpace(req.Candidate.Email)
	if email == "" || !strings.Contains(email, "@") {
		return apperr.Validation("candidate_email is invalid")
	}
	if req.Duration <= 0 {
		return apperr.Validation("duration must be positive")
	}
	if req.ScheduledTime.IsZero() {
		return apperr.Validation("scheduled_time is required")
	}
	if req.Timezone != "" {
		if _, err := availability.LoadLocation(req.Timezone); err != nil {
			return apperr.Wrap(apperr.KindValidation, err, "invalid timezone")
		}
	}
	return nil
}

// UpdateStatus moves a scheduled interview to a terminal status. Cancelling an already
// cancelled interview succeeds without side effects.
func (c *Committer) UpdateStatus(ctx context.Context, id string, to model.InterviewStatus) (model.Interview, error) {
	if strings.TrimSpace(id) == "" {
		return model.Interview{}, apperr.Validation("interview_id is required")
	}
	if !to.Valid() {
		return model.Interview{}, apperr.Validation("unknown status %q", to)
	}
	if to == model.StatusScheduled {
		return model.Interview{}, apperr.Conflict("interview cannot be moved back to scheduled")
	}

	iv, changed, err := c.store.TransitionStatus(ctx, id, model.StatusScheduled, to)
	if err != nil {
		return model.Interview{}, err
	}
	if !changed {
		if iv.Status == to && to == model.StatusCancelled {
			return iv, nil
		}
		return model.Interview{}, apperr.Conflict("interview is %s and cannot become %s", iv.Status, to)
	}

	if to == model.StatusCancelled {
		if err := c.notifier.BookingCancelled(ctx, iv); err != nil {
			c.logger.Warn("cancellation notification failed", "interview_id", iv.ID, "err", err)
		}
	}
	c.logger.Info("interview status changed", "interview_id", iv.ID, "status", string(to))
	return iv, nil
}

func (c *Committer) Get(ctx context.Context, id string) (model.Interview, error) {
	return c.store.GetInterview(ctx, id)
}

// List returns an interviewer's interviews, newest first.
func (c *Committer) List(ctx context.Context, interviewerID string, limit int) ([]model.Interview, error) {
	if strings.TrimSpace(interviewerID) == "" {
		return nil, apperr.Validation("interviewer_id is required")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return c.store.ListByInterviewer(ctx, interviewerID, limit)
}
