package availability

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/md-rashed-zaman/mockinterview/libs/runtime"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/apperr"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
)

// TemplateReader loads an interviewer's active availability templates.
type TemplateReader interface {
	ListActiveTemplates(ctx context.Context, interviewerID string) ([]model.AvailabilityTemplate, error)
}

// InterviewReader loads scheduled interviews intersecting [start, end).
type InterviewReader interface {
	ListScheduledBetween(ctx context.Context, interviewerID string, start, end time.Time) ([]model.Interview, error)
}

// Resolver computes bookable windows. It only reads and never caches, so it is safe to
// call concurrently.
type Resolver struct {
	templates  TemplateReader
	interviews InterviewReader
	clock      runtime.Clock
	logger     *slog.Logger
}

func NewResolver(templates TemplateReader, interviews InterviewReader, clock runtime.Clock, logger *slog.Logger) *Resolver {
	if clock == nil {
		clock = runtime.SystemClock()
	}
	if logger == nil {
		logger = runtime.DiscardLogger()
	}
	return &Resolver{templates: templates, interviews: interviews, clock: clock, logger: logger}
}

type Request struct {
	InterviewerID string
	Date          string // YYYY-MM-DD in the interviewer's reference timezone
	Timezone      string // caller's display timezone, optional
}

type Result struct {
	Slots []model.SlotWindow
	// Reference is the interviewer's zone; nil when the interviewer has no active templates.
	Reference *time.Location
	Display   *time.Location
}

// ResolveSlots returns the chronologically ordered bookable windows for one day.
// An interviewer without active templates yields an empty result, not an error.
func (r *Resolver) ResolveSlots(ctx context.Context, req Request) (Result, error) {
	if req.InterviewerID == "" {
		return Result{}, apperr.Validation("interviewer_id is required")
	}

	var display *time.Location
	if req.Timezone != "" {
		loc, err := LoadLocation(req.Timezone)
		if err != nil {
			return Result{}, apperr.Wrap(apperr.KindValidation, err, "invalid timezone")
		}
		display = loc
	}

	active, err := r.templates.ListActiveTemplates(ctx, req.InterviewerID)
	if err != nil {
		return Result{}, fmt.Errorf("load templates: %w", err)
	}
	if len(active) == 0 {
		return Result{Display: display}, nil
	}

	ref, err := referenceLocation(active)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindConfiguration, err, "interviewer timezone misconfigured")
	}
	if display == nil {
		display = ref
	}

	day, err := ParseDate(req.Date, ref)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindValidation, err, "invalid date")
	}

	windows := r.windowsFor(active, day)
	res := Result{Reference: ref, Display: display}
	if len(windows) == 0 {
		return res, nil
	}

	from, to := DayBounds(day, ref)
	for _, w := range windows {
		if w.Start.Before(from) {
			from = w.Start
		}
		if w.End.After(to) {
			to = w.End
		}
	}
	booked, err := r.interviews.ListScheduledBetween(ctx, req.InterviewerID, from, to)
	if err != nil {
		return Result{}, fmt.Errorf("load interviews: %w", err)
	}
	busy := make([]Interval, 0, len(booked))
	for _, iv := range booked {
		busy = append(busy, Interval{Start: iv.ScheduledTime.In(ref), End: iv.EndTime.In(ref)})
	}

	now := r.clock.Now()
	for _, w := range windows {
		res.Slots = append(res.Slots, GenerateSlots(w, busy, now)...)
	}
	sort.SliceStable(res.Slots, func(i, j int) bool {
		return res.Slots[i].Start.Before(res.Slots[j].Start)
	})
	return res, nil
}

// WindowAvailable reports whether [start,end) lies inside one of the interviewer's
// template windows for that day, clear of breaks. It does not look at bookings.
func (r *Resolver) WindowAvailable(ctx context.Context, interviewerID string, start, end time.Time) (bool, error) {
	active, err := r.templates.ListActiveTemplates(ctx, interviewerID)
	if err != nil {
		return false, fmt.Errorf("load templates: %w", err)
	}
	if len(active) == 0 {
		return false, apperr.Configuration("interviewer %s has no active availability", interviewerID)
	}
	ref, err := referenceLocation(active)
	if err != nil {
		return false, apperr.Wrap(apperr.KindConfiguration, err, "interviewer timezone misconfigured")
	}
	for _, w := range r.windowsFor(active, start.In(ref)) {
		if w.Contains(start, end) {
			return true, nil
		}
	}
	return false, nil
}

// referenceLocation takes the zone of the first template; templates arrive in a stable
// order from storage.
func referenceLocation(templates []model.AvailabilityTemplate) (*time.Location, error) {
	return LoadLocation(templates[0].Timezone)
}

// windowsFor keeps templates whose weekday matches day's weekday and materialises them.
// Broken templates are logged and skipped so one bad row does not hide the others.
func (r *Resolver) windowsFor(templates []model.AvailabilityTemplate, day time.Time) []Window {
	weekday := int(day.Weekday())
	var out []Window
	for _, tpl := range templates {
		if !tpl.IsActive || tpl.DayOfWeek != weekday {
			continue
		}
		w, err := Materialize(tpl, day)
		if err != nil {
			r.logger.Warn("skipping invalid availability template", "template_id", tpl.ID, "err", err)
			continue
		}
		out = append(out, w)
	}
	return out
}
