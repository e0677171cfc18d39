// Package templates manages interviewers' weekly availability templates.
package templates

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/md-rashed-zaman/mockinterview/libs/runtime"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/apperr"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/availability"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
)

type Store interface {
	CreateTemplate(ctx context.Context, tpl model.AvailabilityTemplate) (model.AvailabilityTemplate, error)
	DeleteTemplate(ctx context.Context, id string) error
	SetTemplateActive(ctx context.Context, id string, active bool) error
	ListTemplates(ctx context.Context, interviewerID string) ([]model.AvailabilityTemplate, error)
}

type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = runtime.DiscardLogger()
	}
	return &Service{store: store, logger: logger}
}

type CreateInput struct {
	InterviewerID     string
	DayOfWeek         int
	StartTime         string
	EndTime           string
	BreakStart        string
	BreakEnd          string
	InterviewDuration int
	BufferMinutes     int
	Timezone          string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (model.AvailabilityTemplate, error) {
	tpl, err := build(in)
	if err != nil {
		return model.AvailabilityTemplate{}, err
	}
	created, err := s.store.CreateTemplate(ctx, tpl)
	if err != nil {
		return model.AvailabilityTemplate{}, err
	}
	s.logger.Info("availability template created", "template_id", created.ID, "interviewer_id", created.InterviewerID, "day_of_week", created.DayOfWeek)
	return created, nil
}

func build(in CreateInput) (model.AvailabilityTemplate, error) {
	interviewer := strings.TrimSpace(in.InterviewerID)
	if interviewer == "" {
		return model.AvailabilityTemplate{}, apperr.Validation("interviewer_id is required")
	}
	if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
		return model.AvailabilityTemplate{}, apperr.Validation("day_of_week must be between 0 and 6")
	}
	start, err := availability.ParseClock(in.StartTime)
	if err != nil {
		return model.AvailabilityTemplate{}, apperr.Wrap(apperr.KindValidation, err, "invalid start_time")
	}
	end, err := availability.ParseClock(in.EndTime)
	if err != nil {
		return model.AvailabilityTemplate{}, apperr.Wrap(apperr.KindValidation, err, "invalid end_time")
	}
	if start.Minutes() >= end.Minutes() {
		return model.AvailabilityTemplate{}, apperr.Validation("start_time must be before end_time")
	}
	if in.InterviewDuration <= 0 {
		return model.AvailabilityTemplate{}, apperr.Validation("interview_duration must be positive")
	}
	if in.InterviewDuration > end.Minutes()-start.Minutes() {
		return model.AvailabilityTemplate{}, apperr.Validation("interview_duration does not fit the window")
	}
	if in.BufferMinutes < 0 {
		return model.AvailabilityTemplate{}, apperr.Validation("buffer_minutes must not be negative")
	}
	if strings.TrimSpace(in.Timezone) == "" {
		return model.AvailabilityTemplate{}, apperr.Validation("timezone is required")
	}
	if _, err := availability.LoadLocation(in.Timezone); err != nil {
		return model.AvailabilityTemplate{}, apperr.Wrap(apperr.KindValidation, err, "invalid timezone")
	}

	tpl := model.AvailabilityTemplate{
		ID:                uuid.NewString(),
		InterviewerID:     interviewer,
		DayOfWeek:         in.DayOfWeek,
		StartTime:         start.String(),
		EndTime:           end.String(),
		InterviewDuration: in.InterviewDuration,
		BufferMinutes:     in.BufferMinutes,
		Timezone:          in.Timezone,
		IsActive:          true,
	}

	if in.BreakStart != "" || in.BreakEnd != "" {
		bs, err := availability.ParseClock(in.BreakStart)
		if err != nil {
			return model.AvailabilityTemplate{}, apperr.Wrap(apperr.KindValidation, err, "invalid break_start")
		}
		be, err := availability.ParseClock(in.BreakEnd)
		if err != nil {
			return model.AvailabilityTemplate{}, apperr.Wrap(apperr.KindValidation, err, "invalid break_end")
		}
		if bs.Minutes() >= be.Minutes() {
			return model.AvailabilityTemplate{}, apperr.Validation("break_start must be before break_end")
		}
		if bs.Minutes() < start.Minutes() || be.Minutes() > end.Minutes() {
			return model.AvailabilityTemplate{}, apperr.Validation("break must lie within the template window")
		}
		tpl.Break = &model.BreakWindow{Start: bs.String(), End: be.String()}
	}
	return tpl, nil
}

// Delete removes a template outright. Existing interviews are unaffected.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Validation("id is required")
	}
	if err := s.store.DeleteTemplate(ctx, id); err != nil {
		return err
	}
	s.logger.Info("availability template deleted", "template_id", id)
	return nil
}

// Deactivate hides a template from slot resolution but keeps the row.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Validation("id is required")
	}
	return s.store.SetTemplateActive(ctx, id, false)
}

func (s *Service) List(ctx context.Context, interviewerID string) ([]model.AvailabilityTemplate, error) {
	if strings.TrimSpace(interviewerID) == "" {
		return nil, apperr.Validation("interviewer_id is required")
	}
	return s.store.ListTemplates(ctx, interviewerID)
}
