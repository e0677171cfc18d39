// Package memstore keeps templates and interviews in process memory. It implements the
// same contracts as the Postgres repositories and serialises bookings with one mutex per
// interviewer.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/apperr"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
)

type Store struct {
	mu         sync.RWMutex
	templates  map[string]model.AvailabilityTemplate
	interviews map[string]model.Interview

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	now func() time.Time
}

func New() *Store {
	return &Store{
		templates:  map[string]model.AvailabilityTemplate{},
		interviews: map[string]model.Interview{},
		locks:      map[string]*sync.Mutex{},
		now:        time.Now,
	}
}

func (s *Store) interviewerLock(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Templates.

func (s *Store) CreateTemplate(_ context.Context, tpl model.AvailabilityTemplate) (model.AvailabilityTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.templates[tpl.ID]; exists {
		return model.AvailabilityTemplate{}, apperr.Conflict("template %s already exists", tpl.ID)
	}
	now := s.now().UTC()
	tpl.CreatedAt, tpl.UpdatedAt = now, now
	s.templates[tpl.ID] = copyTemplate(tpl)
	return copyTemplate(tpl), nil
}

func (s *Store) GetTemplate(_ context.Context, id string) (model.AvailabilityTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tpl, ok := s.templates[id]
	if !ok {
		return model.AvailabilityTemplate{}, apperr.NotFound("template %s not found", id)
	}
	return copyTemplate(tpl), nil
}

func (s *Store) DeleteTemplate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[id]; !ok {
		return apperr.NotFound("template %s not found", id)
	}
	delete(s.templates, id)
	return nil
}

func (s *Store) SetTemplateActive(_ context.Context, id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl, ok := s.templates[id]
	if !ok {
		return apperr.NotFound("template %s not found", id)
	}
	tpl.IsActive = active
	tpl.UpdatedAt = s.now().UTC()
	s.templates[id] = tpl
	return nil
}

func (s *Store) ListTemplates(_ context.Context, interviewerID string) ([]model.AvailabilityTemplate, error) {
	return s.filterTemplates(interviewerID, false), nil
}

func (s *Store) ListActiveTemplates(_ context.Context, interviewerID string) ([]model.AvailabilityTemplate, error) {
	return s.filterTemplates(interviewerID, true), nil
}

func (s *Store) filterTemplates(interviewerID string, activeOnly bool) []model.AvailabilityTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.AvailabilityTemplate
	for _, tpl := range s.templates {
		if tpl.InterviewerID != interviewerID || (activeOnly && !tpl.IsActive) {
			continue
		}
		out = append(out, copyTemplate(tpl))
	}
	// Same ordering as the SQL repository.
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek < b.DayOfWeek
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})
	return out
}

func copyTemplate(tpl model.AvailabilityTemplate) model.AvailabilityTemplate {
	if tpl.Break != nil {
		b := *tpl.Break
		tpl.Break = &b
	}
	return tpl
}

// Interviews.

// InsertIfFree re-checks overlap and inserts while holding the interviewer's lock.
func (s *Store) InsertIfFree(_ context.Context, iv *model.Interview) error {
	l := s.interviewerLock(iv.InterviewerID)
	l.Lock()
	defer l.Unlock()

	s.mu.RLock()
	for _, other := range s.interviews {
		if other.InterviewerID == iv.InterviewerID && other.Status == model.StatusScheduled &&
			iv.ScheduledTime.Before(other.EndTime) && iv.EndTime.After(other.ScheduledTime) {
			s.mu.RUnlock()
			return apperr.Conflict("slot no longer available")
		}
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.interviews[iv.ID]; exists {
		return apperr.Conflict("interview %s already exists", iv.ID)
	}
	now := s.now().UTC()
	iv.CreatedAt, iv.UpdatedAt = now, now
	s.interviews[iv.ID] = *iv
	return nil
}

func (s *Store) GetInterview(_ context.Context, id string) (model.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	iv, ok := s.interviews[id]
	if !ok {
		return model.Interview{}, apperr.NotFound("interview %s not found", id)
	}
	return iv, nil
}

// TransitionStatus moves an interview from `from` to `to` only if it is still in `from`.
func (s *Store) TransitionStatus(_ context.Context, id string, from, to model.InterviewStatus) (model.Interview, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	iv, ok := s.interviews[id]
	if !ok {
		return model.Interview{}, false, apperr.NotFound("interview %s not found", id)
	}
	if iv.Status != from {
		return iv, false, nil
	}
	iv.Status = to
	iv.UpdatedAt = s.now().UTC()
	s.interviews[id] = iv
	return iv, true, nil
}

func (s *Store) ListByInterviewer(_ context.Context, interviewerID string, limit int) ([]model.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Interview
	for _, iv := range s.interviews {
		if iv.InterviewerID == interviewerID {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledTime.After(out[j].ScheduledTime) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListScheduledBetween(_ context.Context, interviewerID string, start, end time.Time) ([]model.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Interview
	for _, iv := range s.interviews {
		if iv.InterviewerID == interviewerID && iv.Status == model.StatusScheduled &&
			iv.ScheduledTime.Before(end) && iv.EndTime.After(start) {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledTime.Before(out[j].ScheduledTime) })
	return out, nil
}

// ListStartingBetween returns scheduled interviews of any interviewer starting in [from, to].
func (s *Store) ListStartingBetween(_ context.Context, from, to time.Time, limit int) ([]model.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Interview
	for _, iv := range s.interviews {
		if iv.Status == model.StatusScheduled && !iv.ScheduledTime.Before(from) && !iv.ScheduledTime.After(to) {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledTime.Before(out[j].ScheduledTime) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ClaimReminder flips the flag for kind if it is unset and the interview is still scheduled.
func (s *Store) ClaimReminder(_ context.Context, id string, kind model.ReminderKind) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	iv, ok := s.interviews[id]
	if !ok {
		return false, apperr.NotFound("interview %s not found", id)
	}
	if iv.Status != model.StatusScheduled || iv.ReminderSent(kind) {
		return false, nil
	}
	switch kind {
	case model.ReminderOneHour:
		iv.OneHourReminderSent = true
	case model.ReminderFiveMinute:
		iv.FiveMinuteReminderSent = true
	default:
		return false, apperr.Validation("unknown reminder kind %q", kind)
	}
	iv.UpdatedAt = s.now().UTC()
	s.interviews[id] = iv
	return true, nil
}
