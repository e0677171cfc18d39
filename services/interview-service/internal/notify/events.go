package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
)

const (
	EventBooked        = "interview.booked.v1"
	EventCancelled     = "interview.cancelled.v1"
	EventReminderDue   = "interview.reminder.due.v1"
	aggregateInterview = "interview"
)

// Topics lists every event type the dispatcher consumes.
func Topics() []string {
	return []string{EventBooked, EventCancelled, EventReminderDue}
}

// InterviewEvent is the JSON payload of every interview event.
type InterviewEvent struct {
	InterviewID    string             `json:"interview_id"`
	InterviewerID  string             `json:"interviewer_id"`
	CandidateName  string             `json:"candidate_name"`
	CandidateEmail string             `json:"candidate_email"`
	ScheduledTime  time.Time          `json:"scheduled_time"`
	EndTime        time.Time          `json:"end_time"`
	Duration       int                `json:"duration"`
	InterviewType  string             `json:"interview_type,omitempty"`
	Timezone       string             `json:"timezone,omitempty"`
	RoomID         string             `json:"room_id"`
	Status         string             `json:"status"`
	Reminder       model.ReminderKind `json:"reminder,omitempty"`
}

func newEvent(iv model.Interview) InterviewEvent {
	return InterviewEvent{
		InterviewID:    iv.ID,
		InterviewerID:  iv.InterviewerID,
		CandidateName:  iv.CandidateName,
		CandidateEmail: iv.CandidateEmail,
		ScheduledTime:  iv.ScheduledTime.UTC(),
		EndTime:        iv.EndTime.UTC(),
		Duration:       iv.Duration,
		InterviewType:  iv.InterviewType,
		Timezone:       iv.Timezone,
		RoomID:         iv.RoomID,
		Status:         string(iv.Status),
	}
}

func decodeEvent(payload []byte) (InterviewEvent, error) {
	var evt InterviewEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return InterviewEvent{}, fmt.Errorf("decode interview event: %w", err)
	}
	if evt.InterviewID == "" {
		return InterviewEvent{}, fmt.Errorf("decode interview event: missing interview_id")
	}
	return evt, nil
}
