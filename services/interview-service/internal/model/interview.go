package model

import "time"

type InterviewStatus string

const (
	StatusScheduled   InterviewStatus = "scheduled"
	StatusCompleted   InterviewStatus = "completed"
	StatusCancelled   InterviewStatus = "cancelled"
	StatusNoShow      InterviewStatus = "no-show"
	StatusRescheduled InterviewStatus = "rescheduled"
)

func (s InterviewStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// ReminderKind names a reminder that fires at most once per interview.
type ReminderKind string

const (
	ReminderOneHour    ReminderKind = "one_hour"
	ReminderFiveMinute ReminderKind = "five_minute"
)

// Interview is a committed booking occupying [ScheduledTime, EndTime).
type Interview struct {
	ID             string
	InterviewerID  string
	CandidateID    string
	CandidateName  string
	CandidateEmail string
	ScheduledTime  time.Time
	EndTime        time.Time
	Duration       int
	Status         InterviewStatus
	InterviewType  string
	Timezone       string
	Notes          string
	RoomID         string

	OneHourReminderSent    bool
	FiveMinuteReminderSent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReminderSent reports the flag for kind.
func (iv Interview) ReminderSent(kind ReminderKind) bool {
	switch kind {
	case ReminderOneHour:
		return iv.OneHourReminderSent
	case ReminderFiveMinute:
		return iv.FiveMinuteReminderSent
	}
	return false
}

// CandidateInfo identifies the candidate; ID is empty for unauthenticated bookings.
type CandidateInfo struct {
	ID    string
	Name  string
	Email string
}
