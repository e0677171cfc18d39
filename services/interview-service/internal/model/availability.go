package model

import "time"

// BreakWindow is a wall-clock pause inside a template's working window.
type BreakWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityTemplate is a weekly recurring availability rule. Several templates may
// share an interviewer and weekday to describe split shifts.
type AvailabilityTemplate struct {
	ID                string
	InterviewerID     string
	DayOfWeek         int
	StartTime         string
	EndTime           string
	Break             *BreakWindow
	InterviewDuration int
	BufferMinutes     int
	Timezone          string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SlotWindow is one bookable interval.
type SlotWindow struct {
	Start    time.Time
	End      time.Time
	Duration int
}
