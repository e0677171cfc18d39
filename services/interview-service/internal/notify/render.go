package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/notify/email"
)

const timeLayout = "Mon, 02 Jan 2006 15:04 MST"

// render builds the plain-text message for the candidate. It reports false for event
// types that produce no email.
func render(eventType string, evt InterviewEvent) (email.Message, bool) {
	when := localTime(evt.ScheduledTime, evt.Timezone).Format(timeLayout)
	kind := evt.InterviewType
	if kind == "" {
		kind = "mock"
	}

	var subject string
	var lead string
	switch eventType {
	case EventBooked:
		subject = "Your " + kind + " interview is scheduled"
		lead = "Your interview has been scheduled."
	case EventCancelled:
		subject = "Your " + kind + " interview was cancelled"
		lead = "Your interview has been cancelled. The time slot is free again."
	case EventReminderDue:
		switch evt.Reminder {
		case model.ReminderOneHour:
			subject = "Reminder: interview in one hour"
			lead = "Your interview starts in about one hour."
		case model.ReminderFiveMinute:
			subject = "Reminder: interview in five minutes"
			lead = "Your interview starts in about five minutes."
		default:
			return email.Message{}, false
		}
	default:
		return email.Message{}, false
	}

	var b strings.Builder
	name := evt.CandidateName
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s,\n\n%s\n\n", name, lead)
	fmt.Fprintf(&b, "When: %s\n", when)
	fmt.Fprintf(&b, "Duration: %d minutes\n", evt.Duration)
	if eventType != EventCancelled && evt.RoomID != "" {
		fmt.Fprintf(&b, "Room: %s\n", evt.RoomID)
	}
	return email.Message{To: evt.CandidateEmail, Subject: subject, Body: b.String()}, true
}

func localTime(t time.Time, tz string) time.Time {
	if tz == "" {
		return t.UTC()
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return t.UTC()
	}
	return t.In(loc)
}
