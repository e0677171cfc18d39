package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/outbox"
)

// EventAppender persists an event for later relay; *outbox.Repository implements it.
type EventAppender interface {
	Append(ctx context.Context, evt outbox.Event) error
}

// OutboxNotifier turns notifications into outbox rows. Delivery happens asynchronously
// through the outbox publisher and the Dispatcher.
type OutboxNotifier struct {
	events EventAppender
}

func NewOutboxNotifier(events EventAppender) *OutboxNotifier {
	return &OutboxNotifier{events: events}
}

func (n *OutboxNotifier) BookingConfirmed(ctx context.Context, iv model.Interview) error {
	return n.append(ctx, EventBooked, newEvent(iv))
}

func (n *OutboxNotifier) BookingCancelled(ctx context.Context, iv model.Interview) error {
	return n.append(ctx, EventCancelled, newEvent(iv))
}

func (n *OutboxNotifier) Reminder(ctx context.Context, iv model.Interview, kind model.ReminderKind) error {
	evt := newEvent(iv)
	evt.Reminder = kind
	return n.append(ctx, EventReminderDue, evt)
}

func (n *OutboxNotifier) append(ctx context.Context, eventType string, evt InterviewEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode %s: %w", eventType, err)
	}
	if err := n.events.Append(ctx, outbox.Event{
		AggregateType: aggregateInterview,
		AggregateID:   evt.InterviewID,
		EventType:     eventType,
		Payload:       payload,
	}); err != nil {
		return fmt.Errorf("append %s: %w", eventType, err)
	}
	return nil
}
