package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/notify/email"
	"github.com/segmentio/kafka-go"
)

// Dispatcher turns consumed interview events into emails.
type Dispatcher struct {
	sender email.Sender
	logger *slog.Logger
}

func NewDispatcher(sender email.Sender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, logger: logger}
}

// Handle is a consumer.Handler.
func (d *Dispatcher) Handle(ctx context.Context, msg kafka.Message) error {
	evt, err := decodeEvent(msg.Value)
	if err != nil {
		return err
	}
	out, ok := render(msg.Topic, evt)
	if !ok {
		d.logger.Debug("no email for event", "event_type", msg.Topic, "interview_id", evt.InterviewID)
		return nil
	}
	if out.To == "" {
		d.logger.Warn("interview has no candidate email", "interview_id", evt.InterviewID)
		return nil
	}
	if err := d.sender.Send(ctx, out); err != nil {
		return fmt.Errorf("send %s for %s: %w", msg.Topic, evt.InterviewID, err)
	}
	d.logger.Info("email sent", "event_type", msg.Topic, "interview_id", evt.InterviewID)
	return nil
}
