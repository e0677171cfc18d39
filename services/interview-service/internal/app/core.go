package app

import (
	"log/slog"

	"github.com/md-rashed-zaman/mockinterview/libs/db"
	"github.com/md-rashed-zaman/mockinterview/libs/runtime"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/availability"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/booking"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/notify"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/outbox"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/reminders"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/storage"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/templates"
)

// Core is the Postgres-backed domain stack shared by the service and the CLI.
type Core struct {
	Templates  *storage.TemplateRepository
	Interviews *storage.InterviewRepository
	Outbox     *outbox.Repository

	Notifier  notify.Notifier
	Resolver  *availability.Resolver
	Committer *booking.Committer
	Template  *templates.Service
	Scanner   *reminders.Scanner
}

func NewCore(pool *db.Pool, cfg Config, clock runtime.Clock, logger *slog.Logger) *Core {
	c := &Core{
		Templates:  storage.NewTemplateRepository(pool),
		Interviews: storage.NewInterviewRepository(pool),
		Outbox:     outbox.NewRepository(pool),
	}
	c.Notifier = notify.NewOutboxNotifier(c.Outbox)
	c.Resolver = availability.NewResolver(c.Templates, c.Interviews, clock, logger)
	c.Committer = booking.NewCommitter(c.Interviews, c.Resolver, c.Notifier, clock, logger)
	c.Template = templates.NewService(c.Templates, logger)
	c.Scanner = reminders.NewScanner(c.Interviews, c.Notifier, clock, logger, cfg.Reminders)
	return c
}

var (
	_ availability.TemplateReader  = (*storage.TemplateRepository)(nil)
	_ availability.InterviewReader = (*storage.InterviewRepository)(nil)
	_ booking.Store                = (*storage.InterviewRepository)(nil)
	_ reminders.Store              = (*storage.InterviewRepository)(nil)
	_ templates.Store              = (*storage.TemplateRepository)(nil)
	_ notify.EventAppender         = (*outbox.Repository)(nil)
)
