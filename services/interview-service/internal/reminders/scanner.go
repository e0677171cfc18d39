// Package reminders periodically finds upcoming interviews and sends the one-hour and
// five-minute reminders, each at most once.
package reminders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/md-rashed-zaman/mockinterview/libs/runtime"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/notify"
)

// Store reads candidates for a sweep and claims reminder flags. ClaimReminder must be an
// atomic test-and-set: it reports true only for the caller that flipped the flag.
type Store interface {
	ListStartingBetween(ctx context.Context, from, to time.Time, limit int) ([]model.Interview, error)
	ClaimReminder(ctx context.Context, id string, kind model.ReminderKind) (bool, error)
}

type Config struct {
	Interval  time.Duration
	Lookahead time.Duration
	BatchSize int
}

const (
	DefaultInterval  = time.Minute
	DefaultLookahead = time.Hour
	DefaultBatchSize = 500
)

// Reminder bands, as (lower, upper] bounds on the time remaining until the start.
var bands = []struct {
	kind         model.ReminderKind
	lower, upper time.Duration
}{
	{model.ReminderOneHour, 55 * time.Minute, 60 * time.Minute},
	{model.ReminderFiveMinute, 0, 5 * time.Minute},
}

type Scanner struct {
	store    Store
	notifier notify.Notifier
	clock    runtime.Clock
	logger   *slog.Logger
	cfg      Config
}

func NewScanner(store Store, notifier notify.Notifier, clock runtime.Clock, logger *slog.Logger, cfg Config) *Scanner {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Lookahead <= 0 {
		cfg.Lookahead = DefaultLookahead
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if clock == nil {
		clock = runtime.SystemClock()
	}
	if logger == nil {
		logger = runtime.DiscardLogger()
	}
	if notifier == nil {
		notifier = notify.LogNotifier{Logger: logger}
	}
	return &Scanner{store: store, notifier: notifier, clock: clock, logger: logger, cfg: cfg}
}

type ScanResult struct {
	Examined    int
	OneHour     int
	FiveMinute  int
	Failed      int
	AlreadySent int
}

// Run sweeps immediately and then on every interval until ctx is done.
func (s *Scanner) Run(ctx context.Context) {
	s.logger.Info("reminder scanner started", "interval", s.cfg.Interval.String(), "lookahead", s.cfg.Lookahead.String())
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := s.ScanOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("reminder sweep failed", "err", err)
		}
		select {
		case <-ctx.Done():
			s.logger.Info("reminder scanner stopped")
			return
		case <-ticker.C:
		}
	}
}

// ScanOnce runs a single sweep. A failure for one interview is logged and does not stop
// the sweep; only failing to load candidates is returned.
func (s *Scanner) ScanOnce(ctx context.Context) (ScanResult, error) {
	now := s.clock.Now()
	candidates, err := s.store.ListStartingBetween(ctx, now, now.Add(s.cfg.Lookahead), s.cfg.BatchSize)
	if err != nil {
		return ScanResult{}, fmt.Errorf("list upcoming interviews: %w", err)
	}

	var res ScanResult
	for _, iv := range candidates {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		res.Examined++
		until := iv.ScheduledTime.Sub(now)
		for _, b := range bands {
			if until <= b.lower || until > b.upper {
				continue
			}
			if iv.ReminderSent(b.kind) {
				res.AlreadySent++
				continue
			}
			s.remind(ctx, iv, b.kind, &res)
		}
	}
	if res.OneHour+res.FiveMinute+res.Failed > 0 {
		s.logger.Info("reminder sweep finished",
			"examined", res.Examined, "one_hour", res.OneHour, "five_minute", res.FiveMinute, "failed", res.Failed)
	}
	return res, nil
}

// remind claims the flag before sending, so a crash between the two loses the reminder
// rather than sending it twice.
func (s *Scanner) remind(ctx context.Context, iv model.Interview, kind model.ReminderKind, res *ScanResult) {
	claimed, err := s.store.ClaimReminder(ctx, iv.ID, kind)
	if err != nil {
		res.Failed++
		s.logger.Error("claim reminder failed", "interview_id", iv.ID, "kind", string(kind), "err", err)
		return
	}
	if !claimed {
		res.AlreadySent++
		return
	}
	if err := s.notifier.Reminder(ctx, iv, kind); err != nil {
		res.Failed++
		s.logger.Error("send reminder failed", "interview_id", iv.ID, "kind", string(kind), "err", err)
		return
	}
	switch kind {
	case model.ReminderOneHour:
		res.OneHour++
	case model.ReminderFiveMinute:
		res.FiveMinute++
	}
}
