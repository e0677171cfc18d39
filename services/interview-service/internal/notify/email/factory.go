package email

import (
	"fmt"
	"log/slog"
	"strings"
)

type Config struct {
	Provider string // smtp | ses | noop
	SMTPHost string
	SMTPPort string
	From     string
	SES      SESConfig
	Breaker  BreakerConfig
}

// New builds the configured sender wrapped in a circuit breaker.
func New(cfg Config, logger *slog.Logger) (Sender, error) {
	var base Sender
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "noop":
		base = NoopSender{Logger: logger}
	case "smtp":
		if strings.TrimSpace(cfg.SMTPHost) == "" {
			return nil, fmt.Errorf("SMTP_HOST is required for the smtp provider")
		}
		base = NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.From)
	case "ses":
		if cfg.SES.From == "" {
			cfg.SES.From = cfg.From
		}
		s, err := NewSESSender(cfg.SES)
		if err != nil {
			return nil, err
		}
		base = s
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker.Name = "email-" + strings.ToLower(cfg.Provider)
	}
	return WithBreaker(base, cfg.Breaker, logger), nil
}
