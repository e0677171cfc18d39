package app

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/interviews")
	t.Setenv("REMINDER_SCAN_INTERVAL", "30s")
	t.Setenv("EMAIL_PROVIDER", "smtp")
	t.Setenv("SMTP_HOST", "mailpit")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPPort != "8080" || cfg.GRPCPort != "9090" || cfg.ServiceName != "interview-service" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Reminders.Interval != 30*time.Second || cfg.Reminders.Lookahead != time.Hour {
		t.Fatalf("unexpected reminder config %+v", cfg.Reminders)
	}
	if cfg.Email.Provider != "smtp" || cfg.Email.SMTPHost != "mailpit" || cfg.Email.Breaker.FailureThreshold != 5 {
		t.Fatalf("unexpected email config %+v", cfg.Email)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestLoadConfig_RequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadConfig_BadPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/interviews")
	t.Setenv("PORT", "http")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected port error")
	}
}
