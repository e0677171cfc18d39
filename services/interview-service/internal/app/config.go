// Package app loads the interview service configuration and assembles its components.
package app

import (
	"time"

	"github.com/md-rashed-zaman/mockinterview/libs/config"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/notify/email"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/reminders"
)

type Config struct {
	ServiceName string
	HTTPPort    string
	GRPCPort    string
	DatabaseURL string
	RedisURL    string

	RateLimitPerMinute int
	CORSOrigins        []string

	KafkaBrokers      string
	KafkaGroupID      string
	DispatcherEnabled bool

	Reminders reminders.Config
	Email     email.Config
}

// LoadConfig reads the environment. DATABASE_URL is the only required variable.
func LoadConfig() (Config, error) {
	httpPort, err := config.Port("PORT", "8080")
	if err != nil {
		return Config{}, err
	}
	grpcPort, err := config.Port("GRPC_PORT", "9090")
	if err != nil {
		return Config{}, err
	}
	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	return Config{
		ServiceName:        config.String("SERVICE_NAME", "interview-service"),
		HTTPPort:           httpPort,
		GRPCPort:           grpcPort,
		DatabaseURL:        dbURL,
		RedisURL:           config.String("REDIS_URL", ""),
		RateLimitPerMinute: config.Int("RATE_LIMIT_PER_MINUTE", 30),
		CORSOrigins:        config.List("CORS_ALLOWED_ORIGINS"),
		KafkaBrokers:       config.String("KAFKA_BROKERS", ""),
		KafkaGroupID:       config.String("KAFKA_GROUP_ID", "interview-notifications"),
		DispatcherEnabled:  config.String("DISPATCHER_ENABLED", "true") != "false",
		Reminders: reminders.Config{
			Interval:  config.Duration("REMINDER_SCAN_INTERVAL", reminders.DefaultInterval),
			Lookahead: config.Duration("REMINDER_LOOKAHEAD", reminders.DefaultLookahead),
			BatchSize: config.Int("REMINDER_BATCH_SIZE", reminders.DefaultBatchSize),
		},
		Email: email.Config{
			Provider: config.String("EMAIL_PROVIDER", "noop"),
			SMTPHost: config.String("SMTP_HOST", ""),
			SMTPPort: config.String("SMTP_PORT", "1025"),
			From:     config.String("EMAIL_FROM", email.DefaultFrom),
			SES: email.SESConfig{
				Region:          config.String("SES_REGION", ""),
				AccessKeyID:     config.String("SES_ACCESS_KEY_ID", ""),
				SecretAccessKey: config.String("SES_SECRET_ACCESS_KEY", ""),
				FromName:        config.String("EMAIL_FROM_NAME", ""),
			},
			Breaker: email.BreakerConfig{
				FailureThreshold: uint32(config.Int("EMAIL_BREAKER_FAILURES", 5)),
				Timeout:          config.Duration("EMAIL_BREAKER_TIMEOUT", 30*time.Second),
			},
		},
	}, nil
}
