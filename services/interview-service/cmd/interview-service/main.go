package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/md-rashed-zaman/mockinterview/libs/config"
	"github.com/md-rashed-zaman/mockinterview/libs/db"
	"github.com/md-rashed-zaman/mockinterview/libs/grpcx"
	"github.com/md-rashed-zaman/mockinterview/libs/httpx"
	"github.com/md-rashed-zaman/mockinterview/libs/kafkax"
	otelx "github.com/md-rashed-zaman/mockinterview/libs/otel"
	"github.com/md-rashed-zaman/mockinterview/libs/runtime"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/app"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/consumer"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/handlers"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/inbox"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/notify"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/notify/email"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/outbox"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	cfg, err := app.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(cfg.ServiceName)

	ctx, stop := runtime.SignalContext(context.Background())
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(cfg.ServiceName))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	core := app.NewCore(pool, cfg, runtime.SystemClock(), logger)

	outboxPublisher := outbox.NewPublisher(pool, core.Outbox, logger, outbox.PublisherConfig{
		Brokers:   cfg.KafkaBrokers,
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)
	go core.Scanner.Run(ctx)

	readyChecks := []runtime.ReadyCheck{{Name: "db", Check: db.ReadyCheck(pool)}}

	if cfg.KafkaBrokers != "" {
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(cfg.KafkaBrokers)})
		if cfg.DispatcherEnabled {
			sender, err := email.New(cfg.Email, logger)
			if err != nil {
				logger.Error("email sender init failed", "err", err)
				panic(err)
			}
			dispatcher := notify.NewDispatcher(sender, logger)
			eventConsumer := consumer.New(logger, inbox.NewRepository(pool), consumer.Config{
				Brokers: cfg.KafkaBrokers,
				GroupID: cfg.KafkaGroupID,
				Topics:  notify.Topics(),
			}, dispatcher.Handle)
			go eventConsumer.Run(ctx)
		}
	} else {
		logger.Warn("kafka not configured; notifications stay in the outbox")
	}

	var limiter httpx.Limiter = httpx.NewMemoryRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid REDIS_URL", "err", err)
			panic(err)
		}
		rdb := redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()
		limiter = httpx.NewRedisRateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute, "ratelimit:interviews")
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "redis", Check: httpx.RedisReadyCheck(rdb)})
	}

	mux := runtime.NewBaseMuxWithReady(readyChecks...)
	handlers.Routes{
		Slots:        handlers.NewSlotsHandler(core.Resolver, logger),
		Interviews:   handlers.NewInterviewHandler(core.Committer, logger),
		Templates:    handlers.NewTemplateHandler(core.Template, logger),
		BookingLimit: httpx.RateLimit(limiter, httpx.ClientKey, logger, true),
	}.Register(mux)

	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
			MaxAge:         10 * time.Minute,
		}),
		httpx.WithBodyLimit(1<<20),
		httpx.WithTimeout(15*time.Second),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "interview")
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpcx.NewServer(logger)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		logger.Error("grpc listen failed", "err", err)
		panic(err)
	}
	grpcServer.SetServing(cfg.ServiceName, true)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc server error", "err", err)
		}
	}()

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	grpcServer.SetServing(cfg.ServiceName, false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	grpcServer.Stop()
	logger.Info("servers stopped")
}
