package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/alumnitrack/alumni-api/internal/config"
	"github.com/alumnitrack/alumni-api/internal/email"
	"github.com/alumnitrack/alumni-api/internal/repository/postgres"
	"github.com/alumnitrack/alumni-api/internal/scheduler"
	notificationService "github.com/alumnitrack/alumni-api/internal/service/notification"
	"github.com/alumnitrack/alumni-api/internal/worker"
	"github.com/alumnitrack/alumni-api/pkg/logger"
	redisBroker "github.com/alumnitrack/alumni-api/pkg/messaging/redis"
	"github.com/alumnitrack/alumni-api/pkg/metrics"
)

// The worker binary runs the reminder scheduler and the audit log cleanup
// without the HTTP API, for deployments that split the two.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Scheduler.Timezone).Msg("failed to load timezone")
	}

	base := postgres.NewBaseRepository(db)
	meetingRepo := postgres.NewMeetingRepository(base)
	notificationRepo := postgres.NewNotificationRepository(base)
	auditRepo := postgres.NewAuditRepository(base)

	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &appLogger.ZL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	mailSender := email.NewSMTPSender(cfg.Email.ToEmailConfig())

	m := metrics.New("alumni_worker")

	notificationSvc := notificationService.NewService(
		notificationRepo, mailSender, broker, appLogger,
		notificationService.WithMetrics(m),
		notificationService.WithEmailTimeout(cfg.Scheduler.EmailTimeout),
	)

	sched := scheduler.New(
		meetingRepo, notificationSvc, appLogger, loc,
		scheduler.WithMetrics(m),
		scheduler.WithIntervals(cfg.Scheduler.ReminderInterval, cfg.Scheduler.UnconfirmedInterval),
	)

	cleanup := worker.NewAuditCleanupWorker(auditRepo, appLogger, cfg.Audit.RetentionDays, cfg.Audit.CleanupInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sched.Start(ctx)
	go cleanup.Start(ctx)

	// Metrics endpoint only; the worker serves no API routes.
	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: promhttp.Handler(),
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start metrics server")
		}
	}()

	appLogger.Info("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down worker...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("metrics server forced to shutdown")
	}

	appLogger.Info("worker exited properly")
}
