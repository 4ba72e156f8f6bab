package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alumnitrack/alumni-api/internal/config"
	"github.com/alumnitrack/alumni-api/internal/email"
	"github.com/alumnitrack/alumni-api/internal/handler"
	alumnusHandler "github.com/alumnitrack/alumni-api/internal/handler/alumnus"
	auditHandler "github.com/alumnitrack/alumni-api/internal/handler/audit"
	authHandler "github.com/alumnitrack/alumni-api/internal/handler/auth"
	meetingHandler "github.com/alumnitrack/alumni-api/internal/handler/meeting"
	notificationHandler "github.com/alumnitrack/alumni-api/internal/handler/notification"
	reportHandler "github.com/alumnitrack/alumni-api/internal/handler/report"
	slotHandler "github.com/alumnitrack/alumni-api/internal/handler/slot"
	workshopHandler "github.com/alumnitrack/alumni-api/internal/handler/workshop"
	"github.com/alumnitrack/alumni-api/internal/middleware"
	"github.com/alumnitrack/alumni-api/internal/repository/postgres"
	"github.com/alumnitrack/alumni-api/internal/router"
	"github.com/alumnitrack/alumni-api/internal/scheduler"
	alumnusService "github.com/alumnitrack/alumni-api/internal/service/alumnus"
	auditService "github.com/alumnitrack/alumni-api/internal/service/audit"
	authService "github.com/alumnitrack/alumni-api/internal/service/auth"
	meetingService "github.com/alumnitrack/alumni-api/internal/service/meeting"
	notificationService "github.com/alumnitrack/alumni-api/internal/service/notification"
	reportService "github.com/alumnitrack/alumni-api/internal/service/report"
	slotService "github.com/alumnitrack/alumni-api/internal/service/slot"
	workshopService "github.com/alumnitrack/alumni-api/internal/service/workshop"
	"github.com/alumnitrack/alumni-api/pkg/logger"
	redisBroker "github.com/alumnitrack/alumni-api/pkg/messaging/redis"
	"github.com/alumnitrack/alumni-api/pkg/metrics"
)

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

	// Repositories
	base := postgres.NewBaseRepository(db)
	meetingRepo := postgres.NewMeetingRepository(base)
	notificationRepo := postgres.NewNotificationRepository(base)
	alumnusRepo := postgres.NewAlumnusRepository(base)
	slotRepo := postgres.NewSlotRepository(base)
	workshopRepo := postgres.NewWorkshopRepository(base)
	userRepo := postgres.NewUserRepository(base)
	auditRepo := postgres.NewAuditRepository(base)
	reportRepo := postgres.NewReportRepository(base)

	// Message broker for in-app notification fan-out
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

	m := metrics.New("alumni_api")

	// Services
	notificationSvc := notificationService.NewService(
		notificationRepo, mailSender, broker, appLogger,
		notificationService.WithMetrics(m),
		notificationService.WithEmailTimeout(cfg.Scheduler.EmailTimeout),
	)
	meetingSvc := meetingService.NewService(meetingRepo, alumnusRepo, notificationSvc, appLogger)
	alumnusSvc := alumnusService.NewService(alumnusRepo)
	slotSvc := slotService.NewService(slotRepo)
	workshopSvc := workshopService.NewService(workshopRepo)
	authSvc := authService.NewService(userRepo, cfg.JWT)
	auditSvc := auditService.NewService(auditRepo)
	reportSvc := reportService.NewService(reportRepo)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	auditTrail := middleware.NewAuditTrail(auditSvc, appLogger)

	handler.RegisterValidators()

	r := router.NewRouter(
		cfg,
		appLogger,
		authMiddleware,
		auditTrail,
		authHandler.NewHandler(authSvc),
		alumnusHandler.NewHandler(alumnusSvc),
		meetingHandler.NewHandler(meetingSvc),
		notificationHandler.NewHandler(notificationSvc),
		slotHandler.NewHandler(slotSvc),
		workshopHandler.NewHandler(workshopSvc),
		auditHandler.NewHandler(auditSvc),
		reportHandler.NewHandler(reportSvc),
		db,
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Reminder and unconfirmed-alert jobs run in-process alongside the API.
	schedCtx, schedCancel := context.WithCancel(context.Background())
	defer schedCancel()
	sched := scheduler.New(
		meetingRepo, notificationSvc, appLogger, loc,
		scheduler.WithMetrics(m),
		scheduler.WithIntervals(cfg.Scheduler.ReminderInterval, cfg.Scheduler.UnconfirmedInterval),
	)
	go sched.Start(schedCtx)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	appLogger.Info(fmt.Sprintf("server listening on :%d", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server...")

	schedCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info("server exited properly")
}
