package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/studyflash/internal/api"
	"github.com/vytor/studyflash/internal/cache"
	"github.com/vytor/studyflash/internal/config"
	"github.com/vytor/studyflash/internal/db"
	"github.com/vytor/studyflash/internal/jobs"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/notify"
	"github.com/vytor/studyflash/internal/repository/sqlstore"
	"github.com/vytor/studyflash/internal/scheduler"
	"github.com/vytor/studyflash/internal/services"
	"github.com/vytor/studyflash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cfg.LogFormat == config.FormatConsole),
		logger.WithJSON(cfg.LogFormat == config.FormatJSON),
	)
	logger.SetDefault(log)
	defer func() { _ = log.Sync() }()

	log.Info("===========================================")
	log.Info("StudyFlash Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_driver=%s", cfg.DBDriver)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("queue_size=%d", cfg.QueueSize)
	log.Debug("snapshot_time=%s", cfg.SnapshotTime)
	log.Debug("reminder_interval=%s", cfg.ReminderInterval)
	log.Debug("redis_enabled=%t", cfg.RedisURL != "")
	log.Debug("telegram_enabled=%t", cfg.TelegramToken != "")

	// Open database
	database, err := db.Open(db.Dialect(cfg.DBDriver), cfg.DSN())
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Cache
	var store cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis: %v", err)
			os.Exit(1)
		}
		store = rc
	}
	defer store.Close()

	// Notifier
	var notifier notify.Notifier = notify.Log{}
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramToken)
		if err != nil {
			log.Error("failed to initialize telegram bot: %v", err)
			os.Exit(1)
		}
		notifier = tg
	}

	// Repositories
	userRepo := sqlstore.NewUserRepository(database)
	flashcardRepo := sqlstore.NewFlashcardRepository(database)
	reviewRepo := sqlstore.NewReviewRepository(database)
	activityRepo := sqlstore.NewActivityRepository(database)
	statsRepo := sqlstore.NewStatsRepository(database)

	// Background work
	clock := services.Clock(func() time.Time { return time.Now().UTC() })
	progressService := services.NewProgressService(statsRepo, store, cfg.OverviewCacheTTL, clock)
	reminderService := services.NewReminderService(userRepo, flashcardRepo, notifier, clock)

	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	queue := jobs.NewWorkerQueue(pool, progressService, reminderService)

	// Initialize services
	srv := &api.Server{
		UserService: services.NewUserService(userRepo),
		FlashcardService: services.NewFlashcardService(flashcardRepo, reviewRepo, store, queue, services.FlashcardConfig{
			BatchCacheTTL:  cfg.BatchCacheTTL,
			SessionMinutes: float64(cfg.SessionMinutes),
			ScheduleDays:   cfg.ScheduleDays,
		}, clock),
		ProgressService: progressService,
		ActivityService: services.NewActivityService(activityRepo, store, queue, clock),
		ExportService:   services.NewExportService(flashcardRepo, reviewRepo, clock),
		ReadinessChecks: map[string]api.HealthCheck{
			"database": database.Ping,
			"cache":    store.Ping,
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	sched := scheduler.New(userRepo, queue, cfg.SnapshotTime, cfg.ReminderInterval)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler: %v", err)
		os.Exit(1)
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping scheduler")
	sched.Stop()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Wait for queued snapshots and reminders
	log.Debug("stopping worker pool")
	pool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("StudyFlash Server Stopped")
	log.Info("===========================================")
}
