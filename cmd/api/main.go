package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"propertyhub_backend/internal/catalog"
	"propertyhub_backend/internal/chat"
	"propertyhub_backend/internal/email"
	"propertyhub_backend/internal/events"
	apphttp "propertyhub_backend/internal/http"
	"propertyhub_backend/internal/http/router"
	"propertyhub_backend/internal/maintenance"
	maintenanceservice "propertyhub_backend/internal/maintenance/service"
	"propertyhub_backend/internal/notification"
	"propertyhub_backend/internal/properties"
	"propertyhub_backend/internal/scheduler"
	"propertyhub_backend/internal/vendors"
	"propertyhub_backend/internal/wallet"
	"propertyhub_backend/internal/whitelist"
	"propertyhub_backend/platform/config"
	"propertyhub_backend/platform/db"
	"propertyhub_backend/platform/logger"
	"propertyhub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	_ = notification.NewModule(pool, eventBus, sender, log)

	propertiesModule := properties.NewModule(pool)
	catalogModule := catalog.NewModule(pool)
	whitelistModule := whitelist.NewModule(pool, val, log)
	vendorsModule := vendors.NewModule(pool, val, log, cfg.GetVendorJobCeiling())
	walletModule := wallet.NewModule(pool, log, "EUR")
	chatModule := chat.NewModule(pool, val, log)

	maintenanceModule := maintenance.NewModule(pool, val, log, maintenance.Deps{
		Properties: propertiesModule.Service(),
		Catalog:    catalogModule.Service(),
		Whitelist:  whitelistModule.Service(),
		Capacity:   vendorsModule.Service(),
		Funds:      walletModule.Service(),
		Chat:       chatModule.Service(),
		Reminders:  reminderScheduler,
		EventBus:   eventBus,
		Options: maintenanceservice.Options{
			RescheduleMax: cfg.GetRescheduleMaxDefault(),
			ReminderLead:  cfg.GetReminderLeadTime(),
			Currency:      "EUR",
		},
	})

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			propertiesModule,
			catalogModule,
			whitelistModule,
			vendorsModule,
			walletModule,
			chatModule,
			maintenanceModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping server")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.ReminderScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; maintenance reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
