// Command worker runs the asynq consumer that delivers scheduled maintenance
// reminders. It shares the notification module with the API so reminder
// events turn into the same emails.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"propertyhub_backend/internal/email"
	"propertyhub_backend/internal/events"
	"propertyhub_backend/internal/notification"
	"propertyhub_backend/internal/scheduler"
	"propertyhub_backend/platform/config"
	"propertyhub_backend/platform/db"
	"propertyhub_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}
	_ = notification.NewModule(pool, eventBus, sender, log)

	worker, err := scheduler.NewWorker(cfg, pool, eventBus, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	log.Info("worker listening", "queue", cfg.GetAsynqQueueName())
	worker.Run(ctx)
	log.Info("worker stopped")
}
