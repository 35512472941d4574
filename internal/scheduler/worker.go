package scheduler

import (
	"context"
	"fmt"

	"propertyhub_backend/internal/events"
	"propertyhub_backend/internal/maintenance/domain"
	"propertyhub_backend/internal/maintenance/repository"
	"propertyhub_backend/platform/apperr"
	"propertyhub_backend/platform/config"
	"propertyhub_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   *repository.Repository
	bus    events.Bus
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repository.New(pool),
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskMaintenanceReminder, w.handleMaintenanceReminder)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleMaintenanceReminder fires the reminder event unless the request was
// cancelled, completed or rescheduled since the task was enqueued. A
// reschedule enqueues a fresh task, so a stale one is dropped by comparing
// schedule dates.
func (w *Worker) handleMaintenanceReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseMaintenanceReminderPayload(task)
	if err != nil {
		return err
	}

	maintenanceID, err := uuid.Parse(payload.MaintenanceID)
	if err != nil {
		return err
	}

	m, err := w.repo.GetByID(ctx, maintenanceID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}

	if domain.IsTerminal(m.Status) || m.Status == domain.StatusCancellationRequest {
		return nil
	}
	if FormatScheduleDate(m.ScheduleDate) != payload.ScheduleDate {
		w.log.Debug("dropping stale maintenance reminder", "maintenance_id", maintenanceID)
		return nil
	}

	w.log.Info("maintenance reminder due",
		"maintenance_id", maintenanceID,
		"schedule_date", m.ScheduleDate)

	return w.bus.PublishSync(ctx, events.MaintenanceReminderDue{
		BaseEvent:     events.NewBaseEvent(),
		MaintenanceID: m.ID,
		PropertyID:    m.PropertyID,
		ScheduleDate:  m.ScheduleDate,
	})
}
