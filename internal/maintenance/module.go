// Package maintenance provides the maintenance lifecycle domain module.
package maintenance

import (
	"propertyhub_backend/internal/events"
	"propertyhub_backend/internal/maintenance/handler"
	"propertyhub_backend/internal/maintenance/repository"
	"propertyhub_backend/internal/maintenance/service"
	"propertyhub_backend/internal/scheduler"
	"propertyhub_backend/platform/logger"
	"propertyhub_backend/platform/validator"

	apphttp "propertyhub_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the maintenance domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// Deps carries the cross-module collaborators the lifecycle engine needs.
type Deps struct {
	Properties service.PropertyReader
	Catalog    service.SubcategoryReader
	Whitelist  service.WhitelistChecker
	Capacity   service.CapacityGate
	Funds      service.FundsTransferrer
	Chat       service.ChatChannel
	Reminders  scheduler.ReminderScheduler
	EventBus   events.Bus
	Options    service.Options
}

// NewModule creates a new maintenance module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger, deps Deps) *Module {
	repo := repository.New(pool)
	svc := service.New(
		repo,
		deps.Properties,
		deps.Catalog,
		deps.Whitelist,
		deps.Capacity,
		deps.Funds,
		deps.Chat,
		deps.Reminders,
		deps.EventBus,
		log,
		deps.Options,
	)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Service exposes the lifecycle engine for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "maintenance"
}

// RegisterRoutes registers the module's routes under /api/v1/maintenance.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	maintenanceRoutes := ctx.Protected.Group("/maintenance")
	m.handler.RegisterRoutes(maintenanceRoutes)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
