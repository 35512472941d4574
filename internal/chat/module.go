// Package chat provides the chat domain module: two-party rooms and the
// per-maintenance threads the lifecycle engine opens.
package chat

import (
	"propertyhub_backend/internal/chat/handler"
	"propertyhub_backend/internal/chat/repository"
	"propertyhub_backend/internal/chat/service"
	"propertyhub_backend/platform/logger"
	"propertyhub_backend/platform/validator"

	apphttp "propertyhub_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the chat domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new chat module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Service exposes the chat service for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "chat"
}

// RegisterRoutes registers the module's routes under /api/v1/chat.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	chatRoutes := ctx.Protected.Group("/chat")
	m.handler.RegisterRoutes(chatRoutes)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
