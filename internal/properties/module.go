// Package properties provides the properties domain module.
package properties

import (
	"propertyhub_backend/internal/properties/handler"
	"propertyhub_backend/internal/properties/repository"
	"propertyhub_backend/internal/properties/service"

	apphttp "propertyhub_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the properties domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new properties module with all dependencies wired.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Service exposes the property read service for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "properties"
}

// RegisterRoutes registers the module's routes under /api/v1/properties.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	properties := ctx.Protected.Group("/properties")
	m.handler.RegisterRoutes(properties)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
