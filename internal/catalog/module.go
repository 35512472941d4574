// Package catalog provides the maintenance catalog domain module.
package catalog

import (
	"propertyhub_backend/internal/catalog/handler"
	"propertyhub_backend/internal/catalog/repository"
	"propertyhub_backend/internal/catalog/service"

	apphttp "propertyhub_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the catalog domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new catalog module with all dependencies wired.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Service exposes the catalog service for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "catalog"
}

// RegisterRoutes registers the module's routes under /api/v1/catalog.
// The catalog is readable without authentication.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	catalog := ctx.V1.Group("/catalog")
	m.handler.RegisterRoutes(catalog)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
