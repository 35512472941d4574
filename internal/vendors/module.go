// Package vendors provides the vendor offerings domain module: registered
// capabilities, per-offering job counts and availability.
package vendors

import (
	"propertyhub_backend/internal/vendors/handler"
	"propertyhub_backend/internal/vendors/repository"
	"propertyhub_backend/internal/vendors/service"
	"propertyhub_backend/platform/httpkit"
	"propertyhub_backend/platform/logger"
	"propertyhub_backend/platform/validator"

	apphttp "propertyhub_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the vendors domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new vendors module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger, jobCeiling int) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log, jobCeiling)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Service exposes the capacity service for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "vendors"
}

// RegisterRoutes registers the module's routes under /api/v1/vendors.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	vendorRoutes := ctx.Protected.Group("/vendors")
	vendorRoutes.Use(httpkit.RequireRole(httpkit.RoleVendor))
	m.handler.RegisterRoutes(vendorRoutes)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
