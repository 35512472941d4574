// Package whitelist provides the landlord whitelist domain module: standing
// rules that route matching maintenance requests to the landlord instead of
// the vendor pool.
package whitelist

import (
	"propertyhub_backend/internal/whitelist/handler"
	"propertyhub_backend/internal/whitelist/repository"
	"propertyhub_backend/internal/whitelist/service"
	"propertyhub_backend/platform/httpkit"
	"propertyhub_backend/platform/logger"
	"propertyhub_backend/platform/validator"

	apphttp "propertyhub_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the whitelist domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new whitelist module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Service exposes the evaluation service for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "whitelist"
}

// RegisterRoutes registers the module's routes under /api/v1/whitelist.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	whitelistRoutes := ctx.Protected.Group("/whitelist")
	whitelistRoutes.Use(httpkit.RequireRole(httpkit.RoleLandlord))
	m.handler.RegisterRoutes(whitelistRoutes)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
