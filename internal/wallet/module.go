// Package wallet provides the wallet domain module: balances and the ledger
// of maintenance fee transfers.
package wallet

import (
	"propertyhub_backend/internal/wallet/handler"
	"propertyhub_backend/internal/wallet/repository"
	"propertyhub_backend/internal/wallet/service"
	"propertyhub_backend/platform/logger"

	apphttp "propertyhub_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the wallet domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new wallet module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, log *logger.Logger, defaultCurrency string) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log, defaultCurrency)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Service exposes the transfer service for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "wallet"
}

// RegisterRoutes registers the module's routes under /api/v1/wallet.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	walletRoutes := ctx.Protected.Group("/wallet")
	m.handler.RegisterRoutes(walletRoutes)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
