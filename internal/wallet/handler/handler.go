package handler

import (
	"strconv"

	"propertyhub_backend/internal/wallet/service"
	"propertyhub_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for wallets.
type Handler struct {
	svc *service.Service
}

// New creates a new wallet handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the wallet routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Balance)
	rg.GET("/transactions", h.Transactions)
}

// Balance handles GET /api/v1/wallet.
func (h *Handler) Balance(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	wallet, err := h.svc.Balance(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"wallet": wallet})
}

// Transactions handles GET /api/v1/wallet/transactions.
func (h *Handler) Transactions(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	result, err := h.svc.Transactions(c.Request.Context(), identity.UserID(), limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"transactions": result})
}
