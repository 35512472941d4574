package handler

import (
	"net/http"

	"propertyhub_backend/internal/catalog/service"
	"propertyhub_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for the maintenance catalog.
type Handler struct {
	svc *service.Service
}

// New creates a new catalog handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListCategories)
	rg.GET("/categories/:id/subcategories", h.ListSubcategories)
}

// ListCategories handles GET /api/v1/catalog/categories.
func (h *Handler) ListCategories(c *gin.Context) {
	result, err := h.svc.ListCategories(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"categories": result})
}

// ListSubcategories handles GET /api/v1/catalog/categories/:id/subcategories.
func (h *Handler) ListSubcategories(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	result, err := h.svc.ListSubcategories(c.Request.Context(), categoryID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"subcategories": result})
}
