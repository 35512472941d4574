package handler

import (
	"net/http"

	"propertyhub_backend/internal/properties/service"
	"propertyhub_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for properties.
type Handler struct {
	svc *service.Service
}

// New creates a new properties handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the property routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListMine)
	rg.GET("/:id", h.GetByID)
}

// ListMine handles GET /api/v1/properties for landlords.
func (h *Handler) ListMine(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	landlordID := identity.LandlordID()
	if landlordID == nil {
		httpkit.Error(c, http.StatusForbidden, "landlord profile required", nil)
		return
	}

	result, err := h.svc.ListByLandlord(c.Request.Context(), *landlordID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"properties": result})
}

// GetByID handles GET /api/v1/properties/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	if httpkit.MustGetIdentity(c) == nil {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
