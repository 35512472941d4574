package handler

import (
	"net/http"

	"propertyhub_backend/internal/vendors/repository"
	"propertyhub_backend/internal/vendors/service"
	"propertyhub_backend/platform/httpkit"
	"propertyhub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for vendor offerings.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type registerOfferingRequest struct {
	CategoryID    string  `json:"categoryId" validate:"required,uuid"`
	SubcategoryID *string `json:"subcategoryId" validate:"omitempty,uuid"`
}

type setAvailabilityRequest struct {
	Availability string `json:"availability" validate:"required,oneof=YES NO"`
}

// New creates a new vendors handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the vendor routes. All routes require the vendor role.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/services", h.RegisterOffering)
	rg.GET("/services", h.ListOfferings)
	rg.PATCH("/services/:id/availability", h.SetAvailability)
	rg.GET("/stats", h.JobStats)
}

// RegisterOffering handles POST /api/v1/vendors/services.
func (h *Handler) RegisterOffering(c *gin.Context) {
	vendorID, ok := requireVendor(c)
	if !ok {
		return
	}

	var req registerOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	categoryID, _ := uuid.Parse(req.CategoryID)
	var subcategoryID *uuid.UUID
	if req.SubcategoryID != nil {
		id, _ := uuid.Parse(*req.SubcategoryID)
		subcategoryID = &id
	}

	offering, err := h.svc.RegisterOffering(c.Request.Context(), service.RegisterOfferingInput{
		VendorID:      vendorID,
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, gin.H{"service": offering})
}

// ListOfferings handles GET /api/v1/vendors/services.
func (h *Handler) ListOfferings(c *gin.Context) {
	vendorID, ok := requireVendor(c)
	if !ok {
		return
	}

	result, err := h.svc.ListOfferings(c.Request.Context(), vendorID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"services": result})
}

// SetAvailability handles PATCH /api/v1/vendors/services/:id/availability.
func (h *Handler) SetAvailability(c *gin.Context) {
	vendorID, ok := requireVendor(c)
	if !ok {
		return
	}

	offeringID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req setAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	err = h.svc.SetAvailability(c.Request.Context(), vendorID, offeringID, repository.Availability(req.Availability))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "availability updated"})
}

// JobStats handles GET /api/v1/vendors/stats.
func (h *Handler) JobStats(c *gin.Context) {
	vendorID, ok := requireVendor(c)
	if !ok {
		return
	}

	stats, err := h.svc.JobStats(c.Request.Context(), vendorID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"stats": stats})
}

func requireVendor(c *gin.Context) (uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, false
	}
	vendorID := identity.VendorID()
	if vendorID == nil {
		httpkit.Error(c, http.StatusForbidden, "vendor profile required", nil)
		return uuid.Nil, false
	}
	return *vendorID, true
}
