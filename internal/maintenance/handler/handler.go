package handler

import (
	"net/http"

	"propertyhub_backend/internal/maintenance/domain"
	"propertyhub_backend/internal/maintenance/repository"
	"propertyhub_backend/internal/maintenance/service"
	"propertyhub_backend/internal/maintenance/transport"
	"propertyhub_backend/platform/httpkit"
	"propertyhub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for the maintenance lifecycle.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid maintenance ID"
)

// New creates a new maintenance handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the maintenance routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/open", h.ListOpen)
	rg.GET("/property/:propertyID", h.ListByProperty)
	rg.GET("/:id", h.GetByID)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/accept", h.AcceptJob)
	rg.PATCH("/:id/schedule", h.Reschedule)
	rg.GET("/:id/reschedules", h.RescheduleHistory)
	rg.POST("/:id/cancel", h.Cancel)
	rg.POST("/:id/pay", h.Pay)
	rg.POST("/:id/complete", h.Complete)
	rg.PATCH("/:id/decision", h.Decide)
}

// Create handles POST /api/v1/maintenance.
func (h *Handler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req transport.CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	propertyID, _ := uuid.Parse(req.PropertyID)
	categoryID, _ := uuid.Parse(req.CategoryID)
	subcategoryIDs := make([]uuid.UUID, 0, len(req.SubcategoryIDs))
	for _, raw := range req.SubcategoryIDs {
		id, _ := uuid.Parse(raw)
		subcategoryIDs = append(subcategoryIDs, id)
	}

	m, err := h.svc.Create(c.Request.Context(), actor, service.CreateInput{
		PropertyID:     propertyID,
		CategoryID:     categoryID,
		SubcategoryIDs: subcategoryIDs,
		Title:          req.Title,
		Description:    req.Description,
		ScheduleDate:   req.ScheduleDate,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	message := "maintenance request created"
	if m.HandleByLandlord && m.TenantID != nil {
		message = "maintenance request created and routed to your landlord"
	}
	httpkit.JSON(c, http.StatusCreated, gin.H{"message": message, "maintenance": toResponse(m)})
}

// List handles GET /api/v1/maintenance.
func (h *Handler) List(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), actor)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"maintenances": toResponses(result)})
}

// ListOpen handles GET /api/v1/maintenance/open. Vendors browse unassigned
// jobs in their offered categories.
func (h *Handler) ListOpen(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	if actor.VendorID == nil {
		httpkit.Error(c, http.StatusForbidden, "vendor profile required", nil)
		return
	}

	result, err := h.svc.ListOpen(c.Request.Context(), *actor.VendorID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"maintenances": toResponses(result)})
}

// ListByProperty handles GET /api/v1/maintenance/property/:propertyID.
// Landlords browse one property's request history, optionally filtered with
// ?status=.
func (h *Handler) ListByProperty(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	if actor.LandlordID == nil {
		httpkit.Error(c, http.StatusForbidden, "landlord profile required", nil)
		return
	}
	propertyID, err := uuid.Parse(c.Param("propertyID"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid property ID", nil)
		return
	}

	var status *domain.Status
	if raw := c.Query("status"); raw != "" {
		s := domain.Status(raw)
		status = &s
	}

	result, err := h.svc.ListByProperty(c.Request.Context(), *actor.LandlordID, propertyID, status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"maintenances": toResponses(result)})
}

// GetByID handles GET /api/v1/maintenance/:id.
func (h *Handler) GetByID(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	m, err := h.svc.GetByID(c.Request.Context(), actor, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"maintenance": toResponse(m)})
}

// Delete handles DELETE /api/v1/maintenance/:id.
func (h *Handler) Delete(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	err := h.svc.Delete(c.Request.Context(), actor, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "maintenance request deleted"})
}

// AcceptJob handles POST /api/v1/maintenance/:id/accept.
func (h *Handler) AcceptJob(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	if actor.VendorID == nil {
		httpkit.Error(c, http.StatusForbidden, "vendor profile required", nil)
		return
	}

	m, err := h.svc.AcceptJob(c.Request.Context(), *actor.VendorID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"maintenance": toResponse(m)})
}

// Reschedule handles PATCH /api/v1/maintenance/:id/schedule.
func (h *Handler) Reschedule(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	var req transport.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	m, err := h.svc.Reschedule(c.Request.Context(), actor, id, req.ScheduleDate)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"maintenance": toResponse(m)})
}

// RescheduleHistory handles GET /api/v1/maintenance/:id/reschedules.
func (h *Handler) RescheduleHistory(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	result, err := h.svc.RescheduleHistory(c.Request.Context(), actor, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"reschedules": result})
}

// Cancel handles POST /api/v1/maintenance/:id/cancel. The same endpoint
// serves the requesting side and the consenting vendor.
func (h *Handler) Cancel(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	var req transport.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	m, err := h.svc.Cancel(c.Request.Context(), actor, id, req.Reason)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"maintenance": toResponse(m)})
}

// Pay handles POST /api/v1/maintenance/:id/pay.
func (h *Handler) Pay(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	var req transport.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	m, err := h.svc.Pay(c.Request.Context(), actor, id, req.AmountMinor, req.Currency)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"maintenance": toResponse(m)})
}

// Complete handles POST /api/v1/maintenance/:id/complete.
func (h *Handler) Complete(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	if actor.VendorID == nil {
		httpkit.Error(c, http.StatusForbidden, "vendor profile required", nil)
		return
	}

	m, err := h.svc.Complete(c.Request.Context(), *actor.VendorID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"maintenance": toResponse(m)})
}

// Decide handles PATCH /api/v1/maintenance/:id/decision.
func (h *Handler) Decide(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	if actor.LandlordID == nil {
		httpkit.Error(c, http.StatusForbidden, "landlord profile required", nil)
		return
	}

	var req transport.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	m, err := h.svc.Decide(c.Request.Context(), *actor.LandlordID, id, domain.DecisionStatus(req.Decision))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"maintenance": toResponse(m)})
}

func getActor(c *gin.Context) (service.Actor, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return service.Actor{}, false
	}
	return service.Actor{
		UserID:     identity.UserID(),
		TenantID:   identity.TenantID(),
		LandlordID: identity.LandlordID(),
		VendorID:   identity.VendorID(),
	}, true
}

func actorAndID(c *gin.Context) (service.Actor, uuid.UUID, bool) {
	actor, ok := getActor(c)
	if !ok {
		return service.Actor{}, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return service.Actor{}, uuid.Nil, false
	}
	return actor, id, true
}

func toResponse(m *repository.Maintenance) transport.MaintenanceResponse {
	return transport.MaintenanceResponse{
		ID:                        m.ID,
		PropertyID:                m.PropertyID,
		CategoryID:                m.CategoryID,
		SubcategoryIDs:            m.SubcategoryIDs,
		TenantID:                  m.TenantID,
		LandlordID:                m.LandlordID,
		VendorID:                  m.VendorID,
		Title:                     m.Title,
		Description:               m.Description,
		Status:                    m.Status,
		LandlordDecision:          m.LandlordDecision,
		PaymentStatus:             m.PaymentStatus,
		HandleByLandlord:          m.HandleByLandlord,
		ScheduleDate:              m.ScheduleDate,
		RescheduleMax:             m.RescheduleMax,
		AmountMinor:               m.AmountMinor,
		Currency:                  m.Currency,
		FlagCancellation:          m.FlagCancellation,
		CancellationReason:        m.CancellationReason,
		VendorConsentCancellation: m.VendorConsentCancellation,
		ChatRoomID:                m.ChatRoomID,
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
	}
}

func toResponses(ms []repository.Maintenance) []transport.MaintenanceResponse {
	result := make([]transport.MaintenanceResponse, 0, len(ms))
	for i := range ms {
		result = append(result, toResponse(&ms[i]))
	}
	return result
}
