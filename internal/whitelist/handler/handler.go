package handler

import (
	"net/http"

	"propertyhub_backend/internal/whitelist/service"
	"propertyhub_backend/platform/httpkit"
	"propertyhub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for whitelist rules.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type createRuleRequest struct {
	CategoryID    string  `json:"categoryId" validate:"required,uuid"`
	SubcategoryID *string `json:"subcategoryId" validate:"omitempty,uuid"`
	PropertyID    *string `json:"propertyId" validate:"omitempty,uuid"`
}

type setActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type checkRequest struct {
	CategoryID     string   `json:"categoryId" validate:"required,uuid"`
	SubcategoryIDs []string `json:"subcategoryIds" validate:"omitempty,dive,uuid"`
	PropertyID     string   `json:"propertyId" validate:"required,uuid"`
}

// New creates a new whitelist handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the whitelist routes. All routes require the
// landlord role.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.CreateRule)
	rg.GET("", h.ListRules)
	rg.PATCH("/:id", h.SetRuleActive)
	rg.DELETE("/:id", h.DeleteRule)
	rg.POST("/check", h.Check)
}

// CreateRule handles POST /api/v1/whitelist.
func (h *Handler) CreateRule(c *gin.Context) {
	landlordID, ok := requireLandlord(c)
	if !ok {
		return
	}

	var req createRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	categoryID, _ := uuid.Parse(req.CategoryID)
	rule, err := h.svc.CreateRule(c.Request.Context(), service.CreateRuleInput{
		LandlordID:    landlordID,
		CategoryID:    categoryID,
		SubcategoryID: parseOptionalUUID(req.SubcategoryID),
		PropertyID:    parseOptionalUUID(req.PropertyID),
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, gin.H{"rule": rule})
}

// ListRules handles GET /api/v1/whitelist.
func (h *Handler) ListRules(c *gin.Context) {
	landlordID, ok := requireLandlord(c)
	if !ok {
		return
	}

	result, err := h.svc.ListRules(c.Request.Context(), landlordID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"rules": result})
}

// SetRuleActive handles PATCH /api/v1/whitelist/:id.
func (h *Handler) SetRuleActive(c *gin.Context) {
	landlordID, ok := requireLandlord(c)
	if !ok {
		return
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	err = h.svc.SetRuleActive(c.Request.Context(), landlordID, ruleID, *req.IsActive)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "whitelist rule updated"})
}

// DeleteRule handles DELETE /api/v1/whitelist/:id.
func (h *Handler) DeleteRule(c *gin.Context) {
	landlordID, ok := requireLandlord(c)
	if !ok {
		return
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	err = h.svc.DeleteRule(c.Request.Context(), landlordID, ruleID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "whitelist rule deleted"})
}

// Check handles POST /api/v1/whitelist/check. Landlords use it to preview how
// a request shape would be routed.
func (h *Handler) Check(c *gin.Context) {
	landlordID, ok := requireLandlord(c)
	if !ok {
		return
	}

	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	categoryID, _ := uuid.Parse(req.CategoryID)
	propertyID, _ := uuid.Parse(req.PropertyID)
	subcategoryIDs := make([]uuid.UUID, 0, len(req.SubcategoryIDs))
	for _, raw := range req.SubcategoryIDs {
		id, _ := uuid.Parse(raw)
		subcategoryIDs = append(subcategoryIDs, id)
	}

	whitelisted, err := h.svc.IsWhitelisted(c.Request.Context(), landlordID, categoryID, subcategoryIDs, propertyID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"whitelisted": whitelisted})
}

func requireLandlord(c *gin.Context) (uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, false
	}
	landlordID := identity.LandlordID()
	if landlordID == nil {
		httpkit.Error(c, http.StatusForbidden, "landlord profile required", nil)
		return uuid.Nil, false
	}
	return *landlordID, true
}

func parseOptionalUUID(raw *string) *uuid.UUID {
	if raw == nil {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}
	return &id
}
