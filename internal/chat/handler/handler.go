package handler

import (
	"net/http"
	"strconv"

	"propertyhub_backend/internal/chat/service"
	"propertyhub_backend/platform/httpkit"
	"propertyhub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for chat.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type sendMessageRequest struct {
	Body string `json:"body" validate:"required,max=4000"`
}

// New creates a new chat handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.ListRooms)
	rg.GET("/rooms/:id/messages", h.ListMessages)
	rg.POST("/rooms/:id/messages", h.SendMessage)
}

// ListRooms handles GET /api/v1/chat/rooms.
func (h *Handler) ListRooms(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.ListRooms(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"rooms": result})
}

// ListMessages handles GET /api/v1/chat/rooms/:id/messages.
func (h *Handler) ListMessages(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	result, err := h.svc.ListMessages(c.Request.Context(), roomID, identity.UserID(), limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"messages": result})
}

// SendMessage handles POST /api/v1/chat/rooms/:id/messages.
func (h *Handler) SendMessage(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	msg, err := h.svc.SendMessage(c.Request.Context(), roomID, identity.UserID(), req.Body)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, gin.H{"message": msg})
}
