package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alumnitrack/alumni-api/internal/handler"
	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/service/notification"
)

type Handler struct {
	service notification.Service
}

func NewHandler(service notification.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateNotification(c *gin.Context) {
	var req model.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	n, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusCreated, n)
}

// ListNotifications returns a recipient's notifications, newest first.
func (h *Handler) ListNotifications(c *gin.Context) {
	recipientID := c.Query("recipient_id")
	kind := model.RecipientKind(c.Query("recipient_kind"))

	notifications, err := h.service.ListForRecipient(c.Request.Context(), recipientID, kind)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, notifications)
}

// MarkRead flips the read flag; an unknown id is a silent no-op.
func (h *Handler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid notification ID"))
		return
	}

	n, err := h.service.MarkRead(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, n)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.POST("", h.CreateNotification)
		notifications.GET("", h.ListNotifications)
		notifications.PUT("/:id/read", h.MarkRead)
	}
}
