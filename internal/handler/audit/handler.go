package audit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alumnitrack/alumni-api/internal/handler"
	"github.com/alumnitrack/alumni-api/internal/service/audit"
)

type Handler struct {
	service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListLogs(c *gin.Context) {
	filters := map[string]interface{}{}
	if v := c.Query("user_id"); v != "" {
		filters["user_id"] = v
	}
	if v := c.Query("action"); v != "" {
		filters["action"] = v
	}
	if v := c.Query("entity_type"); v != "" {
		filters["entity_type"] = v
	}

	logs, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, logs)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit-logs", h.ListLogs)
}
