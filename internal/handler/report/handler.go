package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alumnitrack/alumni-api/internal/handler"
	"github.com/alumnitrack/alumni-api/internal/service/report"
)

type Handler struct {
	service *report.Service
}

func NewHandler(service *report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.JSON(c, http.StatusOK, summary)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/reports/summary", h.Summary)
}
