package meeting

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alumnitrack/alumni-api/internal/handler"
	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/service/meeting"
)

type Handler struct {
	service *meeting.Service
}

func NewHandler(service *meeting.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RequestMeeting(c *gin.Context) {
	var req model.RequestMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	m, err := h.service.Request(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusCreated, m)
}

func (h *Handler) RescheduleMeeting(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid meeting ID"))
		return
	}

	var req model.RescheduleMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	m, err := h.service.Reschedule(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, m)
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid meeting ID"))
		return
	}

	var req model.ChangeMeetingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	m, err := h.service.ChangeStatus(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, m)
}

func (h *Handler) StatusHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid meeting ID"))
		return
	}

	changes, err := h.service.StatusHistory(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, changes)
}

// AlumnusHistory lists every meeting of one alumnus, all states included.
func (h *Handler) AlumnusHistory(c *gin.Context) {
	alumnusID := c.Param("id")
	if alumnusID == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid alumnus ID"))
		return
	}

	meetings, err := h.service.History(c.Request.Context(), alumnusID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, meetings)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	meetings := r.Group("/meetings")
	{
		meetings.POST("", h.RequestMeeting)
		meetings.PUT("/:id/reschedule", h.RescheduleMeeting)
		meetings.PUT("/:id/status", h.ChangeStatus)
		meetings.GET("/:id/history", h.StatusHistory)
	}
	r.GET("/alumni/:id/meetings", h.AlumnusHistory)
}
