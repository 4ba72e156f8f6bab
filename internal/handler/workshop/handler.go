package workshop

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alumnitrack/alumni-api/internal/handler"
	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/service/workshop"
)

type Handler struct {
	service *workshop.Service
}

func NewHandler(service *workshop.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateWorkshop(c *gin.Context) {
	var req model.CreateWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	w, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusCreated, w)
}

func (h *Handler) GetWorkshop(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid workshop ID"))
		return
	}

	w, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, w)
}

func (h *Handler) UpdateWorkshop(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid workshop ID"))
		return
	}

	var req model.UpdateWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	w, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, w)
}

func (h *Handler) DeleteWorkshop(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid workshop ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListWorkshops(c *gin.Context) {
	workshops, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.JSON(c, http.StatusOK, workshops)
}

// RegisterAccess counts a visit to the workshop material.
func (h *Handler) RegisterAccess(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid workshop ID"))
		return
	}

	if err := h.service.RegisterAccess(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, gin.H{"registered": true})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	workshops := r.Group("/workshops")
	{
		workshops.GET("", h.ListWorkshops)
		workshops.GET("/:id", h.GetWorkshop)
		workshops.POST("", h.CreateWorkshop)
		workshops.PUT("/:id", h.UpdateWorkshop)
		workshops.DELETE("/:id", h.DeleteWorkshop)
		workshops.POST("/:id/access", h.RegisterAccess)
	}
}
