package alumnus

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alumnitrack/alumni-api/internal/handler"
	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/service/alumnus"
)

type Handler struct {
	service *alumnus.Service
}

func NewHandler(service *alumnus.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterAlumnusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	a, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusCreated, a)
}

func (h *Handler) Get(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.JSON(c, http.StatusOK, a)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.UpdateAlumnusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	a, err := h.service.UpdateProfile(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, a)
}

func (h *Handler) UpdateContact(c *gin.Context) {
	var req model.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	a, err := h.service.UpdateContact(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, a)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.AlumnusFilters{
		Career: c.Query("career"),
		City:   c.Query("city"),
	}
	if y := c.Query("graduation_year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid graduation year"))
			return
		}
		filters.GraduationYear = year
	}

	alumni, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, alumni)
}

// Login authenticates an alumnus against the graduate portal.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	a, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, a)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	alumni := r.Group("/alumni")
	{
		alumni.POST("", h.Register)
		alumni.POST("/login", h.Login)
		alumni.GET("", h.List)
		alumni.GET("/:id", h.Get)
		alumni.PUT("/:id", h.UpdateProfile)
		alumni.PUT("/:id/contact", h.UpdateContact)
	}
}
