package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alumnitrack/alumni-api/internal/handler"
	"github.com/alumnitrack/alumni-api/internal/middleware"
	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/service/auth"
	apperrors "github.com/alumnitrack/alumni-api/pkg/errors"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, resp)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusCreated, user)
}

// Me returns the account behind the current token.
func (h *Handler) Me(c *gin.Context) {
	id, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		handler.Error(c, apperrors.Unauthorized(err))
		return
	}

	user, err := h.service.User(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, user)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/auth/me", h.Me)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST("/users", h.CreateUser)
}
