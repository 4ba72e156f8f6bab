package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/alumnitrack/alumni-api/internal/config"
	"github.com/alumnitrack/alumni-api/internal/middleware"
	"github.com/alumnitrack/alumni-api/internal/model"
	authService "github.com/alumnitrack/alumni-api/internal/service/auth"
	apperrors "github.com/alumnitrack/alumni-api/pkg/errors"
)

type memUserRepo struct {
	users map[string]*model.User
}

func (r *memUserRepo) Create(_ context.Context, u *model.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	return u, nil
}

func (r *memUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func newTestRouter(repo *memUserRepo) (*gin.Engine, *Handler) {
	gin.SetMode(gin.TestMode)
	svc := authService.NewService(repo, config.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
	h := NewHandler(svc)
	r := gin.New()
	return r, h
}

func TestCreateUser_Created(t *testing.T) {
	repo := &memUserRepo{users: map[string]*model.User{}}
	r, h := newTestRouter(repo)
	r.POST("/users", h.CreateUser)

	body, _ := json.Marshal(model.CreateUserRequest{
		Username: "coordinadora",
		Email:    "staff@example.edu",
		Password: "clave-segura",
		Role:     "staff",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, repo.users, "staff@example.edu")
	stored := repo.users["staff@example.edu"]
	assert.Equal(t, model.UserActive, stored.Status)
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestCreateUser_DuplicateEmailRejected(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &memUserRepo{users: map[string]*model.User{
		"staff@example.edu": {ID: uuid.New(), Email: "staff@example.edu", PasswordHash: string(hash), Role: "staff", Status: model.UserActive},
	}}
	r, h := newTestRouter(repo)
	r.POST("/users", h.CreateUser)

	body, _ := json.Marshal(model.CreateUserRequest{
		Username: "otra",
		Email:    "staff@example.edu",
		Password: "clave-segura",
		Role:     "staff",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "el usuario ya está registrado")
}

func TestCreateUser_InvalidRoleRejected(t *testing.T) {
	repo := &memUserRepo{users: map[string]*model.User{}}
	r, h := newTestRouter(repo)
	r.POST("/users", h.CreateUser)

	body, _ := json.Marshal(map[string]string{
		"username": "x", "email": "x@example.edu", "password": "clave-segura", "role": "superadmin",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMe_ReturnsCurrentUser(t *testing.T) {
	user := &model.User{ID: uuid.New(), Username: "coordinadora", Email: "staff@example.edu", Role: "staff", Status: model.UserActive}
	repo := &memUserRepo{users: map[string]*model.User{user.Email: user}}
	r, h := newTestRouter(repo)
	r.GET("/auth/me", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, user.ID.String())
		h.Me(c)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "staff@example.edu")
}

func TestMe_MissingIdentityRejected(t *testing.T) {
	repo := &memUserRepo{users: map[string]*model.User{}}
	r, h := newTestRouter(repo)
	r.GET("/auth/me", h.Me)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
