package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alumnitrack/alumni-api/pkg/errors"
)

func TestError_WritesEnvelopeAndAttachesError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Error(c, apperrors.Conflict("la fecha y hora ya están reservadas", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, c.Errors, 1)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "la fecha y hora ya están reservadas", resp.Message)
}

func TestError_UnwrapsForStatusCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	wrapped := fmt.Errorf("loading meeting: %w", apperrors.NotFound("meeting", nil))
	Error(c, wrapped)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
