package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alumnitrack/alumni-api/internal/service/audit"
	"github.com/alumnitrack/alumni-api/pkg/logger"
)

// AuditTrail records successful mutating requests by authenticated staff.
type AuditTrail struct {
	service *audit.Service
	logger  *logger.Logger
}

func NewAuditTrail(service *audit.Service, log *logger.Logger) *AuditTrail {
	return &AuditTrail{service: service, logger: log}
}

func (m *AuditTrail) Record() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		entityType, entityID := splitEntity(c.Request.URL.Path)
		detail := map[string]string{
			"path": c.Request.URL.Path,
			"ip":   c.ClientIP(),
		}

		// Off the request path; a failed audit write never affects the response.
		go func(ctx context.Context, userID, action string) {
			if err := m.service.Log(ctx, userID, action, entityType, entityID, detail); err != nil {
				m.logger.ZL.Error().Err(err).Str("path", detail["path"]).Msg("failed to record audit log")
			}
		}(context.WithoutCancel(c.Request.Context()), c.GetString(ContextUserID), c.Request.Method)
	}
}

// splitEntity extracts the resource segment and id from an /api/v1 path.
func splitEntity(path string) (entityType, entityID string) {
	trimmed := strings.TrimPrefix(path, "/api/v1/")
	parts := strings.Split(trimmed, "/")
	if len(parts) > 0 {
		entityType = parts[0]
	}
	if len(parts) > 1 {
		entityID = parts[1]
	}
	return entityType, entityID
}
