package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/repository"
)

type Service struct {
	repo repository.AuditRepository
}

func NewService(repo repository.AuditRepository) *Service {
	return &Service{repo: repo}
}

// Log creates an audit log entry.
func (s *Service) Log(ctx context.Context, userID, action, entityType, entityID string, detail interface{}) error {
	var raw json.RawMessage
	if detail != nil {
		var err error
		raw, err = json.Marshal(detail)
		if err != nil {
			return err
		}
	}

	entry := &model.AuditLog{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     raw,
		CreatedAt:  time.Now(),
	}
	return s.repo.Create(ctx, entry)
}

func (s *Service) List(ctx context.Context, filters map[string]interface{}) ([]*model.AuditLog, error) {
	return s.repo.List(ctx, filters)
}
