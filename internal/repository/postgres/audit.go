package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/repository"
)

type auditRepository struct {
	*BaseRepository
}

func NewAuditRepository(base *BaseRepository) repository.AuditRepository {
	return &auditRepository{BaseRepository: base}
}

func (r *auditRepository) Create(ctx context.Context, log *model.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.db.ExecContext(ctx, query,
		log.ID, log.UserID, log.Action, log.EntityType, log.EntityID, log.Detail, log.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *auditRepository) List(ctx context.Context, filters map[string]interface{}) ([]*model.AuditLog, error) {
	query := `
		SELECT id, user_id, action, entity_type, entity_id, detail, created_at
		FROM audit_logs
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if v, ok := filters["user_id"]; ok {
		query += fmt.Sprintf(" AND user_id = $%d", argCount)
		args = append(args, v)
		argCount++
	}
	if v, ok := filters["entity_type"]; ok {
		query += fmt.Sprintf(" AND entity_type = $%d", argCount)
		args = append(args, v)
		argCount++
	}
	if v, ok := filters["action"]; ok {
		query += fmt.Sprintf(" AND action = $%d", argCount)
		args = append(args, v)
		argCount++
	}

	query += " ORDER BY created_at DESC"

	var logs []*model.AuditLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}

func (r *auditRepository) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM audit_logs WHERE created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup audit logs: %w", err)
	}
	return result.RowsAffected()
}
