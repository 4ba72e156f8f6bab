package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditLog records an administrative action.
type AuditLog struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	UserID     string          `db:"user_id" json:"user_id"`
	Action     string          `db:"action" json:"action"`
	EntityType string          `db:"entity_type" json:"entity_type"`
	EntityID   string          `db:"entity_id" json:"entity_id"`
	Detail     json.RawMessage `db:"detail" json:"detail,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
