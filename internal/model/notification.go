package model

import (
	"time"

	"github.com/google/uuid"
)

type RecipientKind string

const (
	RecipientAlumnus RecipientKind = "egresado"
	RecipientAdmin   RecipientKind = "admin"
)

// MeetingEventKind selects a fixed notification template.
type MeetingEventKind string

const (
	MeetingEventScheduled        MeetingEventKind = "scheduled"
	MeetingEventModified         MeetingEventKind = "modified"
	MeetingEventCancelled        MeetingEventKind = "cancelled"
	MeetingEventReminder         MeetingEventKind = "reminder"
	MeetingEventUnconfirmedAlert MeetingEventKind = "unconfirmed_alert"
)

// Notification is an in-app message persisted for a recipient. Rows are
// never deleted; the only mutation is marking one as read.
type Notification struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	RecipientID   string        `db:"recipient_id" json:"recipient_id"`
	RecipientKind RecipientKind `db:"recipient_kind" json:"recipient_kind"`
	Title         string        `db:"title" json:"title"`
	Body          string        `db:"body" json:"body"`
	SentAt        time.Time     `db:"sent_at" json:"sent_at"`
	Read          bool          `db:"read" json:"read"`
	RelatedEvent  string        `db:"related_event" json:"related_event,omitempty"`
	RelatedID     *uuid.UUID    `db:"related_id" json:"related_id,omitempty"`
}

type CreateNotificationRequest struct {
	RecipientID   string        `json:"recipient_id" binding:"required"`
	RecipientKind RecipientKind `json:"recipient_kind" binding:"required,oneof=egresado admin"`
	Title         string        `json:"title" binding:"required"`
	Body          string        `json:"body" binding:"required"`
	RelatedEvent  string        `json:"related_event"`
	RelatedID     *uuid.UUID    `json:"related_id"`
}
