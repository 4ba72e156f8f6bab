package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/repository"
)

type notificationRepository struct {
	*BaseRepository
}

func NewNotificationRepository(base *BaseRepository) repository.NotificationRepository {
	return &notificationRepository{BaseRepository: base}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (
			id, recipient_id, recipient_kind, title, body,
			sent_at, read, related_event, related_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.RecipientID,
		n.RecipientKind,
		n.Title,
		n.Body,
		n.SentAt,
		n.Read,
		n.RelatedEvent,
		n.RelatedID,
	); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	query := `
		SELECT id, recipient_id, recipient_kind, title, body,
		       sent_at, read, related_event, related_id
		FROM notifications
		WHERE id = $1
	`
	var n model.Notification
	err := r.db.GetContext(ctx, &n, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &n, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, kind model.RecipientKind) ([]*model.Notification, error) {
	query := `
		SELECT id, recipient_id, recipient_kind, title, body,
		       sent_at, read, related_event, related_id
		FROM notifications
		WHERE recipient_id = $1 AND recipient_kind = $2
		ORDER BY sent_at DESC
	`
	var notifications []*model.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, recipientID, kind); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1
		RETURNING id, recipient_id, recipient_kind, title, body,
		          sent_at, read, related_event, related_id
	`
	var n model.Notification
	err := r.db.GetContext(ctx, &n, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		// Unknown ids are a no-op, not an error.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return &n, nil
}
