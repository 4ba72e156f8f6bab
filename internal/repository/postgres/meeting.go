package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/repository"
	apperrors "github.com/alumnitrack/alumni-api/pkg/errors"
)

type meetingRepository struct {
	*BaseRepository
}

func NewMeetingRepository(base *BaseRepository) repository.MeetingRepository {
	return &meetingRepository{BaseRepository: base}
}

func (r *meetingRepository) CreateWithHistory(ctx context.Context, meeting *model.Meeting, change *model.MeetingStatusChange) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO meetings (
				id, alumnus_id, meeting_date, meeting_time,
				status, notes, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		if _, err := tx.ExecContext(ctx, query,
			meeting.ID,
			meeting.AlumnusID,
			meeting.MeetingDate,
			meeting.MeetingTime,
			meeting.Status,
			meeting.Notes,
			meeting.CreatedAt,
			meeting.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to create meeting: %w", err)
		}

		return insertHistoryTx(ctx, tx, change)
	})
}

func (r *meetingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Meeting, error) {
	query := `
		SELECT id, alumnus_id, meeting_date, meeting_time,
		       status, notes, created_at, updated_at
		FROM meetings
		WHERE id = $1
	`
	var meeting model.Meeting
	err := r.db.GetContext(ctx, &meeting, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("meeting", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return &meeting, nil
}

func (r *meetingRepository) UpdateWithHistory(ctx context.Context, meeting *model.Meeting, change *model.MeetingStatusChange) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE meetings
			SET meeting_date = $1, meeting_time = $2, status = $3, notes = $4, updated_at = $5
			WHERE id = $6
		`
		result, err := tx.ExecContext(ctx, query,
			meeting.MeetingDate,
			meeting.MeetingTime,
			meeting.Status,
			meeting.Notes,
			meeting.UpdatedAt,
			meeting.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update meeting: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("meeting", nil)
		}

		return insertHistoryTx(ctx, tx, change)
	})
}

func insertHistoryTx(ctx context.Context, tx *sqlx.Tx, change *model.MeetingStatusChange) error {
	query := `
		INSERT INTO meeting_status_history (id, meeting_id, status, changed_on, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.ExecContext(ctx, query,
		change.ID,
		change.MeetingID,
		change.Status,
		change.ChangedOn,
		change.Notes,
		change.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to append status history: %w", err)
	}
	return nil
}

func (r *meetingRepository) ListByAlumnus(ctx context.Context, alumnusID string) ([]*model.Meeting, error) {
	query := `
		SELECT id, alumnus_id, meeting_date, meeting_time,
		       status, notes, created_at, updated_at
		FROM meetings
		WHERE alumnus_id = $1
		ORDER BY meeting_date ASC, meeting_time ASC
	`
	var meetings []*model.Meeting
	if err := r.db.SelectContext(ctx, &meetings, query, alumnusID); err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

func (r *meetingRepository) PendingExistsAt(ctx context.Context, date, tm string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM meetings
			WHERE meeting_date = $1
			AND meeting_time = $2
			AND status = $3
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, date, tm, model.MeetingStatusPending); err != nil {
		return false, fmt.Errorf("failed to check slot availability: %w", err)
	}
	return exists, nil
}

func (r *meetingRepository) ListActiveWithEmail(ctx context.Context) ([]*model.MeetingReminder, error) {
	query := `
		SELECT m.id, m.alumnus_id, m.meeting_date, m.meeting_time,
		       m.status, m.notes, m.created_at, m.updated_at,
		       COALESCE(a.email, '') AS alumnus_email
		FROM meetings m
		LEFT JOIN alumni a ON a.id = m.alumnus_id
		WHERE m.status IN ($1, $2)
		ORDER BY m.meeting_date ASC, m.meeting_time ASC
	`
	var meetings []*model.MeetingReminder
	if err := r.db.SelectContext(ctx, &meetings, query,
		model.MeetingStatusPending, model.MeetingStatusConfirmed); err != nil {
		return nil, fmt.Errorf("failed to list active meetings: %w", err)
	}
	return meetings, nil
}

func (r *meetingRepository) History(ctx context.Context, meetingID uuid.UUID) ([]*model.MeetingStatusChange, error) {
	query := `
		SELECT id, meeting_id, status, changed_on, notes, created_at
		FROM meeting_status_history
		WHERE meeting_id = $1
		ORDER BY changed_on ASC, created_at ASC
	`
	var changes []*model.MeetingStatusChange
	if err := r.db.SelectContext(ctx, &changes, query, meetingID); err != nil {
		return nil, fmt.Errorf("failed to get status history: %w", err)
	}
	return changes, nil
}
