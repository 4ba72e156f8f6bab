package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/repository"
	apperrors "github.com/alumnitrack/alumni-api/pkg/errors"
)

type slotRepository struct {
	*BaseRepository
}

func NewSlotRepository(base *BaseRepository) repository.SlotRepository {
	return &slotRepository{BaseRepository: base}
}

func (r *slotRepository) Create(ctx context.Context, s *model.AvailableSlot) error {
	query := `
		INSERT INTO available_slots (id, slot_date, slot_time, description, status)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		s.ID, s.SlotDate, s.SlotTime, s.Description, s.Status,
	); err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

func (r *slotRepository) Get(ctx context.Context, id uuid.UUID) (*model.AvailableSlot, error) {
	query := `
		SELECT id, slot_date, slot_time, description, status
		FROM available_slots
		WHERE id = $1
	`
	var s model.AvailableSlot
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("slot", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return &s, nil
}

func (r *slotRepository) Update(ctx context.Context, s *model.AvailableSlot) error {
	query := `
		UPDATE available_slots
		SET slot_date = $1, slot_time = $2, description = $3, status = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		s.SlotDate, s.SlotTime, s.Description, s.Status, s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update slot: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("slot", nil)
	}
	return nil
}

func (r *slotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM available_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("slot", nil)
	}
	return nil
}

func (r *slotRepository) ListAvailable(ctx context.Context) ([]*model.AvailableSlot, error) {
	query := `
		SELECT id, slot_date, slot_time, description, status
		FROM available_slots
		WHERE status = $1
		ORDER BY slot_date ASC, slot_time ASC
	`
	var slots []*model.AvailableSlot
	if err := r.db.SelectContext(ctx, &slots, query, model.SlotAvailable); err != nil {
		return nil, fmt.Errorf("failed to list available slots: %w", err)
	}
	return slots, nil
}
