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

type workshopRepository struct {
	*BaseRepository
}

func NewWorkshopRepository(base *BaseRepository) repository.WorkshopRepository {
	return &workshopRepository{BaseRepository: base}
}

func (r *workshopRepository) Create(ctx context.Context, w *model.Workshop) error {
	query := `
		INSERT INTO workshops (
			id, title, description, workshop_date, workshop_time,
			link, flyer, accesses, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if _, err := r.db.ExecContext(ctx, query,
		w.ID, w.Title, w.Description, w.WorkshopDate, w.WorkshopTime,
		w.Link, w.Flyer, w.Accesses, w.CreatedAt, w.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create workshop: %w", err)
	}
	return nil
}

func (r *workshopRepository) Get(ctx context.Context, id uuid.UUID) (*model.Workshop, error) {
	query := `
		SELECT id, title, description, workshop_date, workshop_time,
		       link, flyer, accesses, created_at, updated_at
		FROM workshops
		WHERE id = $1
	`
	var w model.Workshop
	err := r.db.GetContext(ctx, &w, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("workshop", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workshop: %w", err)
	}
	return &w, nil
}

func (r *workshopRepository) Update(ctx context.Context, w *model.Workshop) error {
	query := `
		UPDATE workshops
		SET title = $1, description = $2, workshop_date = $3, workshop_time = $4,
		    link = $5, flyer = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := r.db.ExecContext(ctx, query,
		w.Title, w.Description, w.WorkshopDate, w.WorkshopTime,
		w.Link, w.Flyer, w.UpdatedAt, w.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update workshop: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("workshop", nil)
	}
	return nil
}

func (r *workshopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workshops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workshop: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("workshop", nil)
	}
	return nil
}

func (r *workshopRepository) List(ctx context.Context) ([]*model.Workshop, error) {
	query := `
		SELECT id, title, description, workshop_date, workshop_time,
		       link, flyer, accesses, created_at, updated_at
		FROM workshops
		ORDER BY workshop_date ASC, workshop_time ASC
	`
	var workshops []*model.Workshop
	if err := r.db.SelectContext(ctx, &workshops, query); err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}
	return workshops, nil
}

func (r *workshopRepository) IncrementAccesses(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE workshops SET accesses = accesses + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to register workshop access: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("workshop", nil)
	}
	return nil
}
