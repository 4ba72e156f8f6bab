package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/repository"
	apperrors "github.com/alumnitrack/alumni-api/pkg/errors"
)

type alumnusRepository struct {
	*BaseRepository
}

func NewAlumnusRepository(base *BaseRepository) repository.AlumnusRepository {
	return &alumnusRepository{BaseRepository: base}
}

const alumnusColumns = `
	id, dni, first_names, last_names, email, password_hash,
	career, academic_degree, graduation_year, cv, city, gender,
	birth_date, alt_email, phone, created_at, updated_at
`

func (r *alumnusRepository) Create(ctx context.Context, a *model.Alumnus) error {
	query := `
		INSERT INTO alumni (` + alumnusColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	if _, err := r.db.ExecContext(ctx, query,
		a.ID, a.DNI, a.FirstNames, a.LastNames, a.Email, a.PasswordHash,
		a.Career, a.AcademicDegree, a.GraduationYear, a.CV, a.City, a.Gender,
		a.BirthDate, a.AltEmail, a.Phone, a.CreatedAt, a.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create alumnus: %w", err)
	}
	return nil
}

func (r *alumnusRepository) Get(ctx context.Context, id string) (*model.Alumnus, error) {
	return r.getBy(ctx, "id", id)
}

func (r *alumnusRepository) GetByDNI(ctx context.Context, dni string) (*model.Alumnus, error) {
	return r.getBy(ctx, "dni", dni)
}

func (r *alumnusRepository) GetByEmail(ctx context.Context, email string) (*model.Alumnus, error) {
	return r.getBy(ctx, "email", email)
}

func (r *alumnusRepository) getBy(ctx context.Context, column, value string) (*model.Alumnus, error) {
	query := fmt.Sprintf(`SELECT %s FROM alumni WHERE %s = $1`, alumnusColumns, column)
	var a model.Alumnus
	err := r.db.GetContext(ctx, &a, query, value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("alumnus", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alumnus: %w", err)
	}
	return &a, nil
}

func (r *alumnusRepository) Update(ctx context.Context, a *model.Alumnus) error {
	query := `
		UPDATE alumni
		SET first_names = $1, last_names = $2, email = $3, career = $4,
		    academic_degree = $5, graduation_year = $6, cv = $7, city = $8,
		    gender = $9, alt_email = $10, phone = $11, updated_at = $12
		WHERE id = $13
	`
	result, err := r.db.ExecContext(ctx, query,
		a.FirstNames, a.LastNames, a.Email, a.Career,
		a.AcademicDegree, a.GraduationYear, a.CV, a.City,
		a.Gender, a.AltEmail, a.Phone, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update alumnus: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("alumnus", nil)
	}
	return nil
}

func (r *alumnusRepository) List(ctx context.Context, filters *model.AlumnusFilters) ([]*model.Alumnus, error) {
	query := `SELECT ` + alumnusColumns + ` FROM alumni WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.Career != "" {
			query += fmt.Sprintf(" AND career = $%d", argCount)
			args = append(args, filters.Career)
			argCount++
		}
		if filters.GraduationYear != 0 {
			query += fmt.Sprintf(" AND graduation_year = $%d", argCount)
			args = append(args, filters.GraduationYear)
			argCount++
		}
		if filters.City != "" {
			query += fmt.Sprintf(" AND city = $%d", argCount)
			args = append(args, filters.City)
			argCount++
		}
	}

	query += " ORDER BY last_names ASC, first_names ASC"

	var alumni []*model.Alumnus
	if err := r.db.SelectContext(ctx, &alumni, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list alumni: %w", err)
	}
	return alumni, nil
}
