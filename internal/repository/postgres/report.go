package postgres

import (
	"context"
	"fmt"

	"github.com/alumnitrack/alumni-api/internal/repository"
)

type reportRepository struct {
	*BaseRepository
}

func NewReportRepository(base *BaseRepository) repository.ReportRepository {
	return &reportRepository{BaseRepository: base}
}

func (r *reportRepository) AlumniByCareer(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT career, COUNT(*) FROM alumni GROUP BY career`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate alumni by career: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var career string
		var count int
		if err := rows.Scan(&career, &count); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		result[career] = count
	}
	return result, rows.Err()
}

func (r *reportRepository) AlumniByYear(ctx context.Context) (map[int]int, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT graduation_year, COUNT(*) FROM alumni GROUP BY graduation_year`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate alumni by year: %w", err)
	}
	defer rows.Close()

	result := make(map[int]int)
	for rows.Next() {
		var year, count int
		if err := rows.Scan(&year, &count); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		result[year] = count
	}
	return result, rows.Err()
}

func (r *reportRepository) MeetingsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT status, COUNT(*) FROM meetings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate meetings by status: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		result[status] = count
	}
	return result, rows.Err()
}
