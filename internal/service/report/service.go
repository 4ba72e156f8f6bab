package report

import (
	"context"
	"fmt"

	"github.com/alumnitrack/alumni-api/internal/repository"
)

// Summary aggregates the headline numbers for the admin dashboard.
type Summary struct {
	AlumniByCareer   map[string]int `json:"alumni_by_career"`
	AlumniByYear     map[int]int    `json:"alumni_by_year"`
	MeetingsByStatus map[string]int `json:"meetings_by_status"`
}

type Service struct {
	repo repository.ReportRepository
}

func NewService(repo repository.ReportRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	byCareer, err := s.repo.AlumniByCareer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	byYear, err := s.repo.AlumniByYear(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	byStatus, err := s.repo.MeetingsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	return &Summary{
		AlumniByCareer:   byCareer,
		AlumniByYear:     byYear,
		MeetingsByStatus: byStatus,
	}, nil
}
