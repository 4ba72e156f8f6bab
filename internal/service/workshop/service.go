package workshop

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/repository"
)

type Service struct {
	repo repository.WorkshopRepository
}

func NewService(repo repository.WorkshopRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateWorkshopRequest) (*model.Workshop, error) {
	now := time.Now()
	w := &model.Workshop{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		WorkshopDate: req.Date,
		WorkshopTime: req.Time,
		Link:         req.Link,
		Flyer:        req.Flyer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to create workshop: %w", err)
	}
	return w, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Workshop, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateWorkshopRequest) (*model.Workshop, error) {
	w, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		w.Title = *req.Title
	}
	if req.Description != nil {
		w.Description = *req.Description
	}
	if req.Date != nil {
		w.WorkshopDate = *req.Date
	}
	if req.Time != nil {
		w.WorkshopTime = *req.Time
	}
	if req.Link != nil {
		w.Link = *req.Link
	}
	if req.Flyer != nil {
		w.Flyer = *req.Flyer
	}
	w.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Workshop, error) {
	return s.repo.List(ctx)
}

// RegisterAccess counts one alumnus click-through on the workshop link.
func (s *Service) RegisterAccess(ctx context.Context, id uuid.UUID) error {
	return s.repo.IncrementAccesses(ctx, id)
}
