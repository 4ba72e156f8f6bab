package slot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/repository"
)

const (
	availableKey = "slots:available"

	cacheTTL     = time.Minute
	cacheCleanup = 5 * time.Minute
)

// Service manages advertised booking windows. The available listing is
// read-mostly, so it is served from a short-lived cache invalidated on
// every write.
type Service struct {
	repo  repository.SlotRepository
	cache *gocache.Cache
}

func NewService(repo repository.SlotRepository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(cacheTTL, cacheCleanup),
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateSlotRequest) (*model.AvailableSlot, error) {
	slot := &model.AvailableSlot{
		ID:          uuid.New(),
		SlotDate:    req.Date,
		SlotTime:    req.Time,
		Description: req.Description,
		Status:      model.SlotAvailable,
	}
	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}
	s.cache.Delete(availableKey)
	return slot, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateSlotRequest) (*model.AvailableSlot, error) {
	slot, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		slot.SlotDate = *req.Date
	}
	if req.Time != nil {
		slot.SlotTime = *req.Time
	}
	if req.Description != nil {
		slot.Description = *req.Description
	}
	if req.Status != nil {
		slot.Status = *req.Status
	}

	if err := s.repo.Update(ctx, slot); err != nil {
		return nil, err
	}
	s.cache.Delete(availableKey)
	return slot, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(availableKey)
	return nil
}

// ListAvailable returns disponible slots, cached for up to a minute.
func (s *Service) ListAvailable(ctx context.Context) ([]*model.AvailableSlot, error) {
	if cached, ok := s.cache.Get(availableKey); ok {
		return cached.([]*model.AvailableSlot), nil
	}

	slots, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available slots: %w", err)
	}
	s.cache.Set(availableKey, slots, gocache.DefaultExpiration)
	return slots, nil
}
