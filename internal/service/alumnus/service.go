package alumnus

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/repository"
	apperrors "github.com/alumnitrack/alumni-api/pkg/errors"
)

type Service struct {
	repo repository.AlumnusRepository
}

func NewService(repo repository.AlumnusRepository) *Service {
	return &Service{repo: repo}
}

// Register creates an alumnus profile. A profile already registered under
// the same DNI conflicts.
func (s *Service) Register(ctx context.Context, req *model.RegisterAlumnusRequest) (*model.Alumnus, error) {
	if existing, err := s.repo.GetByDNI(ctx, req.DNI); err == nil && existing != nil {
		return nil, apperrors.Conflict("el egresado ya está registrado", nil)
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check existing alumnus: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	a := &model.Alumnus{
		ID:             req.ID,
		DNI:            req.DNI,
		FirstNames:     req.FirstNames,
		LastNames:      req.LastNames,
		Email:          req.Email,
		PasswordHash:   string(hash),
		Career:         req.Career,
		AcademicDegree: req.AcademicDegree,
		GraduationYear: req.GraduationYear,
		City:           req.City,
		Gender:         req.Gender,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.BirthDate != "" {
		bd, err := time.Parse(model.MeetingDateLayout, req.BirthDate)
		if err != nil {
			return nil, apperrors.Validation("birth_date must use the 2006-01-02 format", err)
		}
		a.BirthDate = &bd
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to register alumnus: %w", err)
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Alumnus, error) {
	return s.repo.Get(ctx, id)
}

// UpdateProfile applies the non-nil fields of req.
func (s *Service) UpdateProfile(ctx context.Context, id string, req *model.UpdateAlumnusRequest) (*model.Alumnus, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstNames != nil {
		a.FirstNames = *req.FirstNames
	}
	if req.LastNames != nil {
		a.LastNames = *req.LastNames
	}
	if req.Career != nil {
		a.Career = *req.Career
	}
	if req.AcademicDegree != nil {
		a.AcademicDegree = *req.AcademicDegree
	}
	if req.GraduationYear != nil {
		a.GraduationYear = *req.GraduationYear
	}
	if req.CV != nil {
		a.CV = *req.CV
	}
	if req.City != nil {
		a.City = *req.City
	}
	if req.Gender != nil {
		a.Gender = *req.Gender
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateContact applies the non-nil contact fields of req.
func (s *Service) UpdateContact(ctx context.Context, id string, req *model.UpdateContactRequest) (*model.Alumnus, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		a.Email = *req.Email
	}
	if req.AltEmail != nil {
		a.AltEmail = *req.AltEmail
	}
	if req.Phone != nil {
		a.Phone = *req.Phone
	}
	if req.City != nil {
		a.City = *req.City
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, filters *model.AlumnusFilters) ([]*model.Alumnus, error) {
	return s.repo.List(ctx, filters)
}

// Authenticate checks the alumnus portal credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.Alumnus, error) {
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized(err)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return a, nil
}
