package meeting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/repository"
	"github.com/alumnitrack/alumni-api/internal/service/notification"
	apperrors "github.com/alumnitrack/alumni-api/pkg/errors"
	"github.com/alumnitrack/alumni-api/pkg/logger"
)

// Service is the only writer of meeting state. Every transition is paired
// with a notification attempt; a failed notification never rolls back the
// transition.
type Service struct {
	repo        repository.MeetingRepository
	alumnusRepo repository.AlumnusRepository
	notifier    notification.Service
	logger      *logger.Logger
	now         func() time.Time

	// bookMu serializes the pending-slot check against the insert so two
	// concurrent requests cannot both claim the same (date, time).
	bookMu sync.Mutex
}

type Option func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo repository.MeetingRepository, alumnusRepo repository.AlumnusRepository, notifier notification.Service, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		alumnusRepo: alumnusRepo,
		notifier:    notifier,
		logger:      log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request books a new meeting in pendiente state. Only an existing pendiente
// meeting at the same (date, time) blocks the slot; a confirmada one does not.
func (s *Service) Request(ctx context.Context, req *model.RequestMeetingRequest) (*model.Meeting, error) {
	if err := validateDateTime(req.Date, req.Time); err != nil {
		return nil, err
	}

	s.bookMu.Lock()
	defer s.bookMu.Unlock()

	taken, err := s.repo.PendingExistsAt(ctx, req.Date, req.Time)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot availability: %w", err)
	}
	if taken {
		return nil, apperrors.Conflict("la fecha y hora ya están reservadas", nil)
	}

	now := s.now()
	meeting := &model.Meeting{
		ID:          uuid.New(),
		AlumnusID:   req.AlumnusID,
		MeetingDate: req.Date,
		MeetingTime: req.Time,
		Status:      model.MeetingStatusPending,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	change := s.historyEntry(meeting, req.Notes)

	if err := s.repo.CreateWithHistory(ctx, meeting, change); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	// Notify off the request path; failure is logged, never surfaced.
	go s.notifyEvent(context.WithoutCancel(ctx), meeting, model.MeetingEventScheduled)

	return meeting, nil
}

// Reschedule moves the meeting to a new (date, time) and resets it to
// pendiente regardless of its prior state, cancelled included.
func (s *Service) Reschedule(ctx context.Context, meetingID uuid.UUID, req *model.RescheduleMeetingRequest) (*model.Meeting, error) {
	if err := validateDateTime(req.Date, req.Time); err != nil {
		return nil, err
	}

	meeting, err := s.repo.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	meeting.MeetingDate = req.Date
	meeting.MeetingTime = req.Time
	meeting.Status = model.MeetingStatusPending
	meeting.UpdatedAt = s.now()
	change := s.historyEntry(meeting, "")

	if err := s.repo.UpdateWithHistory(ctx, meeting, change); err != nil {
		return nil, fmt.Errorf("failed to reschedule meeting: %w", err)
	}

	s.notifyEvent(ctx, meeting, model.MeetingEventModified)

	return meeting, nil
}

// ChangeStatus sets the meeting state. Transitions are unrestricted: any
// state may move to any other, and setting the same state again is allowed
// and still appends a history row.
func (s *Service) ChangeStatus(ctx context.Context, meetingID uuid.UUID, req *model.ChangeMeetingStatusRequest) (*model.Meeting, error) {
	if !model.ValidMeetingStatus(req.Status) {
		return nil, apperrors.Validation(fmt.Sprintf("invalid meeting status: %s", req.Status), nil)
	}

	meeting, err := s.repo.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	meeting.Status = req.Status
	meeting.UpdatedAt = s.now()
	change := s.historyEntry(meeting, req.Notes)

	if err := s.repo.UpdateWithHistory(ctx, meeting, change); err != nil {
		return nil, fmt.Errorf("failed to change meeting status: %w", err)
	}

	if req.Status == model.MeetingStatusCancelled {
		s.notifyEvent(ctx, meeting, model.MeetingEventCancelled)
	} else {
		s.notifyStatusUpdate(ctx, meeting)
	}

	return meeting, nil
}

// History returns every meeting of the alumnus, chronological, all states
// included.
func (s *Service) History(ctx context.Context, alumnusID string) ([]*model.Meeting, error) {
	meetings, err := s.repo.ListByAlumnus(ctx, alumnusID)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting history: %w", err)
	}
	return meetings, nil
}

// StatusHistory returns the append-only state log of one meeting.
func (s *Service) StatusHistory(ctx context.Context, meetingID uuid.UUID) ([]*model.MeetingStatusChange, error) {
	changes, err := s.repo.History(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get status history: %w", err)
	}
	return changes, nil
}

func (s *Service) historyEntry(meeting *model.Meeting, notes string) *model.MeetingStatusChange {
	now := s.now()
	return &model.MeetingStatusChange{
		ID:        uuid.New(),
		MeetingID: meeting.ID,
		Status:    meeting.Status,
		ChangedOn: now.Format(model.MeetingDateLayout),
		Notes:     notes,
		CreatedAt: now,
	}
}

func (s *Service) notifyEvent(ctx context.Context, meeting *model.Meeting, kind model.MeetingEventKind) {
	email := s.alumnusEmail(ctx, meeting.AlumnusID)
	id := meeting.ID
	if _, err := s.notifier.NotifyMeetingEvent(ctx, meeting.AlumnusID, email, kind, meeting.MeetingDate, meeting.MeetingTime, &id, meeting.Notes); err != nil {
		s.logger.ZL.Error().Err(err).
			Str("meeting_id", meeting.ID.String()).
			Str("event", string(kind)).
			Msg("failed to notify meeting event")
	}
}

// notifyStatusUpdate records a plain notification for transitions that have
// no fixed template (confirmada, realizada, re-entering pendiente).
func (s *Service) notifyStatusUpdate(ctx context.Context, meeting *model.Meeting) {
	id := meeting.ID
	req := &model.CreateNotificationRequest{
		RecipientID:   meeting.AlumnusID,
		RecipientKind: model.RecipientAlumnus,
		Title:         "Actualización de reunión",
		Body: fmt.Sprintf("El estado de su reunión del %s a las %s ha cambiado a %s.",
			meeting.MeetingDate, meeting.MeetingTime, meeting.Status),
		RelatedEvent: "reunion",
		RelatedID:    &id,
	}
	if _, err := s.notifier.Create(ctx, req); err != nil {
		s.logger.ZL.Error().Err(err).
			Str("meeting_id", meeting.ID.String()).
			Msg("failed to record status-update notification")
	}
}

func (s *Service) alumnusEmail(ctx context.Context, alumnusID string) string {
	alumnus, err := s.alumnusRepo.Get(ctx, alumnusID)
	if err != nil {
		s.logger.ZL.Debug().Err(err).Str("alumnus_id", alumnusID).Msg("no contact email for alumnus")
		return ""
	}
	return alumnus.Email
}

func validateDateTime(date, tm string) error {
	if _, err := time.Parse(model.MeetingDateLayout, date); err != nil {
		return apperrors.Validation("date must use the 2006-01-02 format", err)
	}
	if _, err := time.Parse(model.MeetingTimeLayout, tm); err != nil {
		return apperrors.Validation("time must use the 15:04 format", err)
	}
	return nil
}
