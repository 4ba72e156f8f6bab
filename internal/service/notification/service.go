package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alumnitrack/alumni-api/internal/email"
	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/repository"
	apperrors "github.com/alumnitrack/alumni-api/pkg/errors"
	"github.com/alumnitrack/alumni-api/pkg/logger"
	"github.com/alumnitrack/alumni-api/pkg/messaging"
	"github.com/alumnitrack/alumni-api/pkg/metrics"
)

const (
	notificationsChannel = "notifications"

	relatedEventMeeting = "reunion"
)

// Fixed per-event templates, used verbatim.
var meetingTitles = map[model.MeetingEventKind]string{
	model.MeetingEventScheduled:        "Reunión agendada",
	model.MeetingEventModified:         "Reunión modificada",
	model.MeetingEventCancelled:        "Reunión cancelada",
	model.MeetingEventReminder:         "Recordatorio de reunión",
	model.MeetingEventUnconfirmedAlert: "Reunión pendiente de confirmación",
}

var meetingBodies = map[model.MeetingEventKind]string{
	model.MeetingEventScheduled:        "Su reunión ha sido agendada para el %s a las %s.",
	model.MeetingEventModified:         "Su reunión ha sido modificada para el %s a las %s.",
	model.MeetingEventCancelled:        "Su reunión para el %s a las %s ha sido cancelada.",
	model.MeetingEventReminder:         "Recuerde su reunión programada para el %s a las %s.",
	model.MeetingEventUnconfirmedAlert: "Tiene una reunión pendiente de confirmación para el %s a las %s.",
}

// Service persists notification records and relays them best-effort through
// the SMTP transport and the in-app broker channel. Delivery failures are
// logged, never propagated: the record always outlives the transport.
type Service interface {
	Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error)
	NotifyMeetingEvent(ctx context.Context, alumnusID, emailAddr string, kind model.MeetingEventKind, date, tm string, meetingID *uuid.UUID, notes string) (*model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	ListForRecipient(ctx context.Context, recipientID string, kind model.RecipientKind) ([]*model.Notification, error)
}

type service struct {
	repo         repository.NotificationRepository
	sender       email.Sender
	broker       messaging.Broker
	logger       *logger.Logger
	metrics      *metrics.Metrics
	emailTimeout time.Duration
	now          func() time.Time
}

type Option func(*service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithMetrics attaches prometheus counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *service) { s.metrics = m }
}

// WithEmailTimeout bounds each SMTP delivery attempt.
func WithEmailTimeout(d time.Duration) Option {
	return func(s *service) { s.emailTimeout = d }
}

func NewService(repo repository.NotificationRepository, sender email.Sender, broker messaging.Broker, log *logger.Logger, opts ...Option) Service {
	s := &service{
		repo:         repo,
		sender:       sender,
		broker:       broker,
		logger:       log,
		emailTimeout: 10 * time.Second,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	n := &model.Notification{
		ID:            uuid.New(),
		RecipientID:   req.RecipientID,
		RecipientKind: req.RecipientKind,
		Title:         req.Title,
		Body:          req.Body,
		SentAt:        s.now(),
		Read:          false,
		RelatedEvent:  req.RelatedEvent,
		RelatedID:     req.RelatedID,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	if s.metrics != nil {
		s.metrics.NotificationsCreated.Inc()
	}

	s.publishInApp(ctx, n)

	return n, nil
}

// NotifyMeetingEvent formats the template for kind, always persists the
// notification record, and attempts SMTP delivery when emailAddr is set.
func (s *service) NotifyMeetingEvent(ctx context.Context, alumnusID, emailAddr string, kind model.MeetingEventKind, date, tm string, meetingID *uuid.UUID, notes string) (*model.Notification, error) {
	title, ok := meetingTitles[kind]
	if !ok {
		return nil, apperrors.Validation(fmt.Sprintf("unknown meeting event kind: %s", kind), nil)
	}
	body := fmt.Sprintf(meetingBodies[kind], date, tm)

	n := &model.Notification{
		ID:            uuid.New(),
		RecipientID:   alumnusID,
		RecipientKind: model.RecipientAlumnus,
		Title:         title,
		Body:          body,
		SentAt:        s.now(),
		Read:          false,
		RelatedEvent:  relatedEventMeeting,
		RelatedID:     meetingID,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	if s.metrics != nil {
		s.metrics.NotificationsCreated.Inc()
	}

	if emailAddr != "" {
		s.deliverEmail(ctx, emailAddr, title, body)
	}

	s.publishInApp(ctx, n)

	return n, nil
}

func (s *service) deliverEmail(ctx context.Context, to, subject, body string) {
	sendCtx, cancel := context.WithTimeout(ctx, s.emailTimeout)
	defer cancel()

	if err := s.sender.Send(sendCtx, to, subject, body); err != nil {
		if s.metrics != nil {
			s.metrics.EmailsFailed.Inc()
		}
		s.logger.ZL.Error().Err(err).Str("recipient", to).Str("subject", subject).Msg("email delivery failed")
		return
	}
	if s.metrics != nil {
		s.metrics.EmailsSent.Inc()
	}
}

// publishInApp fans the record out on the broker. Failures are logged only;
// the persisted notification is the source of truth.
func (s *service) publishInApp(ctx context.Context, n *model.Notification) {
	if s.broker == nil {
		return
	}
	msg := messaging.Message{Type: "notification_created", Payload: n}
	if err := s.broker.Publish(ctx, notificationsChannel, msg); err != nil {
		s.logger.ZL.Warn().Err(err).Str("notification_id", n.ID.String()).Msg("failed to publish in-app notification")
	}
}

func (s *service) MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	n, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	// n is nil for unknown ids; this is a no-op by contract.
	return n, nil
}

func (s *service) ListForRecipient(ctx context.Context, recipientID string, kind model.RecipientKind) ([]*model.Notification, error) {
	if recipientID == "" {
		return nil, apperrors.Validation("recipient_id is required", nil)
	}
	if kind != model.RecipientAlumnus && kind != model.RecipientAdmin {
		return nil, apperrors.Validation("recipient_kind must be egresado or admin", nil)
	}
	notifications, err := s.repo.ListByRecipient(ctx, recipientID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func validateCreate(req *model.CreateNotificationRequest) error {
	switch {
	case req.RecipientID == "":
		return apperrors.Validation("recipient_id is required", nil)
	case req.RecipientKind == "":
		return apperrors.Validation("recipient_kind is required", nil)
	case req.RecipientKind != model.RecipientAlumnus && req.RecipientKind != model.RecipientAdmin:
		return apperrors.Validation("recipient_kind must be egresado or admin", nil)
	case req.Title == "":
		return apperrors.Validation("title is required", nil)
	case req.Body == "":
		return apperrors.Validation("body is required", nil)
	}
	return nil
}
