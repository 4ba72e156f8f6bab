package notification

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnitrack/alumni-api/internal/model"
	apperrors "github.com/alumnitrack/alumni-api/pkg/errors"
	"github.com/alumnitrack/alumni-api/pkg/logger"
	"github.com/alumnitrack/alumni-api/pkg/messaging"
)

type fakeNotificationRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]*model.Notification
	failing bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{rows: make(map[uuid.UUID]*model.Notification)}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if r.failing {
		return errors.New("insert failed")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	r.rows[n.ID] = &cp
	return nil
}

func (r *fakeNotificationRepo) Get(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NotFound("notification not found", nil)
	}
	return n, nil
}

func (r *fakeNotificationRepo) ListByRecipient(_ context.Context, recipientID string, kind model.RecipientKind) ([]*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Notification
	for _, n := range r.rows {
		if n.RecipientID == recipientID && n.RecipientKind == kind {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	n.Read = true
	return n, nil
}

func (r *fakeNotificationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

type sentEmail struct {
	to, subject, body string
}

func (s *fakeSender) Send(_ context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

type fakeBroker struct {
	mu        sync.Mutex
	published []messaging.Message
	err       error
}

func (b *fakeBroker) Publish(_ context.Context, _ string, message interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	if msg, ok := message.(messaging.Message); ok {
		b.published = append(b.published, msg)
	}
	return nil
}

func (b *fakeBroker) Close() error { return nil }

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.FatalLevel, Output: io.Discard})
}

func newTestService(repo *fakeNotificationRepo, sender *fakeSender, broker *fakeBroker, opts ...Option) Service {
	return NewService(repo, sender, broker, testLogger(), opts...)
}

func TestNotifyMeetingEvent_Templates(t *testing.T) {
	tests := []struct {
		kind      model.MeetingEventKind
		wantTitle string
		wantBody  string
	}{
		{model.MeetingEventScheduled, "Reunión agendada", "Su reunión ha sido agendada para el 2026-09-15 a las 10:30."},
		{model.MeetingEventModified, "Reunión modificada", "Su reunión ha sido modificada para el 2026-09-15 a las 10:30."},
		{model.MeetingEventCancelled, "Reunión cancelada", "Su reunión para el 2026-09-15 a las 10:30 ha sido cancelada."},
		{model.MeetingEventReminder, "Recordatorio de reunión", "Recuerde su reunión programada para el 2026-09-15 a las 10:30."},
		{model.MeetingEventUnconfirmedAlert, "Reunión pendiente de confirmación", "Tiene una reunión pendiente de confirmación para el 2026-09-15 a las 10:30."},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			repo := newFakeNotificationRepo()
			sender := &fakeSender{}
			svc := newTestService(repo, sender, &fakeBroker{})

			meetingID := uuid.New()
			n, err := svc.NotifyMeetingEvent(context.Background(), "alum-1", "alum@example.com", tt.kind, "2026-09-15", "10:30", &meetingID, "")
			require.NoError(t, err)

			assert.Equal(t, tt.wantTitle, n.Title)
			assert.Equal(t, tt.wantBody, n.Body)
			assert.Equal(t, "alum-1", n.RecipientID)
			assert.Equal(t, model.RecipientAlumnus, n.RecipientKind)
			assert.Equal(t, "reunion", n.RelatedEvent)
			require.NotNil(t, n.RelatedID)
			assert.Equal(t, meetingID, *n.RelatedID)
			assert.False(t, n.Read)

			require.Len(t, sender.sent, 1)
			assert.Equal(t, "alum@example.com", sender.sent[0].to)
			assert.Equal(t, tt.wantTitle, sender.sent[0].subject)
			assert.Equal(t, tt.wantBody, sender.sent[0].body)
		})
	}
}

func TestNotifyMeetingEvent_UnknownKind(t *testing.T) {
	svc := newTestService(newFakeNotificationRepo(), &fakeSender{}, &fakeBroker{})

	_, err := svc.NotifyMeetingEvent(context.Background(), "alum-1", "", "nonsense", "2026-09-15", "10:30", nil, "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestNotifyMeetingEvent_NoEmailSkipsDelivery(t *testing.T) {
	repo := newFakeNotificationRepo()
	sender := &fakeSender{}
	svc := newTestService(repo, sender, &fakeBroker{})

	_, err := svc.NotifyMeetingEvent(context.Background(), "alum-1", "", model.MeetingEventReminder, "2026-09-15", "10:30", nil, "")
	require.NoError(t, err)

	assert.Empty(t, sender.sent)
	assert.Equal(t, 1, repo.count())
}

func TestNotifyMeetingEvent_RecordSurvivesSenderFailure(t *testing.T) {
	repo := newFakeNotificationRepo()
	sender := &fakeSender{err: errors.New("smtp unreachable")}
	svc := newTestService(repo, sender, &fakeBroker{})

	n, err := svc.NotifyMeetingEvent(context.Background(), "alum-1", "alum@example.com", model.MeetingEventScheduled, "2026-09-15", "10:30", nil, "")
	require.NoError(t, err)
	assert.NotNil(t, n)
	assert.Equal(t, 1, repo.count())
}

func TestNotifyMeetingEvent_RecordSurvivesBrokerFailure(t *testing.T) {
	repo := newFakeNotificationRepo()
	broker := &fakeBroker{err: errors.New("redis down")}
	svc := newTestService(repo, &fakeSender{}, broker)

	_, err := svc.NotifyMeetingEvent(context.Background(), "alum-1", "alum@example.com", model.MeetingEventScheduled, "2026-09-15", "10:30", nil, "")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.count())
}

func TestNotifyMeetingEvent_RepoFailurePropagates(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.failing = true
	sender := &fakeSender{}
	svc := newTestService(repo, sender, &fakeBroker{})

	_, err := svc.NotifyMeetingEvent(context.Background(), "alum-1", "alum@example.com", model.MeetingEventScheduled, "2026-09-15", "10:30", nil, "")
	assert.Error(t, err)
	assert.Empty(t, sender.sent)
}

func TestCreate_PublishesInApp(t *testing.T) {
	repo := newFakeNotificationRepo()
	broker := &fakeBroker{}
	fixed := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeSender{}, broker, WithClock(func() time.Time { return fixed }))

	n, err := svc.Create(context.Background(), &model.CreateNotificationRequest{
		RecipientID:   "admin-1",
		RecipientKind: model.RecipientAdmin,
		Title:         "Aviso",
		Body:          "Cuerpo del aviso",
	})
	require.NoError(t, err)
	assert.Equal(t, fixed, n.SentAt)

	require.Len(t, broker.published, 1)
	assert.Equal(t, "notification_created", broker.published[0].Type)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(newFakeNotificationRepo(), &fakeSender{}, &fakeBroker{})

	tests := []struct {
		name string
		req  *model.CreateNotificationRequest
	}{
		{"missing recipient", &model.CreateNotificationRequest{RecipientKind: model.RecipientAdmin, Title: "t", Body: "b"}},
		{"missing kind", &model.CreateNotificationRequest{RecipientID: "r", Title: "t", Body: "b"}},
		{"bad kind", &model.CreateNotificationRequest{RecipientID: "r", RecipientKind: "alguien", Title: "t", Body: "b"}},
		{"missing title", &model.CreateNotificationRequest{RecipientID: "r", RecipientKind: model.RecipientAdmin, Body: "b"}},
		{"missing body", &model.CreateNotificationRequest{RecipientID: "r", RecipientKind: model.RecipientAdmin, Title: "t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestMarkRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeSender{}, &fakeBroker{})

	created, err := svc.Create(context.Background(), &model.CreateNotificationRequest{
		RecipientID:   "alum-1",
		RecipientKind: model.RecipientAlumnus,
		Title:         "Aviso",
		Body:          "Cuerpo",
	})
	require.NoError(t, err)

	n, err := svc.MarkRead(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.True(t, n.Read)
}

func TestMarkRead_UnknownIsNoOp(t *testing.T) {
	svc := newTestService(newFakeNotificationRepo(), &fakeSender{}, &fakeBroker{})

	n, err := svc.MarkRead(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestListForRecipient_Validation(t *testing.T) {
	svc := newTestService(newFakeNotificationRepo(), &fakeSender{}, &fakeBroker{})

	_, err := svc.ListForRecipient(context.Background(), "", model.RecipientAlumnus)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.ListForRecipient(context.Background(), "alum-1", "alguien")
	assert.True(t, apperrors.IsValidation(err))
}
