package meeting

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
)

type fakeMeetingRepo struct {
	mu       sync.Mutex
	meetings map[uuid.UUID]*model.Meeting
	history  map[uuid.UUID][]*model.MeetingStatusChange
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{
		meetings: make(map[uuid.UUID]*model.Meeting),
		history:  make(map[uuid.UUID][]*model.MeetingStatusChange),
	}
}

func (r *fakeMeetingRepo) CreateWithHistory(_ context.Context, m *model.Meeting, c *model.MeetingStatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.meetings[m.ID] = &cp
	r.history[m.ID] = append(r.history[m.ID], c)
	return nil
}

func (r *fakeMeetingRepo) Get(_ context.Context, id uuid.UUID) (*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return nil, apperrors.NotFound("meeting not found", nil)
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMeetingRepo) UpdateWithHistory(_ context.Context, m *model.Meeting, c *model.MeetingStatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meetings[m.ID]; !ok {
		return apperrors.NotFound("meeting not found", nil)
	}
	cp := *m
	r.meetings[m.ID] = &cp
	r.history[m.ID] = append(r.history[m.ID], c)
	return nil
}

func (r *fakeMeetingRepo) ListByAlumnus(_ context.Context, alumnusID string) ([]*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Meeting
	for _, m := range r.meetings {
		if m.AlumnusID == alumnusID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMeetingRepo) PendingExistsAt(_ context.Context, date, tm string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.meetings {
		if m.Status == model.MeetingStatusPending && m.MeetingDate == date && m.MeetingTime == tm {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMeetingRepo) ListActiveWithEmail(context.Context) ([]*model.MeetingReminder, error) {
	return nil, nil
}

func (r *fakeMeetingRepo) History(_ context.Context, meetingID uuid.UUID) ([]*model.MeetingStatusChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[meetingID], nil
}

type fakeAlumnusRepo struct {
	alumni map[string]*model.Alumnus
}

func (r *fakeAlumnusRepo) Create(context.Context, *model.Alumnus) error { return nil }

func (r *fakeAlumnusRepo) Get(_ context.Context, id string) (*model.Alumnus, error) {
	a, ok := r.alumni[id]
	if !ok {
		return nil, apperrors.NotFound("alumnus not found", nil)
	}
	return a, nil
}

func (r *fakeAlumnusRepo) GetByDNI(context.Context, string) (*model.Alumnus, error) {
	return nil, apperrors.NotFound("alumnus not found", nil)
}

func (r *fakeAlumnusRepo) GetByEmail(context.Context, string) (*model.Alumnus, error) {
	return nil, apperrors.NotFound("alumnus not found", nil)
}

func (r *fakeAlumnusRepo) Update(context.Context, *model.Alumnus) error { return nil }

func (r *fakeAlumnusRepo) List(context.Context, *model.AlumnusFilters) ([]*model.Alumnus, error) {
	return nil, nil
}

type notifyCall struct {
	alumnusID string
	email     string
	kind      model.MeetingEventKind
	date      string
	tm        string
}

// fakeNotifier records every call; events land asynchronously so the mutex
// matters.
type fakeNotifier struct {
	mu      sync.Mutex
	events  []notifyCall
	created []*model.CreateNotificationRequest
	err     error
}

func (f *fakeNotifier) Create(_ context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	return &model.Notification{ID: uuid.New()}, nil
}

func (f *fakeNotifier) NotifyMeetingEvent(_ context.Context, alumnusID, emailAddr string, kind model.MeetingEventKind, date, tm string, _ *uuid.UUID, _ string) (*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.events = append(f.events, notifyCall{alumnusID: alumnusID, email: emailAddr, kind: kind, date: date, tm: tm})
	return &model.Notification{ID: uuid.New()}, nil
}

func (f *fakeNotifier) MarkRead(context.Context, uuid.UUID) (*model.Notification, error) {
	return nil, nil
}

func (f *fakeNotifier) ListForRecipient(context.Context, string, model.RecipientKind) ([]*model.Notification, error) {
	return nil, nil
}

func (f *fakeNotifier) eventKinds() []model.MeetingEventKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	kinds := make([]model.MeetingEventKind, len(f.events))
	for i, e := range f.events {
		kinds[i] = e.kind
	}
	return kinds
}

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.FatalLevel, Output: io.Discard})
}

func newTestService(repo *fakeMeetingRepo, notifier *fakeNotifier) *Service {
	alumni := &fakeAlumnusRepo{alumni: map[string]*model.Alumnus{
		"alum-1": {ID: "alum-1", Email: "alum@example.com"},
	}}
	fixed := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	return NewService(repo, alumni, notifier, testLogger(), WithClock(func() time.Time { return fixed }))
}

func TestRequest_CreatesPendingWithHistory(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := newTestService(repo, &fakeNotifier{})

	m, err := svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1",
		Date:      "2026-09-15",
		Time:      "10:30",
		Notes:     "orientación laboral",
	})
	require.NoError(t, err)

	assert.Equal(t, model.MeetingStatusPending, m.Status)
	assert.Equal(t, "2026-09-15", m.MeetingDate)
	assert.Equal(t, "10:30", m.MeetingTime)
	assert.NotEqual(t, uuid.Nil, m.ID)

	history, err := svc.StatusHistory(context.Background(), m.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.MeetingStatusPending, history[0].Status)
	assert.Equal(t, "2026-09-01", history[0].ChangedOn)
	assert.Equal(t, "orientación laboral", history[0].Notes)
}

func TestRequest_PendingSlotConflicts(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1", Date: "2026-09-15", Time: "10:30",
	})
	require.NoError(t, err)

	_, err = svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-2", Date: "2026-09-15", Time: "10:30",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "la fecha y hora ya están reservadas")
}

func TestRequest_ConfirmedSlotDoesNotConflict(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := newTestService(repo, &fakeNotifier{})

	m, err := svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1", Date: "2026-09-15", Time: "10:30",
	})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(context.Background(), m.ID, &model.ChangeMeetingStatusRequest{
		Status: model.MeetingStatusConfirmed,
	})
	require.NoError(t, err)

	_, err = svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-2", Date: "2026-09-15", Time: "10:30",
	})
	assert.NoError(t, err)
}

func TestRequest_InvalidDateTime(t *testing.T) {
	svc := newTestService(newFakeMeetingRepo(), &fakeNotifier{})

	_, err := svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1", Date: "15/09/2026", Time: "10:30",
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1", Date: "2026-09-15", Time: "10:30pm",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestReschedule_RevivesCancelled(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := newTestService(repo, &fakeNotifier{})

	m, err := svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1", Date: "2026-09-15", Time: "10:30",
	})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(context.Background(), m.ID, &model.ChangeMeetingStatusRequest{
		Status: model.MeetingStatusCancelled,
	})
	require.NoError(t, err)

	updated, err := svc.Reschedule(context.Background(), m.ID, &model.RescheduleMeetingRequest{
		Date: "2026-09-20", Time: "16:00",
	})
	require.NoError(t, err)

	assert.Equal(t, model.MeetingStatusPending, updated.Status)
	assert.Equal(t, "2026-09-20", updated.MeetingDate)
	assert.Equal(t, "16:00", updated.MeetingTime)
}

func TestReschedule_NotFound(t *testing.T) {
	svc := newTestService(newFakeMeetingRepo(), &fakeNotifier{})

	_, err := svc.Reschedule(context.Background(), uuid.New(), &model.RescheduleMeetingRequest{
		Date: "2026-09-20", Time: "16:00",
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestReschedule_SendsModifiedNotification(t *testing.T) {
	repo := newFakeMeetingRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	m, err := svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1", Date: "2026-09-15", Time: "10:30",
	})
	require.NoError(t, err)

	_, err = svc.Reschedule(context.Background(), m.ID, &model.RescheduleMeetingRequest{
		Date: "2026-09-20", Time: "16:00",
	})
	require.NoError(t, err)

	assert.Contains(t, notifier.eventKinds(), model.MeetingEventModified)
}

func TestChangeStatus_InvalidState(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := newTestService(repo, &fakeNotifier{})

	m, err := svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1", Date: "2026-09-15", Time: "10:30",
	})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(context.Background(), m.ID, &model.ChangeMeetingStatusRequest{
		Status: "aplazada",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestChangeStatus_NotFound(t *testing.T) {
	svc := newTestService(newFakeMeetingRepo(), &fakeNotifier{})

	_, err := svc.ChangeStatus(context.Background(), uuid.New(), &model.ChangeMeetingStatusRequest{
		Status: model.MeetingStatusConfirmed,
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestChangeStatus_AppendsHistoryPerChange(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := newTestService(repo, &fakeNotifier{})

	m, err := svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1", Date: "2026-09-15", Time: "10:30",
	})
	require.NoError(t, err)

	transitions := []model.MeetingStatus{
		model.MeetingStatusConfirmed,
		model.MeetingStatusConfirmed, // same state again still logs
		model.MeetingStatusCompleted,
	}
	for _, st := range transitions {
		_, err = svc.ChangeStatus(context.Background(), m.ID, &model.ChangeMeetingStatusRequest{Status: st})
		require.NoError(t, err)
	}

	history, err := svc.StatusHistory(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Len(t, history, 4)
	assert.Equal(t, model.MeetingStatusCompleted, history[3].Status)
}

func TestChangeStatus_SameDayHistoryCarriesIncreasingCreatedAt(t *testing.T) {
	repo := newFakeMeetingRepo()
	alumni := &fakeAlumnusRepo{alumni: map[string]*model.Alumnus{
		"alum-1": {ID: "alum-1", Email: "alum@example.com"},
	}}
	current := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(repo, alumni, &fakeNotifier{}, testLogger(), WithClock(func() time.Time {
		current = current.Add(time.Second)
		return current
	}))

	m, err := svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1", Date: "2026-09-15", Time: "10:30",
	})
	require.NoError(t, err)

	for _, st := range []model.MeetingStatus{model.MeetingStatusConfirmed, model.MeetingStatusCancelled} {
		_, err = svc.ChangeStatus(context.Background(), m.ID, &model.ChangeMeetingStatusRequest{Status: st})
		require.NoError(t, err)
	}

	history, err := svc.StatusHistory(context.Background(), m.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, change := range history {
		assert.Equal(t, "2026-09-01", change.ChangedOn)
		if i > 0 {
			assert.True(t, change.CreatedAt.After(history[i-1].CreatedAt))
		}
	}
}

func TestChangeStatus_CancelledUsesTemplate(t *testing.T) {
	repo := newFakeMeetingRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	m, err := svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1", Date: "2026-09-15", Time: "10:30",
	})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(context.Background(), m.ID, &model.ChangeMeetingStatusRequest{
		Status: model.MeetingStatusCancelled,
	})
	require.NoError(t, err)

	assert.Contains(t, notifier.eventKinds(), model.MeetingEventCancelled)
}

func TestChangeStatus_ConfirmedUsesGenericNotification(t *testing.T) {
	repo := newFakeMeetingRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	m, err := svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1", Date: "2026-09-15", Time: "10:30",
	})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(context.Background(), m.ID, &model.ChangeMeetingStatusRequest{
		Status: model.MeetingStatusConfirmed,
	})
	require.NoError(t, err)

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	require.Len(t, notifier.created, 1)
	assert.Equal(t, "Actualización de reunión", notifier.created[0].Title)
	assert.Equal(t, "El estado de su reunión del 2026-09-15 a las 10:30 ha cambiado a confirmada.", notifier.created[0].Body)
}

func TestChangeStatus_NotificationFailureDoesNotRollBack(t *testing.T) {
	repo := newFakeMeetingRepo()
	notifier := &fakeNotifier{err: errors.New("notification store down")}
	svc := newTestService(repo, notifier)

	m, err := svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1", Date: "2026-09-15", Time: "10:30",
	})
	require.NoError(t, err)

	updated, err := svc.ChangeStatus(context.Background(), m.ID, &model.ChangeMeetingStatusRequest{
		Status: model.MeetingStatusCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, model.MeetingStatusCancelled, updated.Status)

	got, err := repo.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MeetingStatusCancelled, got.Status)
}

func TestHistory_ReturnsAllStates(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := newTestService(repo, &fakeNotifier{})

	first, err := svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1", Date: "2026-09-15", Time: "10:30",
	})
	require.NoError(t, err)

	_, err = svc.Request(context.Background(), &model.RequestMeetingRequest{
		AlumnusID: "alum-1", Date: "2026-09-16", Time: "11:00",
	})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(context.Background(), first.ID, &model.ChangeMeetingStatusRequest{
		Status: model.MeetingStatusCancelled,
	})
	require.NoError(t, err)

	meetings, err := svc.History(context.Background(), "alum-1")
	require.NoError(t, err)
	assert.Len(t, meetings, 2)
}
