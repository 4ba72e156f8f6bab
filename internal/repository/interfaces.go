package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alumnitrack/alumni-api/internal/model"
)

// All repository interfaces in one file
type (
	// MeetingRepository owns meetings and their status history.
	MeetingRepository interface {
		// CreateWithHistory inserts the meeting and its initial history row in
		// one transaction.
		CreateWithHistory(ctx context.Context, meeting *model.Meeting, change *model.MeetingStatusChange) error
		Get(ctx context.Context, id uuid.UUID) (*model.Meeting, error)
		// UpdateWithHistory applies the mutation and appends the history row in
		// one transaction so readers never observe one without the other.
		UpdateWithHistory(ctx context.Context, meeting *model.Meeting, change *model.MeetingStatusChange) error
		ListByAlumnus(ctx context.Context, alumnusID string) ([]*model.Meeting, error)
		// PendingExistsAt reports whether a pendiente meeting occupies the
		// exact (date, time) pair.
		PendingExistsAt(ctx context.Context, date, tm string) (bool, error)
		// ListActiveWithEmail returns pendiente and confirmada meetings joined
		// with the alumnus contact email, for the scheduler jobs.
		ListActiveWithEmail(ctx context.Context) ([]*model.MeetingReminder, error)
		History(ctx context.Context, meetingID uuid.UUID) ([]*model.MeetingStatusChange, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, n *model.Notification) error
		Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
		ListByRecipient(ctx context.Context, recipientID string, kind model.RecipientKind) ([]*model.Notification, error)
		// MarkRead flips the read flag; returns (nil, nil) for unknown ids.
		MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	}

	AlumnusRepository interface {
		Create(ctx context.Context, a *model.Alumnus) error
		Get(ctx context.Context, id string) (*model.Alumnus, error)
		GetByDNI(ctx context.Context, dni string) (*model.Alumnus, error)
		GetByEmail(ctx context.Context, email string) (*model.Alumnus, error)
		Update(ctx context.Context, a *model.Alumnus) error
		List(ctx context.Context, filters *model.AlumnusFilters) ([]*model.Alumnus, error)
	}

	SlotRepository interface {
		Create(ctx context.Context, s *model.AvailableSlot) error
		Get(ctx context.Context, id uuid.UUID) (*model.AvailableSlot, error)
		Update(ctx context.Context, s *model.AvailableSlot) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListAvailable(ctx context.Context) ([]*model.AvailableSlot, error)
	}

	WorkshopRepository interface {
		Create(ctx context.Context, w *model.Workshop) error
		Get(ctx context.Context, id uuid.UUID) (*model.Workshop, error)
		Update(ctx context.Context, w *model.Workshop) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Workshop, error)
		IncrementAccesses(ctx context.Context, id uuid.UUID) error
	}

	UserRepository interface {
		Create(ctx context.Context, u *model.User) error
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	}

	AuditRepository interface {
		Create(ctx context.Context, log *model.AuditLog) error
		List(ctx context.Context, filters map[string]interface{}) ([]*model.AuditLog, error)
		Cleanup(ctx context.Context, before time.Time) (int64, error)
	}

	ReportRepository interface {
		AlumniByCareer(ctx context.Context) (map[string]int, error)
		AlumniByYear(ctx context.Context) (map[int]int, error)
		MeetingsByStatus(ctx context.Context) (map[string]int, error)
	}
)
