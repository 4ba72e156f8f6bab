package model

import (
	"time"

	"github.com/google/uuid"
)

type MeetingStatus string

// Meeting states kept in Spanish, matching the values stored by the
// career-office frontend.
const (
	MeetingStatusPending   MeetingStatus = "pendiente"
	MeetingStatusConfirmed MeetingStatus = "confirmada"
	MeetingStatusCancelled MeetingStatus = "cancelada"
	MeetingStatusCompleted MeetingStatus = "realizada"
)

// ValidMeetingStatus reports whether s is one of the four meeting states.
func ValidMeetingStatus(s MeetingStatus) bool {
	switch s {
	case MeetingStatusPending, MeetingStatusConfirmed, MeetingStatusCancelled, MeetingStatusCompleted:
		return true
	}
	return false
}

const (
	MeetingDateLayout = "2006-01-02"
	MeetingTimeLayout = "15:04"
)

// Meeting is an appointment between an alumnus and career-office staff.
// Date and wall-clock time are stored separately, without a timezone; the
// server timezone applies. Meetings are never deleted.
type Meeting struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	AlumnusID   string        `db:"alumnus_id" json:"alumnus_id"`
	MeetingDate string        `db:"meeting_date" json:"date"`
	MeetingTime string        `db:"meeting_time" json:"time"`
	Status      MeetingStatus `db:"status" json:"status"`
	Notes       string        `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// StartsAt combines the date and time columns in loc.
func (m *Meeting) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(MeetingDateLayout+" "+MeetingTimeLayout, m.MeetingDate+" "+m.MeetingTime, loc)
}

// MeetingStatusChange is one row of the append-only state history.
// ChangedOn carries only the calendar date; CreatedAt breaks same-day ties
// so reads preserve append order.
type MeetingStatusChange struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	MeetingID uuid.UUID     `db:"meeting_id" json:"meeting_id"`
	Status    MeetingStatus `db:"status" json:"status"`
	ChangedOn string        `db:"changed_on" json:"changed_on"`
	Notes     string        `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

type RequestMeetingRequest struct {
	AlumnusID string `json:"alumnus_id" binding:"required"`
	Date      string `json:"date" binding:"required,datefmt"`
	Time      string `json:"time" binding:"required,timefmt"`
	Notes     string `json:"notes" binding:"max=1000"`
}

type RescheduleMeetingRequest struct {
	Date string `json:"date" binding:"required,datefmt"`
	Time string `json:"time" binding:"required,timefmt"`
}

type ChangeMeetingStatusRequest struct {
	Status MeetingStatus `json:"status" binding:"required"`
	Notes  string        `json:"notes" binding:"max=1000"`
}

// MeetingReminder is the scheduler's read model: a meeting joined with the
// contact email of its alumnus (empty when the alumnus has none).
type MeetingReminder struct {
	Meeting
	AlumnusEmail string `db:"alumnus_email" json:"alumnus_email"`
}
