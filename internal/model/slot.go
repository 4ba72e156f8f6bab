package model

import "github.com/google/uuid"

type SlotStatus string

const (
	SlotAvailable   SlotStatus = "disponible"
	SlotUnavailable SlotStatus = "no_disponible"
)

// AvailableSlot advertises a bookable window. Booking a meeting does not
// consult slots; they are informational only.
type AvailableSlot struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	SlotDate    string     `db:"slot_date" json:"date"`
	SlotTime    string     `db:"slot_time" json:"time"`
	Description string     `db:"description" json:"description,omitempty"`
	Status      SlotStatus `db:"status" json:"status"`
}

type CreateSlotRequest struct {
	Date        string `json:"date" binding:"required,datefmt"`
	Time        string `json:"time" binding:"required,timefmt"`
	Description string `json:"description"`
}

type UpdateSlotRequest struct {
	Date        *string     `json:"date" binding:"omitempty,datefmt"`
	Time        *string     `json:"time" binding:"omitempty,timefmt"`
	Description *string     `json:"description"`
	Status      *SlotStatus `json:"status" binding:"omitempty,oneof=disponible no_disponible"`
}
