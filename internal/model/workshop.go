package model

import (
	"time"

	"github.com/google/uuid"
)

// Workshop is an employability workshop offered to alumni.
type Workshop struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	WorkshopDate string    `db:"workshop_date" json:"date"`
	WorkshopTime string    `db:"workshop_time" json:"time"`
	Link         string    `db:"link" json:"link"`
	Flyer        string    `db:"flyer" json:"flyer,omitempty"`
	Accesses     int       `db:"accesses" json:"accesses"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type CreateWorkshopRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Date        string `json:"date" binding:"required,datefmt"`
	Time        string `json:"time" binding:"required,timefmt"`
	Link        string `json:"link" binding:"required,url"`
	Flyer       string `json:"flyer"`
}

type UpdateWorkshopRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Date        *string `json:"date" binding:"omitempty,datefmt"`
	Time        *string `json:"time" binding:"omitempty,timefmt"`
	Link        *string `json:"link" binding:"omitempty,url"`
	Flyer       *string `json:"flyer"`
}
