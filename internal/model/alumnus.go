package model

import "time"

// Alumnus is a graduate tracked by the career office.
type Alumnus struct {
	ID             string     `db:"id" json:"id"`
	DNI            string     `db:"dni" json:"dni"`
	FirstNames     string     `db:"first_names" json:"first_names"`
	LastNames      string     `db:"last_names" json:"last_names"`
	Email          string     `db:"email" json:"email"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	Career         string     `db:"career" json:"career"`
	AcademicDegree string     `db:"academic_degree" json:"academic_degree,omitempty"`
	GraduationYear int        `db:"graduation_year" json:"graduation_year"`
	CV             string     `db:"cv" json:"cv,omitempty"`
	City           string     `db:"city" json:"city,omitempty"`
	Gender         string     `db:"gender" json:"gender,omitempty"`
	BirthDate      *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	AltEmail       string     `db:"alt_email" json:"alt_email,omitempty"`
	Phone          string     `db:"phone" json:"phone,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

type RegisterAlumnusRequest struct {
	ID             string `json:"id" binding:"required,max=20"`
	DNI            string `json:"dni" binding:"required,max=20"`
	FirstNames     string `json:"first_names" binding:"required"`
	LastNames      string `json:"last_names" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Career         string `json:"career" binding:"required"`
	AcademicDegree string `json:"academic_degree"`
	GraduationYear int    `json:"graduation_year" binding:"required"`
	City           string `json:"city"`
	Gender         string `json:"gender"`
	BirthDate      string `json:"birth_date" binding:"omitempty,datefmt"`
}

type UpdateAlumnusRequest struct {
	FirstNames     *string `json:"first_names"`
	LastNames      *string `json:"last_names"`
	Career         *string `json:"career"`
	AcademicDegree *string `json:"academic_degree"`
	GraduationYear *int    `json:"graduation_year"`
	CV             *string `json:"cv"`
	City           *string `json:"city"`
	Gender         *string `json:"gender"`
}

type UpdateContactRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	AltEmail *string `json:"alt_email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	City     *string `json:"city"`
}

// AlumnusFilters narrows alumni listings.
type AlumnusFilters struct {
	Career         string
	GraduationYear int
	City           string
}
