package model

import "time"

// SignupRequest is the payload for POST /auth/register.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// CreateEventRequest is the payload for POST /events.
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Capacity    *int      `json:"capacity" validate:"omitempty,gt=0"`
	IsPublic    *bool     `json:"is_public"`
	Categories  []int64   `json:"categories"`
}

// UpdateEventRequest is the payload for PUT /events/{id}. Nil fields
// are left untouched.
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Capacity    *int       `json:"capacity" validate:"omitempty,gt=0"`
	IsPublic    *bool      `json:"is_public"`
	Categories  []int64    `json:"categories"`
}

// CategoryRequest is the payload for category create and update.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}
