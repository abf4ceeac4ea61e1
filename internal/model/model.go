// Package model defines the core domain types for the event platform.
package model

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// RegistrationStatus is the closed set of registration states.
// A registration starts as Registered and moves at most once, to
// Cancelled or Attended; both are terminal.
type RegistrationStatus string

const (
	StatusRegistered RegistrationStatus = "registered"
	StatusCancelled  RegistrationStatus = "cancelled"
	StatusAttended   RegistrationStatus = "attended"
)

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Event represents a bookable event created by an organizer.
// A nil Capacity means the event is unbounded.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Capacity    *int      `json:"capacity"`
	IsPublic    bool      `json:"is_public"`
	CreatorID   int64     `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`

	// RegistrationCount is the number of active registrations,
	// populated on single-event reads only.
	RegistrationCount int `json:"registration_count,omitempty"`
}

// Category groups events.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Registration represents one user's registration for one event.
// Rows are never deleted: cancellation and attendance keep the row
// with a terminal status, and re-registering creates a new row.
type Registration struct {
	ID               string             `json:"id"`
	EventID          int64              `json:"event_id"`
	UserID           int64              `json:"user_id"`
	Status           RegistrationStatus `json:"status"`
	RegistrationDate time.Time          `json:"registration_date"`
}

// Attendee is a registration joined with its user, as shown to event
// organizers.
type Attendee struct {
	UserID           int64              `json:"user_id"`
	FirstName        string             `json:"firstName"`
	LastName         string             `json:"lastName"`
	Email            string             `json:"email"`
	Status           RegistrationStatus `json:"status"`
	RegistrationDate time.Time          `json:"registration_date"`
}

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
