// Package service implements business logic, validation, and
// orchestration between HTTP handlers and the repository layer.
// Services depend on small store interfaces so tests can substitute
// in-memory doubles for the pgx repositories.
package service

import (
	"context"
	"errors"

	"github.com/meetgrid/server/internal/model"
)

// ErrValidation marks malformed or rejected input.
var ErrValidation = errors.New("validation failed")

// ErrInvalidCredentials is returned on login with an unknown email or
// a wrong password. Deliberately indistinguishable from each other.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserStore persists accounts. Implemented by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// EventStore persists events. Implemented by repository.EventRepository.
type EventStore interface {
	Create(ctx context.Context, e *model.Event, categoryIDs []int64) error
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	ListUpcoming(ctx context.Context, limit, offset int) ([]model.Event, error)
	ListByCategory(ctx context.Context, categoryID int64, limit, offset int) ([]model.Event, error)
	ListByCreator(ctx context.Context, creatorID int64, limit, offset int) ([]model.Event, error)
	ListRegisteredBy(ctx context.Context, userID int64, limit, offset int) ([]model.Event, error)
	Search(ctx context.Context, query string, limit, offset int) ([]model.Event, error)
	Update(ctx context.Context, e *model.Event, categoryIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

// RegistrationStore performs the guarded registration transitions.
// Implemented by repository.RegistrationRepository, whose Register is
// atomic against the capacity limit.
type RegistrationStore interface {
	Register(ctx context.Context, eventID, userID int64) (*model.Registration, error)
	Cancel(ctx context.Context, eventID, userID int64) error
	MarkAttended(ctx context.Context, eventID, userID int64) error
	IsRegistered(ctx context.Context, eventID, userID int64) (bool, error)
	ListAttendees(ctx context.Context, eventID int64) ([]model.Attendee, error)
}

// CategoryStore persists categories. Implemented by
// repository.CategoryRepository.
type CategoryStore interface {
	Create(ctx context.Context, c *model.Category) error
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id int64) error
}

// clampPage bounds limit/offset to sane values (defaults 10/0).
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
