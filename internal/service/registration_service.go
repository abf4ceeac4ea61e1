package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/meetgrid/server/internal/auth"
	"github.com/meetgrid/server/internal/model"
	"github.com/meetgrid/server/internal/token"
)

// RegistrationService exposes the registration ledger to callers whose
// identity the guard has already resolved. The capacity-safe part of
// Register lives in the store; this layer adds the surrounding
// existence and ownership rules.
type RegistrationService struct {
	events        EventStore
	registrations RegistrationStore
	logger        zerolog.Logger
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(events EventStore, registrations RegistrationStore, logger zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		events:        events,
		registrations: registrations,
		logger:        logger.With().Str("component", "registrations").Logger(),
	}
}

// Register books the caller onto an event. The store call is the
// authoritative check; conflicts come back as ErrAlreadyRegistered or
// ErrEventFull and are never retried here.
func (s *RegistrationService) Register(ctx context.Context, claims *token.Claims, eventID int64) (*model.Registration, error) {
	reg, err := s.registrations.Register(ctx, eventID, claims.UserID)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Int64("event_id", eventID).
		Int64("user_id", claims.UserID).
		Str("registration_id", reg.ID).
		Msg("registered for event")
	return reg, nil
}

// Cancel withdraws the caller's active registration. Not idempotent:
// a second cancel fails with ErrNotRegistered.
func (s *RegistrationService) Cancel(ctx context.Context, claims *token.Claims, eventID int64) error {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return err
	}
	return s.registrations.Cancel(ctx, eventID, claims.UserID)
}

// MarkAttended flips a user's active registration to attended. The
// handler admits admins only; this layer checks the event exists.
func (s *RegistrationService) MarkAttended(ctx context.Context, eventID, userID int64) error {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return err
	}
	return s.registrations.MarkAttended(ctx, eventID, userID)
}

// IsRegistered reports whether the caller holds an active registration.
func (s *RegistrationService) IsRegistered(ctx context.Context, claims *token.Claims, eventID int64) (bool, error) {
	return s.registrations.IsRegistered(ctx, eventID, claims.UserID)
}

// Attendees lists an event's registrations for its owner or an admin.
func (s *RegistrationService) Attendees(ctx context.Context, claims *token.Claims, eventID int64) ([]model.Attendee, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(claims, event.CreatorID) {
		return nil, auth.ErrForbidden
	}
	return s.registrations.ListAttendees(ctx, eventID)
}
