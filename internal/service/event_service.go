package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/meetgrid/server/internal/auth"
	"github.com/meetgrid/server/internal/model"
	"github.com/meetgrid/server/internal/token"
)

// EventService orchestrates event CRUD and listings. Ownership rules
// are enforced here using the caller's verified claims: private events
// and mutations are owner-or-admin only.
type EventService struct {
	events   EventStore
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewEventService constructs an EventService.
func NewEventService(events EventStore, logger zerolog.Logger) *EventService {
	return &EventService{
		events:   events,
		validate: validator.New(),
		logger:   logger.With().Str("component", "events").Logger(),
	}
}

// Create validates the request and stores a new event owned by the
// caller. Events default to public; a nil capacity means unbounded.
func (s *EventService) Create(ctx context.Context, claims *token.Claims, req model.CreateEventRequest) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validationMessage(err))
	}
	if req.StartDate.After(req.EndDate) {
		return nil, fmt.Errorf("%w: start date must be before end date", ErrValidation)
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Capacity:    req.Capacity,
		IsPublic:    isPublic,
		CreatorID:   claims.UserID,
	}
	if err := s.events.Create(ctx, event, req.Categories); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("event_id", event.ID).Int64("creator_id", claims.UserID).Msg("event created")
	return event, nil
}

// Get returns a single event. Private events are visible to their
// creator and admins only; claims may be nil for anonymous callers.
func (s *EventService) Get(ctx context.Context, claims *token.Claims, id int64) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.IsPublic && !auth.CanModify(claims, event.CreatorID) {
		return nil, auth.ErrForbidden
	}
	return event, nil
}

// Update applies the non-nil fields of req to an event the caller may
// modify. A non-nil Categories slice replaces all category links.
func (s *EventService) Update(ctx context.Context, claims *token.Claims, id int64, req model.UpdateEventRequest) (*model.Event, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validationMessage(err))
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(claims, event.CreatorID) {
		return nil, auth.ErrForbidden
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if req.Capacity != nil {
		event.Capacity = req.Capacity
	}
	if req.IsPublic != nil {
		event.IsPublic = *req.IsPublic
	}

	if event.Title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	if event.StartDate.After(event.EndDate) {
		return nil, fmt.Errorf("%w: start date must be before end date", ErrValidation)
	}

	if err := s.events.Update(ctx, event, req.Categories); err != nil {
		return nil, err
	}
	return s.events.GetByID(ctx, id)
}

// Delete removes an event the caller may modify.
func (s *EventService) Delete(ctx context.Context, claims *token.Claims, id int64) error {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanModify(claims, event.CreatorID) {
		return auth.ErrForbidden
	}
	return s.events.Delete(ctx, id)
}

// ListUpcoming returns upcoming public events.
func (s *EventService) ListUpcoming(ctx context.Context, limit, offset int) ([]model.Event, error) {
	limit, offset = clampPage(limit, offset)
	return s.events.ListUpcoming(ctx, limit, offset)
}

// ListByCategory returns public events in a category.
func (s *EventService) ListByCategory(ctx context.Context, categoryID int64, limit, offset int) ([]model.Event, error) {
	limit, offset = clampPage(limit, offset)
	return s.events.ListByCategory(ctx, categoryID, limit, offset)
}

// ListCreatedBy returns the caller's own events, private ones included.
func (s *EventService) ListCreatedBy(ctx context.Context, claims *token.Claims, limit, offset int) ([]model.Event, error) {
	limit, offset = clampPage(limit, offset)
	return s.events.ListByCreator(ctx, claims.UserID, limit, offset)
}

// ListRegisteredFor returns events the caller is actively registered
// for.
func (s *EventService) ListRegisteredFor(ctx context.Context, claims *token.Claims, limit, offset int) ([]model.Event, error) {
	limit, offset = clampPage(limit, offset)
	return s.events.ListRegisteredBy(ctx, claims.UserID, limit, offset)
}

// Search matches public events against a free-text query.
func (s *EventService) Search(ctx context.Context, query string, limit, offset int) ([]model.Event, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrValidation)
	}
	limit, offset = clampPage(limit, offset)
	return s.events.Search(ctx, query, limit, offset)
}
