package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetgrid/server/internal/auth"
	"github.com/meetgrid/server/internal/model"
	"github.com/meetgrid/server/internal/repository"
)

func newEventService() (*EventService, *fakeEventStore) {
	events := newFakeEventStore()
	return NewEventService(events, zerolog.Nop()), events
}

func createEventRequest() model.CreateEventRequest {
	return model.CreateEventRequest{
		Title:     "GopherCon Meetup",
		StartDate: time.Now().Add(24 * time.Hour),
		EndDate:   time.Now().Add(26 * time.Hour),
		Capacity:  intPtr(100),
	}
}

func TestCreateEvent(t *testing.T) {
	svc, _ := newEventService()

	event, err := svc.Create(context.Background(), claimsFor(7, model.RoleUser), createEventRequest())
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.Equal(t, int64(7), event.CreatorID)
	assert.True(t, event.IsPublic, "events default to public")
	require.NotNil(t, event.Capacity)
	assert.Equal(t, 100, *event.Capacity)
}

func TestCreateEventValidation(t *testing.T) {
	svc, _ := newEventService()
	caller := claimsFor(7, model.RoleUser)

	tests := []struct {
		name   string
		mutate func(*model.CreateEventRequest)
	}{
		{"missing title", func(r *model.CreateEventRequest) { r.Title = "  " }},
		{"zero capacity", func(r *model.CreateEventRequest) { r.Capacity = intPtr(0) }},
		{"start after end", func(r *model.CreateEventRequest) {
			r.StartDate = r.EndDate.Add(time.Hour)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createEventRequest()
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), caller, req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestGetPrivateEvent(t *testing.T) {
	svc, events := newEventService()

	private := events.add(model.Event{
		Title:     "Board Meeting",
		StartDate: time.Now().Add(time.Hour),
		EndDate:   time.Now().Add(2 * time.Hour),
		IsPublic:  false,
		CreatorID: 7,
	})

	// Owner and admin see it; strangers and anonymous callers do not.
	_, err := svc.Get(context.Background(), claimsFor(7, model.RoleUser), private.ID)
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), claimsFor(1, model.RoleAdmin), private.ID)
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), claimsFor(8, model.RoleUser), private.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)
	_, err = svc.Get(context.Background(), nil, private.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = svc.Get(context.Background(), nil, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateEvent(t *testing.T) {
	svc, _ := newEventService()
	owner := claimsFor(7, model.RoleUser)

	event, err := svc.Create(context.Background(), owner, createEventRequest())
	require.NoError(t, err)

	title := "Renamed Meetup"
	updated, err := svc.Update(context.Background(), owner, event.ID, model.UpdateEventRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Meetup", updated.Title)
	assert.Equal(t, event.StartDate.Unix(), updated.StartDate.Unix(), "untouched fields survive")

	// Only owner-or-admin may update.
	_, err = svc.Update(context.Background(), claimsFor(8, model.RoleUser), event.ID, model.UpdateEventRequest{Title: &title})
	assert.ErrorIs(t, err, auth.ErrForbidden)
	_, err = svc.Update(context.Background(), claimsFor(1, model.RoleAdmin), event.ID, model.UpdateEventRequest{Title: &title})
	assert.NoError(t, err)

	// Date ordering is validated against the merged result.
	badStart := event.EndDate.Add(time.Hour)
	_, err = svc.Update(context.Background(), owner, event.ID, model.UpdateEventRequest{StartDate: &badStart})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteEvent(t *testing.T) {
	svc, _ := newEventService()
	owner := claimsFor(7, model.RoleUser)

	event, err := svc.Create(context.Background(), owner, createEventRequest())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), claimsFor(8, model.RoleUser), event.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), owner, event.ID))

	err = svc.Delete(context.Background(), owner, event.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSearchRequiresQuery(t *testing.T) {
	svc, _ := newEventService()

	_, err := svc.Search(context.Background(), "   ", 10, 0)
	assert.ErrorIs(t, err, ErrValidation)
}
