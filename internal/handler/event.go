package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meetgrid/server/internal/auth"
	"github.com/meetgrid/server/internal/model"
	"github.com/meetgrid/server/internal/service"
)

// EventHandler holds the event CRUD and listing endpoints.
type EventHandler struct {
	svc   *service.EventService
	guard *auth.Guard
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService, guard *auth.Guard) *EventHandler {
	return &EventHandler{svc: svc, guard: guard}
}

// Create handles POST /events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.Create(r.Context(), auth.FromContext(r.Context()), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// List handles GET /events
// Returns upcoming public events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	events, err := h.svc.ListUpcoming(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// Get handles GET /events/{id}
// Private events are restricted to their owner or an admin, so a
// credential is accepted here but not required.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	claims, _ := h.guard.Authenticate(r) // nil for anonymous callers

	event, err := h.svc.Get(r.Context(), claims, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Update handles PUT /events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req model.UpdateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.Update(r.Context(), auth.FromContext(r.Context()), id, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := h.svc.Delete(r.Context(), auth.FromContext(r.Context()), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

// Search handles GET /events/search?q=
func (h *EventHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	events, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// ListByCategory handles GET /categories/{id}/events
func (h *EventHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	limit, offset := pageParams(r)
	events, err := h.svc.ListByCategory(r.Context(), id, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// ListMine handles GET /user/events
// Events the caller is actively registered for.
func (h *EventHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	events, err := h.svc.ListRegisteredFor(r.Context(), auth.FromContext(r.Context()), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// ListCreated handles GET /user/created-events
func (h *EventHandler) ListCreated(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	events, err := h.svc.ListCreatedBy(r.Context(), auth.FromContext(r.Context()), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
