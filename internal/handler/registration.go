package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meetgrid/server/internal/auth"
	"github.com/meetgrid/server/internal/model"
	"github.com/meetgrid/server/internal/service"
)

// RegistrationHandler holds the registration-ledger endpoints.
type RegistrationHandler struct {
	svc   *service.RegistrationService
	guard *auth.Guard
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(svc *service.RegistrationService, guard *auth.Guard) *RegistrationHandler {
	return &RegistrationHandler{svc: svc, guard: guard}
}

// Register handles POST /events/{id}/register
// Books the caller onto the event, capacity permitting.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	reg, err := h.svc.Register(r.Context(), auth.FromContext(r.Context()), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

// Cancel handles POST /events/{id}/cancel
func (h *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := h.svc.Cancel(r.Context(), auth.FromContext(r.Context()), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "registration cancelled"})
}

// MarkAttended handles POST /events/{id}/attendees/{userID}
// Admin only: flips the user's active registration to attended.
func (h *RegistrationHandler) MarkAttended(w http.ResponseWriter, r *http.Request) {
	if _, err := h.guard.RequireAdmin(r); err != nil {
		writeDomainError(w, err)
		return
	}

	eventID, ok := idParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	userID, ok := idParam(chi.URLParam(r, "userID"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.svc.MarkAttended(r.Context(), eventID, userID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "attendance recorded"})
}

// Attendees handles GET /events/{id}/attendees
// Owner-or-admin: the full historical registration list.
func (h *RegistrationHandler) Attendees(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	attendees, err := h.svc.Attendees(r.Context(), auth.FromContext(r.Context()), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if attendees == nil {
		attendees = []model.Attendee{}
	}
	writeJSON(w, http.StatusOK, attendees)
}
