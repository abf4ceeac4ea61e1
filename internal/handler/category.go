package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meetgrid/server/internal/auth"
	"github.com/meetgrid/server/internal/model"
	"github.com/meetgrid/server/internal/service"
)

// CategoryHandler holds the category endpoints. Reads are public;
// mutations require the admin role.
type CategoryHandler struct {
	svc   *service.CategoryService
	guard *auth.Guard
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(svc *service.CategoryService, guard *auth.Guard) *CategoryHandler {
	return &CategoryHandler{svc: svc, guard: guard}
}

// List handles GET /categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// Get handles GET /categories/{id}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// Create handles POST /categories (admin).
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := h.guard.RequireAdmin(r); err != nil {
		writeDomainError(w, err)
		return
	}

	var req model.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	category, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// Update handles PUT /categories/{id} (admin).
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, err := h.guard.RequireAdmin(r); err != nil {
		writeDomainError(w, err)
		return
	}

	id, ok := idParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req model.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	category, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /categories/{id} (admin).
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.guard.RequireAdmin(r); err != nil {
		writeDomainError(w, err)
		return
	}

	id, ok := idParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
