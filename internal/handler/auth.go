package handler

import (
	"net/http"

	"github.com/meetgrid/server/internal/auth"
	"github.com/meetgrid/server/internal/model"
	"github.com/meetgrid/server/internal/service"
)

// AuthHandler holds the account endpoints.
type AuthHandler struct {
	svc   *service.AuthService
	guard *auth.Guard
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc *service.AuthService, guard *auth.Guard) *AuthHandler {
	return &AuthHandler{svc: svc, guard: guard}
}

// Signup handles POST /auth/register
// Creates an account and returns its first credential.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := h.svc.Signup(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Login handles POST /auth/login
// Verifies a password and returns a fresh credential.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Me handles GET /auth/me
// Returns the account behind the presented credential.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())

	user, err := h.svc.CurrentUser(r.Context(), claims)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
