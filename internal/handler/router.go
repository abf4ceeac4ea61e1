package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/meetgrid/server/internal/auth"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Events        *EventHandler
	Registrations *RegistrationHandler
	Categories    *CategoryHandler
	Guard         *auth.Guard
	Metrics       *Metrics
	Logger        zerolog.Logger
}

// NewRouter builds the full route table.
func NewRouter(h Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(AccessLog(h.Logger))
	r.Use(h.Metrics.Middleware)
	r.Use(CORS)

	r.Get("/health", HealthCheck)
	r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Signup)
		r.Post("/login", h.Auth.Login)
		r.With(h.Guard.RequireAuth).Get("/me", h.Auth.Me)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.Events.List)
		r.Get("/search", h.Events.Search)
		r.Get("/{id}", h.Events.Get)
		r.With(h.Guard.RequireAuth).Post("/", h.Events.Create)
		r.With(h.Guard.RequireAuth).Put("/{id}", h.Events.Update)
		r.With(h.Guard.RequireAuth).Delete("/{id}", h.Events.Delete)
		r.With(h.Guard.RequireAuth).Post("/{id}/register", h.Registrations.Register)
		r.With(h.Guard.RequireAuth).Post("/{id}/cancel", h.Registrations.Cancel)
		r.With(h.Guard.RequireAuth).Get("/{id}/attendees", h.Registrations.Attendees)
		r.With(h.Guard.RequireAuth).Post("/{id}/attendees/{userID}", h.Registrations.MarkAttended)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.Categories.List)
		r.Get("/{id}", h.Categories.Get)
		r.Get("/{id}/events", h.Events.ListByCategory)
		r.Post("/", h.Categories.Create)
		r.Put("/{id}", h.Categories.Update)
		r.Delete("/{id}", h.Categories.Delete)
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(h.Guard.RequireAuth)
		r.Get("/events", h.Events.ListMine)
		r.Get("/created-events", h.Events.ListCreated)
	})

	return r
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
