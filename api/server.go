/*
server.go - HTTP router and middleware configuration

ROUTER: chi
  Lightweight, context-based, RESTful route patterns.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for a local frontend

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/server/main.go: server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Query surface
		r.Get("/profile", h.GetProfile)
		r.Get("/earnings/today", h.GetTodayEarnings)
		r.Get("/progress/month", h.GetMonthInfo)
		r.Get("/progress/detailed", h.GetDetailedProgress)
		r.Get("/worktime", h.GetWorkingTime)
		r.Get("/payday", h.GetPayday)
		r.Get("/message", h.GetMessage)
		r.Get("/achievements", h.ListAchievements)
		r.Get("/challenge/today", h.GetTodayChallenge)

		// Command surface
		r.Post("/earnings", h.UpdateEarnings)
		r.Post("/profile", h.SetupProfile)
		r.Put("/working-hours", h.UpdateWorkingHours)
		r.Put("/payday-settings", h.UpdatePaydaySettings)

		// Admin
		r.Route("/admin", func(r chi.Router) {
			r.Post("/rollover", h.TriggerRollover)
		})
	})

	return r
}
