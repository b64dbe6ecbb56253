// internal/quest/routes.go

package quest

import (
	"github.com/go-chi/chi/v5"

	"github.com/imadgeboyega/datemate-backend/internal/auth"
)

// RegisterRoutes registers all quest routes
func RegisterRoutes(r chi.Router, handler *Handler, authMiddleware *auth.Middleware) {
	r.Route("/api/v1/quests", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/active", handler.GetActive)
		r.Post("/", handler.Start)
		r.Put("/toggle", handler.Toggle)
		r.Post("/missions/{id}/complete", handler.CompleteMission)
		r.Get("/stats", handler.GetStats)
	})
}
