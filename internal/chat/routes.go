// internal/chat/routes.go

package chat

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/datemate-backend/internal/auth"
	"github.com/imadgeboyega/datemate-backend/internal/common/ratelimit"
)

// RegisterRoutes mounts the chat endpoints. Sending is rate limited per user.
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware, limiter *ratelimit.Limiter) {
	api := router.PathPrefix("/api/v1/chat").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.GetSession).Methods("GET")
	api.Handle("", limiter.Limit(auth.RateLimitKey)(http.HandlerFunc(handler.Send))).Methods("POST")
	api.HandleFunc("/tmi", handler.ToggleTMI).Methods("PUT")
}
