package course

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/datemate-backend/internal/auth"
	"github.com/imadgeboyega/datemate-backend/internal/common/ratelimit"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware, generateLimiter *ratelimit.Limiter) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Catalogue
	api.HandleFunc("/courses", handler.ListCourses).Methods("GET")
	api.HandleFunc("/courses", handler.CreateCourse).Methods("POST")
	api.HandleFunc("/courses/recommended", handler.GetRecommended).Methods("GET")
	api.Handle("/courses/generate", generateLimiter.Limit(auth.RateLimitKey)(http.HandlerFunc(handler.Generate))).Methods("POST")

	// Per-user state
	api.HandleFunc("/courses/mode", handler.SetMode).Methods("PUT")
	api.HandleFunc("/courses/active", handler.GetActive).Methods("GET")
	api.HandleFunc("/courses/active", handler.SetActive).Methods("PUT")

	// Single course
	api.HandleFunc("/courses/{id}", handler.GetCourse).Methods("GET")
	api.HandleFunc("/courses/{id}/match", handler.GetMatch).Methods("GET")
	api.HandleFunc("/courses/{id}/transit", handler.GetTransit).Methods("GET")
	api.HandleFunc("/courses/{id}/stops/{order:[0-9]+}/unlock", handler.UnlockStop).Methods("POST")

	api.HandleFunc("/transit/steps", handler.TransitSteps).Methods("POST")
}
