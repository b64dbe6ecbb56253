package onboarding

import (
	"github.com/gorilla/mux"

	"github.com/imadgeboyega/datemate-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/onboarding").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.GetProfile).Methods("GET")
	api.HandleFunc("/catalog", handler.GetCatalog).Methods("GET")

	// One answer per screen
	api.HandleFunc("/date-type", handler.SetDateType).Methods("PUT")
	api.HandleFunc("/mbti", handler.SetMBTI).Methods("PUT")
	api.HandleFunc("/birthday", handler.SetBirthday).Methods("PUT")
	api.HandleFunc("/location", handler.SetLocation).Methods("PUT")
	api.HandleFunc("/vibe", handler.SetVibe).Methods("PUT")
	api.HandleFunc("/liked-tags", handler.AddLikedTag).Methods("POST")
	api.HandleFunc("/disliked-tags", handler.AddDislikedTag).Methods("POST")
	api.HandleFunc("/balance", handler.SetBalanceAnswer).Methods("POST")

	api.HandleFunc("/complete", handler.Complete).Methods("POST")
	api.HandleFunc("/reset", handler.Reset).Methods("POST")
}
