// internal/auth/handlers.go

package auth

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/datemate-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the auth endpoints. The /me endpoint sits under
// /api/v1 behind the middleware.
func (h *Handler) RegisterRoutes(router *mux.Router, middleware *Middleware) {
	public := router.PathPrefix("/api/auth").Subrouter()
	public.HandleFunc("/signup", h.Signup).Methods("POST")
	public.HandleFunc("/signin", h.Signin).Methods("POST")
	public.HandleFunc("/refresh", h.RefreshToken).Methods("POST")
	public.HandleFunc("/logout", h.Logout).Methods("POST")

	protected := router.PathPrefix("/api/auth").Subrouter()
	protected.Use(middleware.Authenticate)
	protected.HandleFunc("/logout-all", h.LogoutAllDevices).Methods("POST")

	me := router.PathPrefix("/api/v1").Subrouter()
	me.Use(middleware.Authenticate)
	me.HandleFunc("/me", h.Me).Methods("GET")
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			utils.ErrorResponse(w, "Email already registered", http.StatusConflict)
		default:
			utils.ErrorResponse(w, "Failed to create account", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, response, http.StatusCreated)
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := h.service.Signin(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			utils.ErrorResponse(w, "Invalid email or password", http.StatusUnauthorized)
		case errors.Is(err, ErrTooManyAttempts):
			utils.ErrorResponse(w, "Too many login attempts. Please try again later.", http.StatusTooManyRequests)
		default:
			utils.ErrorResponse(w, "Failed to sign in", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, response, http.StatusOK)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := h.service.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		utils.ErrorResponse(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}

	utils.SuccessResponse(w, response, http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := ExtractToken(r)
	if token == "" {
		utils.ErrorResponse(w, "Missing or invalid authorization header", http.StatusUnauthorized)
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		utils.ErrorResponse(w, "Failed to logout", http.StatusInternalServerError)
		return
	}

	utils.MessageResponse(w, "Logged out successfully", http.StatusOK)
}

func (h *Handler) LogoutAllDevices(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.service.LogoutAllDevices(r.Context(), userID); err != nil {
		utils.ErrorResponse(w, "Failed to logout from all devices", http.StatusInternalServerError)
		return
	}

	utils.MessageResponse(w, "Logged out from all devices successfully", http.StatusOK)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.ErrorResponse(w, "User not found", http.StatusNotFound)
			return
		}
		utils.ErrorResponse(w, "Failed to get user", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, user, http.StatusOK)
}
