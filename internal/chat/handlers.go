// internal/chat/handlers.go

package chat

import (
	"errors"
	"net/http"

	"github.com/imadgeboyega/datemate-backend/internal/auth"
	"github.com/imadgeboyega/datemate-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := h.service.Session(r.Context(), userID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to load chat", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, session, http.StatusOK)
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SendRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		if errors.Is(err, utils.ErrInvalidBody) {
			utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	reply, err := h.service.Send(r.Context(), userID, &req)
	if err != nil {
		utils.ErrorResponse(w, "Failed to send message", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, reply, http.StatusOK)
}

func (h *Handler) ToggleTMI(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	enabled, err := h.service.ToggleTMI(r.Context(), userID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to toggle TMI", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, TMIResponse{Enabled: enabled}, http.StatusOK)
}
