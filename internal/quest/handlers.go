// internal/quest/handlers.go

package quest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imadgeboyega/datemate-backend/internal/auth"
	"github.com/imadgeboyega/datemate-backend/internal/common/utils"
	"github.com/imadgeboyega/datemate-backend/internal/course"
)

// maxPhotoBytes bounds the multipart body of a mission completion
const maxPhotoBytes = 10 << 20

// Handler handles quest HTTP requests
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetActive returns the quest mode flag and the running quest, if any
func (h *Handler) GetActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	resp, err := h.service.Active(r.Context(), userID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to get quest", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, resp, http.StatusOK)
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req StartQuestRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	q, err := h.service.Start(r.Context(), userID, req.CourseID)
	if err != nil {
		respondServiceError(w, err, "Failed to start quest")
		return
	}

	utils.SuccessResponse(w, q, http.StatusCreated)
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	enabled, err := h.service.Toggle(r.Context(), userID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to toggle quest mode", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, ToggleResponse{Enabled: enabled}, http.StatusOK)
}

// CompleteMission expects a multipart form with the proof image in "photo"
func (h *Handler) CompleteMission(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	missionID := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		utils.ErrorResponse(w, "File too large or invalid form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.ErrorResponse(w, "Photo is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	photo := &Photo{Body: file, ContentType: header.Header.Get("Content-Type")}
	resp, err := h.service.CompleteMission(r.Context(), userID, missionID, photo)
	if err != nil {
		respondServiceError(w, err, "Failed to complete mission")
		return
	}

	utils.SuccessResponse(w, resp, http.StatusOK)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to get quest stats", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, stats, http.StatusOK)
}

func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, course.ErrCourseNotFound):
		utils.ErrorResponse(w, "Course not found", http.StatusNotFound)
	case errors.Is(err, ErrNoActiveQuest):
		utils.ErrorResponse(w, "No active quest", http.StatusNotFound)
	case errors.Is(err, ErrMissionNotFound):
		utils.ErrorResponse(w, "Mission not found", http.StatusNotFound)
	case errors.Is(err, ErrMissionCompleted):
		utils.ErrorResponse(w, "Mission already completed", http.StatusConflict)
	case errors.Is(err, ErrQuestDisabled):
		utils.ErrorResponse(w, "Quest mode is turned off", http.StatusForbidden)
	case errors.Is(err, ErrPhotoRequired):
		utils.ErrorResponse(w, "Photo is required", http.StatusBadRequest)
	case errors.Is(err, ErrUnsupportedPhoto):
		utils.ErrorResponse(w, "Photo must be a JPEG, PNG, WebP or HEIC image", http.StatusUnsupportedMediaType)
	default:
		utils.ErrorResponse(w, fallback, http.StatusInternalServerError)
	}
}
