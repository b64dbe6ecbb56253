package course

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/datemate-backend/internal/auth"
	"github.com/imadgeboyega/datemate-backend/internal/common/utils"
	"github.com/imadgeboyega/datemate-backend/internal/preference"
	"github.com/imadgeboyega/datemate-backend/internal/transit"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.List(r.Context())
	if err != nil {
		utils.ErrorResponse(w, "Failed to get courses", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, courses, http.StatusOK)
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var c Course
	if err := utils.DecodeAndValidate(r, &c); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	// IDs are server-assigned
	c.ID = ""
	c.CreatedBy = &userID

	created, err := h.service.Add(r.Context(), &c)
	if err != nil {
		h.respondServiceError(w, err, "Failed to create course")
		return
	}

	utils.SuccessResponse(w, created, http.StatusCreated)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	view, err := h.service.View(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		h.respondServiceError(w, err, "Failed to get course")
		return
	}

	utils.SuccessResponse(w, view, http.StatusOK)
}

// GetRecommended ranks the catalogue for the caller.
// Query: date_type, vibe, region, limit.
func (h *Handler) GetRecommended(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	filters := &RecommendFilters{
		DateType: preference.DateType(query.Get("date_type")),
		Vibe:     preference.Vibe(query.Get("vibe")),
		Region:   query.Get("region"),
	}

	if filters.DateType != "" && !preference.IsValidDateType(filters.DateType) {
		utils.ErrorResponse(w, "Invalid date_type", http.StatusBadRequest)
		return
	}
	if filters.Vibe != "" && !preference.IsValidVibe(filters.Vibe) {
		utils.ErrorResponse(w, "Invalid vibe", http.StatusBadRequest)
		return
	}
	if limit := query.Get("limit"); limit != "" {
		l, err := strconv.Atoi(limit)
		if err != nil || l < 0 {
			utils.ErrorResponse(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		filters.Limit = l
	}

	ranked, err := h.service.Recommend(r.Context(), userID, filters)
	if err != nil {
		utils.ErrorResponse(w, "Failed to get recommendations", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, ranked, http.StatusOK)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	match, err := h.service.Match(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		h.respondServiceError(w, err, "Failed to compute match")
		return
	}

	utils.SuccessResponse(w, match, http.StatusOK)
}

func (h *Handler) SetMode(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SetModeRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.SetMode(r.Context(), userID, req.Mode); err != nil {
		h.respondServiceError(w, err, "Failed to set mode")
		return
	}

	utils.SuccessResponse(w, req, http.StatusOK)
}

func (h *Handler) GetActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	view, err := h.service.GetActiveCourse(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err, "Failed to get active course")
		return
	}

	utils.SuccessResponse(w, view, http.StatusOK)
}

func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SetActiveRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.SetActiveCourse(r.Context(), userID, req.CourseID); err != nil {
		h.respondServiceError(w, err, "Failed to set active course")
		return
	}

	utils.SuccessResponse(w, req, http.StatusOK)
}

func (h *Handler) UnlockStop(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	order, err := strconv.Atoi(vars["order"])
	if err != nil {
		utils.ErrorResponse(w, "Invalid stop order", http.StatusBadRequest)
		return
	}

	view, err := h.service.UnlockStop(r.Context(), userID, vars["id"], order)
	if err != nil {
		h.respondServiceError(w, err, "Failed to unlock stop")
		return
	}

	utils.SuccessResponse(w, view, http.StatusOK)
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req GenerateRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.service.Generate(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, err, "Failed to generate course")
		return
	}

	utils.SuccessResponse(w, c, http.StatusCreated)
}

func (h *Handler) GetTransit(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.Transit(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondServiceError(w, err, "Failed to plan transit")
		return
	}

	utils.SuccessResponse(w, plan, http.StatusOK)
}

// TransitSteps estimates a single leg between two arbitrary coordinates
func (h *Handler) TransitSteps(w http.ResponseWriter, r *http.Request) {
	var req TransitStepsRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	for _, stop := range []transit.Stop{req.From, req.To} {
		if err := transit.ValidatePoint(stop.Point()); err != nil {
			utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	steps := transit.Steps(req.From, req.To)
	utils.SuccessResponse(w, TransitStepsResponse{
		DistanceKm:   transit.Haversine(req.From.Point(), req.To.Point()),
		Steps:        steps,
		TotalMinutes: transit.TotalMinutes(steps),
	}, http.StatusOK)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrCourseNotFound):
		utils.ErrorResponse(w, "Course not found", http.StatusNotFound)
	case errors.Is(err, ErrStopNotFound):
		utils.ErrorResponse(w, "Stop not found", http.StatusNotFound)
	case errors.Is(err, ErrNoActiveCourse):
		utils.ErrorResponse(w, "No active course", http.StatusNotFound)
	case errors.Is(err, ErrCourseExists):
		utils.ErrorResponse(w, "Course already exists", http.StatusConflict)
	case errors.Is(err, ErrInvalidCourse), errors.Is(err, ErrInvalidMode):
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrGeneratorUnavailable):
		utils.ErrorResponse(w, "Course generation is not available", http.StatusServiceUnavailable)
	case errors.Is(err, ErrGenerationFailed):
		utils.ErrorResponse(w, "Course generation failed", http.StatusBadGateway)
	default:
		utils.ErrorResponse(w, fallback, http.StatusInternalServerError)
	}
}
