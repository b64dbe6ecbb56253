package onboarding

import (
	"errors"
	"net/http"

	"github.com/imadgeboyega/datemate-backend/internal/auth"
	"github.com/imadgeboyega/datemate-backend/internal/common/utils"
	"github.com/imadgeboyega/datemate-backend/internal/preference"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	utils.SuccessResponse(w, preference.GetCatalog(), http.StatusOK)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	p, err := h.service.Get(r.Context(), userID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to get onboarding profile", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, p, http.StatusOK)
}

func (h *Handler) SetDateType(w http.ResponseWriter, r *http.Request) {
	var req SetDateTypeRequest
	h.update(w, r, &req, func(userID int64) (*Profile, error) {
		return h.service.SetDateType(r.Context(), userID, req.DateType)
	})
}

func (h *Handler) SetMBTI(w http.ResponseWriter, r *http.Request) {
	var req SetMBTIRequest
	h.update(w, r, &req, func(userID int64) (*Profile, error) {
		return h.service.SetMBTI(r.Context(), userID, req.MBTI)
	})
}

func (h *Handler) SetBirthday(w http.ResponseWriter, r *http.Request) {
	var req SetBirthdayRequest
	h.update(w, r, &req, func(userID int64) (*Profile, error) {
		return h.service.SetBirthday(r.Context(), userID, req.Birthday)
	})
}

func (h *Handler) SetLocation(w http.ResponseWriter, r *http.Request) {
	var req SetLocationRequest
	h.update(w, r, &req, func(userID int64) (*Profile, error) {
		return h.service.SetLocation(r.Context(), userID, req.City, req.District)
	})
}

func (h *Handler) AddLikedTag(w http.ResponseWriter, r *http.Request) {
	var req AddTagRequest
	h.update(w, r, &req, func(userID int64) (*Profile, error) {
		return h.service.AddLikedTag(r.Context(), userID, req.TagID)
	})
}

func (h *Handler) AddDislikedTag(w http.ResponseWriter, r *http.Request) {
	var req AddTagRequest
	h.update(w, r, &req, func(userID int64) (*Profile, error) {
		return h.service.AddDislikedTag(r.Context(), userID, req.TagID)
	})
}

func (h *Handler) SetBalanceAnswer(w http.ResponseWriter, r *http.Request) {
	var req SetBalanceAnswerRequest
	h.update(w, r, &req, func(userID int64) (*Profile, error) {
		return h.service.SetBalanceAnswer(r.Context(), userID, req.QuestionID, req.OptionID)
	})
}

func (h *Handler) SetVibe(w http.ResponseWriter, r *http.Request) {
	var req SetVibeRequest
	h.update(w, r, &req, func(userID int64) (*Profile, error) {
		return h.service.SetVibe(r.Context(), userID, req.Vibe)
	})
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, nil, func(userID int64) (*Profile, error) {
		return h.service.Complete(r.Context(), userID)
	})
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, nil, func(userID int64) (*Profile, error) {
		return h.service.Reset(r.Context(), userID)
	})
}

// update decodes req (when non-nil), runs apply for the caller and writes the new profile
func (h *Handler) update(w http.ResponseWriter, r *http.Request, req interface{}, apply func(userID int64) (*Profile, error)) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if req != nil {
		if err := utils.DecodeAndValidate(r, req); err != nil {
			utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	p, err := apply(userID)
	if err != nil {
		if isValidationError(err) {
			utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		utils.ErrorResponse(w, "Failed to update onboarding profile", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, p, http.StatusOK)
}

func isValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidDateType, ErrInvalidMBTI, ErrInvalidBirthday, ErrInvalidTag,
		ErrInvalidBalanceAnswer, ErrInvalidVibe, ErrInvalidLocation,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
