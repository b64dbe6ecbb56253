package course

import (
	"github.com/imadgeboyega/datemate-backend/internal/preference"
	"github.com/imadgeboyega/datemate-backend/internal/transit"
)

// RecommendFilters narrows the catalogue before ranking
type RecommendFilters struct {
	DateType preference.DateType `json:"date_type,omitempty"`
	Vibe     preference.Vibe     `json:"vibe,omitempty"`
	Region   string              `json:"region,omitempty"`
	Limit    int                 `json:"limit,omitempty"`
}

// GenerateRequest asks the generator for a fresh course
type GenerateRequest struct {
	Region   string              `json:"region" validate:"required,max=50"`
	DateType preference.DateType `json:"date_type,omitempty" validate:"omitempty,oneof=couple solo friends"`
	Vibe     preference.Vibe     `json:"vibe,omitempty" validate:"omitempty,oneof=romantic hip chill adventure emotional foodie"`
}

type SetModeRequest struct {
	Mode Mode `json:"mode" validate:"required,oneof=standard blind"`
}

type SetActiveRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

// TransitStepsRequest estimates a single leg between two arbitrary places
type TransitStepsRequest struct {
	From transit.Stop `json:"from"`
	To   transit.Stop `json:"to"`
}

type TransitStepsResponse struct {
	DistanceKm   float64        `json:"distance_km"`
	Steps        []transit.Step `json:"steps"`
	TotalMinutes int            `json:"total_minutes"`
}

// CourseView is a course as a particular user sees it
type CourseView struct {
	*Course
	Mode Mode `json:"mode"`
}

type MatchResponse struct {
	CourseID     string `json:"course_id"`
	Score        int    `json:"score"`
	MatchPercent int    `json:"match_percent"`
}

type TransitPlanResponse struct {
	CourseID     string        `json:"course_id"`
	Legs         []transit.Leg `json:"legs"`
	TotalMinutes int           `json:"total_minutes"`
}
