// internal/preference/models.go
// Preference signals collected during onboarding.
// These types are shared by onboarding (which owns and persists them)
// and the course recommender (which only reads them).

package preference

import "strings"

// DateType is who the outing is for
type DateType string

const (
	DateTypeCouple  DateType = "couple"
	DateTypeSolo    DateType = "solo"
	DateTypeFriends DateType = "friends"
)

// Vibe is one of the six mood categories used for matching
type Vibe string

const (
	VibeRomantic  Vibe = "romantic"
	VibeHip       Vibe = "hip"
	VibeChill     Vibe = "chill"
	VibeAdventure Vibe = "adventure"
	VibeEmotional Vibe = "emotional"
	VibeFoodie    Vibe = "foodie"
)

// AllVibes in display order
var AllVibes = []Vibe{VibeRomantic, VibeHip, VibeChill, VibeAdventure, VibeEmotional, VibeFoodie}

// AllDateTypes in display order
var AllDateTypes = []DateType{DateTypeCouple, DateTypeSolo, DateTypeFriends}

// SeoulCity is the only city that earns the same-city bonus
const SeoulCity = "서울특별시"

// Region is a city + district pair
type Region struct {
	City     string `json:"city" validate:"required"`
	District string `json:"district" validate:"required"`
}

// UserProfile is a snapshot of onboarding answers.
// Empty strings and nil mean "unset".
type UserProfile struct {
	DateType     DateType `json:"date_type,omitempty"`
	LikedTags    []string `json:"liked_tags"`
	DislikedTags []string `json:"disliked_tags"`
	MBTI         string   `json:"mbti,omitempty"`
	Birthday     string   `json:"birthday,omitempty"`
	Location     *Region  `json:"location,omitempty"`
	SelectedVibe Vibe     `json:"selected_vibe,omitempty"`
}

// IsEmpty reports whether no signal has been collected yet
func (p UserProfile) IsEmpty() bool {
	return p.DateType == "" && len(p.LikedTags) == 0 && len(p.DislikedTags) == 0 &&
		p.MBTI == "" && p.Birthday == "" && p.Location == nil && p.SelectedVibe == ""
}

// IsValidDateType checks membership in the closed set
func IsValidDateType(t DateType) bool {
	for _, dt := range AllDateTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// IsValidVibe checks membership in the closed set
func IsValidVibe(v Vibe) bool {
	for _, vibe := range AllVibes {
		if vibe == v {
			return true
		}
	}
	return false
}

// IsValidMBTI checks the code against the 16 known types
func IsValidMBTI(code string) bool {
	code = strings.ToUpper(code)
	for _, opt := range MBTIOptions {
		if opt.Type == code {
			return true
		}
	}
	return false
}
