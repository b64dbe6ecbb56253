// internal/course/models.go

package course

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/imadgeboyega/datemate-backend/internal/preference"
)

// Mode controls how a course is displayed to a user
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeBlind    Mode = "blind"
)

// Place is a single venue on a course
type Place struct {
	ID               string   `json:"id"`
	Name             string   `json:"name" validate:"required"`
	Category         string   `json:"category"`
	ImageURLs        []string `json:"image_urls"`
	Rating           float64  `json:"rating" validate:"gte=0,lte=5"`
	Description      string   `json:"description"`
	Address          string   `json:"address"`
	Latitude         float64  `json:"latitude" validate:"latitude"`
	Longitude        float64  `json:"longitude" validate:"longitude"`
	RecommendedMenus []string `json:"recommended_menus"`
	EstimatedTime    int      `json:"estimated_time" validate:"gte=0"`
	BlindHint        string   `json:"blind_hint"`
	BlindTitle       string   `json:"blind_title"`
}

// QuestMission is the optional photo mission attached to a stop
type QuestMission struct {
	ID          string  `json:"id"`
	PlaceID     string  `json:"place_id"`
	Description string  `json:"description"`
	IsCompleted bool    `json:"is_completed"`
	PhotoURL    *string `json:"photo_url"`
}

// Stop is one position in a course. Order is 1-based.
type Stop struct {
	Order                  int           `json:"order" validate:"gte=1"`
	Place                  Place         `json:"place"`
	WalkingMinutesFromPrev *int          `json:"walking_minutes_from_prev"`
	QuestMission           *QuestMission `json:"quest_mission"`
	Alternatives           []Place       `json:"alternatives"`
	IsUnlocked             bool          `json:"is_unlocked"`
}

// Stops is stored as a single JSONB column
type Stops []Stop

// Course is a curated multi-stop date itinerary
type Course struct {
	ID            string              `json:"id" db:"id"`
	Title         string              `json:"title" db:"title" validate:"required"`
	BlindTitle    string              `json:"blind_title" db:"blind_title"`
	BlindSubtitle string              `json:"blind_subtitle" db:"blind_subtitle"`
	Description   string              `json:"description" db:"description"`
	Tags          pq.StringArray      `json:"tags" db:"tags"`
	HeroImageURL  string              `json:"hero_image_url" db:"hero_image_url"`
	TotalDuration int                 `json:"total_duration" db:"total_duration"`
	TotalDistance float64             `json:"total_distance" db:"total_distance"`
	Stops         Stops               `json:"stops" db:"stops" validate:"required,min=1,dive"`
	Vibe          preference.Vibe     `json:"vibe" db:"vibe"`
	DateType      preference.DateType `json:"date_type" db:"date_type"`
	Region        string              `json:"region" db:"region"`
	CreatedBy     *int64              `json:"created_by,omitempty" db:"created_by"`
	CreatedAt     time.Time           `json:"created_at" db:"created_at"`
}

// ScoredCourse is a course with its recommendation score attached
type ScoredCourse struct {
	*Course
	Score        int `json:"score"`
	MatchPercent int `json:"match_percent"`
}

// UserState is the per-user display state of the course screens
type UserState struct {
	UserID         int64   `json:"user_id" db:"user_id"`
	ActiveCourseID *string `json:"active_course_id" db:"active_course_id"`
	Mode           Mode    `json:"mode" db:"mode"`
}

// Scan implements sql.Scanner for Stops
func (s *Stops) Scan(value interface{}) error {
	if value == nil {
		*s = Stops{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for stops")
	}
}

// Value implements driver.Valuer for Stops
func (s Stops) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// IsContiguous reports whether stop orders run 1..n in position
func (s Stops) IsContiguous() bool {
	for i, stop := range s {
		if stop.Order != i+1 {
			return false
		}
	}
	return true
}

// Find returns the stop with the given order
func (s Stops) Find(order int) (*Stop, bool) {
	for i := range s {
		if s[i].Order == order {
			return &s[i], true
		}
	}
	return nil, false
}
