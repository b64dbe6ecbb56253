// internal/onboarding/models.go

package onboarding

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/imadgeboyega/datemate-backend/internal/preference"
)

// BalanceAnswers maps a balance question ID to the chosen option ID
type BalanceAnswers map[string]string

// Scan implements sql.Scanner for BalanceAnswers
func (b *BalanceAnswers) Scan(value interface{}) error {
	if value == nil {
		*b = BalanceAnswers{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for balance answers")
	}

	answers := BalanceAnswers{}
	if err := json.Unmarshal(data, &answers); err != nil {
		return err
	}
	*b = answers
	return nil
}

// Value implements driver.Valuer for BalanceAnswers
func (b BalanceAnswers) Value() (driver.Value, error) {
	if b == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(b)
}

// Profile is the persisted onboarding state of one user
type Profile struct {
	UserID         int64               `json:"user_id" db:"user_id"`
	DateType       preference.DateType `json:"date_type" db:"date_type"`
	MBTI           string              `json:"mbti" db:"mbti"`
	Birthday       string              `json:"birthday" db:"birthday"`
	City           string              `json:"city" db:"city"`
	District       string              `json:"district" db:"district"`
	LikedTags      pq.StringArray      `json:"liked_tags" db:"liked_tags"`
	DislikedTags   pq.StringArray      `json:"disliked_tags" db:"disliked_tags"`
	BalanceAnswers BalanceAnswers      `json:"balance_answers" db:"balance_answers"`
	SelectedVibe   preference.Vibe     `json:"selected_vibe" db:"selected_vibe"`
	IsComplete     bool                `json:"is_complete" db:"is_complete"`
	UpdatedAt      time.Time           `json:"updated_at" db:"updated_at"`
}

// NewProfile returns the empty state every user starts from
func NewProfile(userID int64) *Profile {
	return &Profile{
		UserID:         userID,
		LikedTags:      pq.StringArray{},
		DislikedTags:   pq.StringArray{},
		BalanceAnswers: BalanceAnswers{},
	}
}

// UserProfile is the scoring view of the onboarding answers
func (p *Profile) UserProfile() preference.UserProfile {
	profile := preference.UserProfile{
		DateType:     p.DateType,
		LikedTags:    append([]string{}, p.LikedTags...),
		DislikedTags: append([]string{}, p.DislikedTags...),
		MBTI:         p.MBTI,
		Birthday:     p.Birthday,
		SelectedVibe: p.SelectedVibe,
	}
	if p.City != "" || p.District != "" {
		profile.Location = &preference.Region{City: p.City, District: p.District}
	}
	return profile
}
