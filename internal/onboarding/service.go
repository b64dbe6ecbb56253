// internal/onboarding/service.go
// Incremental onboarding: each screen sets one answer.

package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imadgeboyega/datemate-backend/internal/preference"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrInvalidDateType      = errors.New("invalid date type")
	ErrInvalidMBTI          = errors.New("invalid MBTI type")
	ErrInvalidBirthday      = errors.New("invalid birthday")
	ErrInvalidTag           = errors.New("unknown tag")
	ErrInvalidBalanceAnswer = errors.New("invalid balance answer")
	ErrInvalidVibe          = errors.New("invalid vibe")
	ErrInvalidLocation      = errors.New("invalid location")
)

const birthdayLayout = "2006-01-02"

type Service interface {
	Get(ctx context.Context, userID int64) (*Profile, error)
	// GetProfile returns the scoring profile; users who never onboarded get an empty one
	GetProfile(ctx context.Context, userID int64) (preference.UserProfile, error)

	SetDateType(ctx context.Context, userID int64, dateType preference.DateType) (*Profile, error)
	SetMBTI(ctx context.Context, userID int64, mbti string) (*Profile, error)
	SetBirthday(ctx context.Context, userID int64, birthday string) (*Profile, error)
	SetLocation(ctx context.Context, userID int64, city, district string) (*Profile, error)
	AddLikedTag(ctx context.Context, userID int64, tagID string) (*Profile, error)
	AddDislikedTag(ctx context.Context, userID int64, tagID string) (*Profile, error)
	SetBalanceAnswer(ctx context.Context, userID int64, questionID, optionID string) (*Profile, error)
	SetVibe(ctx context.Context, userID int64, vibe preference.Vibe) (*Profile, error)
	Complete(ctx context.Context, userID int64) (*Profile, error)
	Reset(ctx context.Context, userID int64) (*Profile, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Get(ctx context.Context, userID int64) (*Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		return NewProfile(userID), nil
	}
	return p, err
}

func (s *service) GetProfile(ctx context.Context, userID int64) (preference.UserProfile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return preference.UserProfile{}, err
	}
	return p.UserProfile(), nil
}

func (s *service) SetDateType(ctx context.Context, userID int64, dateType preference.DateType) (*Profile, error) {
	if !preference.IsValidDateType(dateType) {
		return nil, ErrInvalidDateType
	}
	return s.repo.UpdateProfile(ctx, userID, func(p *Profile) error {
		p.DateType = dateType
		return nil
	})
}

func (s *service) SetMBTI(ctx context.Context, userID int64, mbti string) (*Profile, error) {
	mbti = strings.ToUpper(strings.TrimSpace(mbti))
	if !preference.IsValidMBTI(mbti) {
		return nil, ErrInvalidMBTI
	}
	return s.repo.UpdateProfile(ctx, userID, func(p *Profile) error {
		p.MBTI = mbti
		return nil
	})
}

func (s *service) SetBirthday(ctx context.Context, userID int64, birthday string) (*Profile, error) {
	date, err := time.Parse(birthdayLayout, birthday)
	if err != nil || date.After(s.now()) {
		return nil, ErrInvalidBirthday
	}
	return s.repo.UpdateProfile(ctx, userID, func(p *Profile) error {
		p.Birthday = date.Format(birthdayLayout)
		return nil
	})
}

func (s *service) SetLocation(ctx context.Context, userID int64, city, district string) (*Profile, error) {
	city, district = strings.TrimSpace(city), strings.TrimSpace(district)
	if city == "" || district == "" {
		return nil, ErrInvalidLocation
	}
	return s.repo.UpdateProfile(ctx, userID, func(p *Profile) error {
		p.City = city
		p.District = district
		return nil
	})
}

// AddLikedTag records a liked tag. A tag lives in at most one list, so
// liking a disliked tag moves it.
func (s *service) AddLikedTag(ctx context.Context, userID int64, tagID string) (*Profile, error) {
	if _, ok := preference.FindTag(tagID); !ok {
		return nil, ErrInvalidTag
	}
	return s.repo.UpdateProfile(ctx, userID, func(p *Profile) error {
		p.DislikedTags = removeTag(p.DislikedTags, tagID)
		p.LikedTags = addTag(p.LikedTags, tagID)
		return nil
	})
}

func (s *service) AddDislikedTag(ctx context.Context, userID int64, tagID string) (*Profile, error) {
	if _, ok := preference.FindTag(tagID); !ok {
		return nil, ErrInvalidTag
	}
	return s.repo.UpdateProfile(ctx, userID, func(p *Profile) error {
		p.LikedTags = removeTag(p.LikedTags, tagID)
		p.DislikedTags = addTag(p.DislikedTags, tagID)
		return nil
	})
}

func (s *service) SetBalanceAnswer(ctx context.Context, userID int64, questionID, optionID string) (*Profile, error) {
	if !preference.IsValidBalanceAnswer(questionID, optionID) {
		return nil, ErrInvalidBalanceAnswer
	}
	return s.repo.UpdateProfile(ctx, userID, func(p *Profile) error {
		if p.BalanceAnswers == nil {
			p.BalanceAnswers = BalanceAnswers{}
		}
		p.BalanceAnswers[questionID] = optionID
		return nil
	})
}

func (s *service) SetVibe(ctx context.Context, userID int64, vibe preference.Vibe) (*Profile, error) {
	if !preference.IsValidVibe(vibe) {
		return nil, ErrInvalidVibe
	}
	return s.repo.UpdateProfile(ctx, userID, func(p *Profile) error {
		p.SelectedVibe = vibe
		return nil
	})
}

func (s *service) Complete(ctx context.Context, userID int64) (*Profile, error) {
	p, err := s.repo.UpdateProfile(ctx, userID, func(p *Profile) error {
		p.IsComplete = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	RecordCompletion(p)
	return p, nil
}

// Reset wipes every answer
func (s *service) Reset(ctx context.Context, userID int64) (*Profile, error) {
	if err := s.repo.DeleteProfile(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to reset profile: %w", err)
	}
	return NewProfile(userID), nil
}

func addTag(tags []string, id string) []string {
	for _, t := range tags {
		if t == id {
			return tags
		}
	}
	return append(tags, id)
}

func removeTag(tags []string, id string) []string {
	out := tags[:0]
	for _, t := range tags {
		if t != id {
			out = append(out, t)
		}
	}
	return out
}
