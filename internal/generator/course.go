// internal/generator/course.go
// Turns a model reply into a stored course.

package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/imadgeboyega/datemate-backend/internal/course"
	"github.com/imadgeboyega/datemate-backend/internal/preference"
	"github.com/imadgeboyega/datemate-backend/internal/transit"
)

var ErrInvalidDraft = errors.New("generated course is unusable")

const (
	defaultBlindTitle    = "새로운 모험이 기다려요"
	defaultBlindSubtitle = "감성이 이끄는 곳으로"
	defaultPlaceBlind    = "???"
	defaultBlindHint     = "숨겨진 매력이 있는 곳"
	defaultHeroImageURL  = "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=600&h=400&fit=crop"
	defaultDuration      = 240
	defaultRating        = 4.5
	defaultEstimatedTime = 60
	walkingMinutes       = 10
)

// regionSearchTerms are the neighbourhood hints sent along with a region
var regionSearchTerms = map[string][]string{
	"성동구": {"성수동 카페", "성수동 맛집", "서울숲"},
	"종로구": {"북촌 한옥마을", "삼청동 카페", "익선동 맛집"},
	"마포구": {"연남동 카페", "홍대 맛집", "망원동"},
	"용산구": {"이태원 맛집", "한남동 카페", "용산 관광"},
	"강남구": {"강남 맛집", "압구정 카페", "강남 관광"},
	"서초구": {"서래마을 카페", "반포 한강공원"},
	"송파구": {"잠실 놀거리", "석촌호수"},
	"중구":  {"을지로 카페", "명동 맛집", "남산"},
}

// SearchTerms returns the hints for a region, falling back to generic ones
func SearchTerms(region string) []string {
	if terms, ok := regionSearchTerms[region]; ok {
		return terms
	}
	return []string{region + " 카페", region + " 맛집", region + " 관광"}
}

// Draft is the JSON shape the model is asked to produce
type Draft struct {
	Title         string      `json:"title"`
	BlindTitle    string      `json:"blindTitle"`
	BlindSubtitle string      `json:"blindSubtitle"`
	Description   string      `json:"description"`
	Tags          []string    `json:"tags"`
	TotalDuration looseNumber `json:"totalDuration"`
	Stops         []DraftStop `json:"stops"`
}

type DraftStop struct {
	Name             string      `json:"name"`
	Category         string      `json:"category"`
	Description      string      `json:"description"`
	Address          string      `json:"address"`
	Latitude         looseNumber `json:"latitude"`
	Longitude        looseNumber `json:"longitude"`
	RecommendedMenus []string    `json:"recommendedMenus"`
	EstimatedTime    looseNumber `json:"estimatedTime"`
	BlindHint        string      `json:"blindHint"`
	BlindTitle       string      `json:"blindTitle"`
}

// looseNumber accepts 37.5, "37.5" or garbage (read as 0)
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = looseNumber(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			*n = looseNumber(f)
			return nil
		}
	}

	*n = 0
	return nil
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON returns the body of the first ``` fence, or the whole reply
func ExtractJSON(reply string) string {
	if m := fencedJSON.FindStringSubmatch(reply); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(reply)
}

// ParseDraft decodes a model reply into a Draft
func ParseDraft(reply string) (*Draft, error) {
	var draft Draft
	if err := json.Unmarshal([]byte(ExtractJSON(reply)), &draft); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	return &draft, nil
}

// AssembleCourse fills defaults and derived fields. Generated stops are all
// unlocked and carry no quest mission.
func AssembleCourse(draft *Draft, req *course.GenerateRequest, profile preference.UserProfile, now time.Time) (*course.Course, error) {
	if draft == nil || strings.TrimSpace(draft.Title) == "" {
		return nil, fmt.Errorf("%w: missing title", ErrInvalidDraft)
	}
	if len(draft.Stops) == 0 {
		return nil, fmt.Errorf("%w: no stops", ErrInvalidDraft)
	}

	c := &course.Course{
		ID:            "ai-" + uuid.New().String(),
		Title:         draft.Title,
		BlindTitle:    orDefault(draft.BlindTitle, defaultBlindTitle),
		BlindSubtitle: orDefault(draft.BlindSubtitle, defaultBlindSubtitle),
		Description:   draft.Description,
		Tags:          append([]string{}, draft.Tags...),
		HeroImageURL:  defaultHeroImageURL,
		TotalDuration: intOrDefault(draft.TotalDuration, defaultDuration),
		Vibe:          pickVibe(req.Vibe, profile.SelectedVibe),
		DateType:      pickDateType(req.DateType, profile.DateType),
		Region:        req.Region,
		CreatedAt:     now.UTC(),
	}

	c.Stops = make(course.Stops, len(draft.Stops))
	points := make([]transit.Point, len(draft.Stops))
	for i, s := range draft.Stops {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("%w: stop %d has no name", ErrInvalidDraft, i+1)
		}

		var walk *int
		if i > 0 {
			minutes := walkingMinutes
			walk = &minutes
		}

		c.Stops[i] = course.Stop{
			Order: i + 1,
			Place: course.Place{
				ID:               fmt.Sprintf("ai-place-%s-%d", uuid.New().String()[:8], i),
				Name:             s.Name,
				Category:         s.Category,
				ImageURLs:        []string{},
				Rating:           defaultRating,
				Description:      s.Description,
				Address:          s.Address,
				Latitude:         float64(s.Latitude),
				Longitude:        float64(s.Longitude),
				RecommendedMenus: nonNil(s.RecommendedMenus),
				EstimatedTime:    intOrDefault(s.EstimatedTime, defaultEstimatedTime),
				BlindHint:        orDefault(s.BlindHint, defaultBlindHint),
				BlindTitle:       orDefault(s.BlindTitle, defaultPlaceBlind),
			},
			WalkingMinutesFromPrev: walk,
			Alternatives:           []course.Place{},
			IsUnlocked:             true,
		}
		points[i] = transit.Point{Latitude: float64(s.Latitude), Longitude: float64(s.Longitude)}
	}

	c.TotalDistance = transit.RouteDistance(points)
	return c, nil
}

func pickVibe(requested, profile preference.Vibe) preference.Vibe {
	switch {
	case requested != "":
		return requested
	case profile != "":
		return profile
	default:
		return preference.VibeRomantic
	}
}

func pickDateType(requested, profile preference.DateType) preference.DateType {
	switch {
	case requested != "":
		return requested
	case profile != "":
		return profile
	default:
		return preference.DateTypeCouple
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func intOrDefault(n looseNumber, def int) int {
	if n == 0 {
		return def
	}
	return int(n)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// CourseGenerator asks the model for a course and assembles it
type CourseGenerator struct {
	llm Completer
	now func() time.Time
}

func NewCourseGenerator(llm Completer) *CourseGenerator {
	return &CourseGenerator{llm: llm, now: time.Now}
}

const courseSystemPrompt = "당신은 한국 데이트 코스 전문가입니다. 주어진 조건으로 최적의 코스를 JSON 형식으로 만들어주세요. JSON만 출력하고 다른 텍스트는 포함하지 마세요."

type coursePromptInput struct {
	Region      string                 `json:"region"`
	DateType    preference.DateType    `json:"dateType,omitempty"`
	Vibe        preference.Vibe        `json:"vibe,omitempty"`
	SearchTerms []string               `json:"searchTerms"`
	Profile     preference.UserProfile `json:"userProfile"`
	LikedTags   []string               `json:"likedTagLabels"`
	Disliked    []string               `json:"dislikedTagLabels"`
	Schema      Draft                  `json:"responseSchema"`
}

// GenerateCourse implements course.Generator
func (g *CourseGenerator) GenerateCourse(ctx context.Context, req *course.GenerateRequest, profile preference.UserProfile) (*course.Course, error) {
	input := coursePromptInput{
		Region:      req.Region,
		DateType:    req.DateType,
		Vibe:        req.Vibe,
		SearchTerms: SearchTerms(req.Region),
		Profile:     profile,
		LikedTags:   preference.TagLabels(profile.LikedTags),
		Disliked:    preference.TagLabels(profile.DislikedTags),
		Schema:      Draft{Stops: []DraftStop{{}}},
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	reply, err := g.llm.Complete(ctx, []Message{
		{Role: "system", Content: courseSystemPrompt},
		{Role: "user", Content: string(payload)},
	}, Options{Temperature: 0.6, MaxTokens: 4096})
	if err != nil {
		return nil, err
	}

	draft, err := ParseDraft(reply)
	if err != nil {
		return nil, err
	}
	return AssembleCourse(draft, req, profile, g.now())
}
