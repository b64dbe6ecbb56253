// internal/course/service.go

package course

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/imadgeboyega/datemate-backend/internal/common/utils"
	"github.com/imadgeboyega/datemate-backend/internal/preference"
	"github.com/imadgeboyega/datemate-backend/internal/transit"
)

var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseExists         = errors.New("course already exists")
	ErrInvalidCourse        = errors.New("invalid course")
	ErrStopNotFound         = errors.New("stop not found")
	ErrNoActiveCourse       = errors.New("no active course")
	ErrInvalidMode          = errors.New("invalid course mode")
	ErrGeneratorUnavailable = errors.New("course generator is not configured")
	ErrGenerationFailed     = errors.New("course generation failed")
)

// ProfileProvider supplies the caller's onboarding profile
type ProfileProvider interface {
	GetProfile(ctx context.Context, userID int64) (preference.UserProfile, error)
}

// Generator produces a brand-new course from an external model
type Generator interface {
	GenerateCourse(ctx context.Context, req *GenerateRequest, profile preference.UserProfile) (*Course, error)
}

type Service interface {
	// Catalogue
	List(ctx context.Context) ([]*Course, error)
	Get(ctx context.Context, id string) (*Course, error)
	Add(ctx context.Context, c *Course) (*Course, error)

	// Recommendation
	Recommend(ctx context.Context, userID int64, filters *RecommendFilters) ([]*ScoredCourse, error)
	Match(ctx context.Context, userID int64, courseID string) (*MatchResponse, error)

	// Per-user display state
	SetMode(ctx context.Context, userID int64, mode Mode) error
	SetActiveCourse(ctx context.Context, userID int64, courseID string) error
	GetActiveCourse(ctx context.Context, userID int64) (*CourseView, error)
	UnlockStop(ctx context.Context, userID int64, courseID string, order int) (*CourseView, error)
	View(ctx context.Context, userID int64, courseID string) (*CourseView, error)

	// Generation and transit
	Generate(ctx context.Context, userID int64, req *GenerateRequest) (*Course, error)
	Transit(ctx context.Context, courseID string) (*TransitPlanResponse, error)
}

type service struct {
	repo      Repository
	profiles  ProfileProvider
	generator Generator
	cache     RecommendationCache
	now       func() time.Time
}

// NewService wires the course store. generator may be nil.
func NewService(repo Repository, profiles ProfileProvider, generator Generator, cache RecommendationCache) Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &service{
		repo:      repo,
		profiles:  profiles,
		generator: generator,
		cache:     cache,
		now:       time.Now,
	}
}

func (s *service) List(ctx context.Context) ([]*Course, error) {
	return s.repo.ListCourses(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Course, error) {
	return s.repo.GetCourse(ctx, id)
}

func (s *service) Add(ctx context.Context, c *Course) (*Course, error) {
	if err := ValidateCourse(c); err != nil {
		return nil, err
	}

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	for i := range c.Stops {
		if c.Stops[i].Place.ID == "" {
			c.Stops[i].Place.ID = uuid.New().String()
		}
	}
	// listing is newest first, so a caller-supplied timestamp could not prepend
	c.CreatedAt = s.now().UTC()

	if err := s.repo.CreateCourse(ctx, c); err != nil {
		return nil, err
	}

	s.cache.InvalidateAll(ctx)
	return c, nil
}

// ValidateCourse checks field tags, closed enums and stop ordering
func ValidateCourse(c *Course) error {
	if c == nil {
		return ErrInvalidCourse
	}
	if err := utils.ValidateStruct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCourse, err)
	}
	if !preference.IsValidVibe(c.Vibe) {
		return fmt.Errorf("%w: unknown vibe %q", ErrInvalidCourse, c.Vibe)
	}
	if !preference.IsValidDateType(c.DateType) {
		return fmt.Errorf("%w: unknown date type %q", ErrInvalidCourse, c.DateType)
	}
	if !c.Stops.IsContiguous() {
		return fmt.Errorf("%w: stop orders must run from 1 without gaps", ErrInvalidCourse)
	}
	return nil
}

func (s *service) Recommend(ctx context.Context, userID int64, filters *RecommendFilters) ([]*ScoredCourse, error) {
	if filters == nil {
		filters = &RecommendFilters{}
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	key, cacheable := s.cache.Key(ctx, userID, profile, filters)
	if cacheable {
		if cached, ok := s.cache.Get(ctx, key); ok {
			RecordRecommendation(cached)
			return cached, nil
		}
	}

	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	ranked := RankCourses(applyFilters(courses, filters), profile)
	if filters.Limit > 0 && len(ranked) > filters.Limit {
		ranked = ranked[:filters.Limit]
	}

	if cacheable {
		s.cache.Set(ctx, key, ranked)
	}
	RecordRecommendation(ranked)
	return ranked, nil
}

func applyFilters(courses []*Course, filters *RecommendFilters) []*Course {
	filtered := make([]*Course, 0, len(courses))
	for _, c := range courses {
		if filters.DateType != "" && c.DateType != filters.DateType {
			continue
		}
		if filters.Vibe != "" && c.Vibe != filters.Vibe {
			continue
		}
		if filters.Region != "" && c.Region != filters.Region {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

func (s *service) Match(ctx context.Context, userID int64, courseID string) (*MatchResponse, error) {
	c, err := s.repo.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return &MatchResponse{
		CourseID:     c.ID,
		Score:        ScoreCourse(c, profile),
		MatchPercent: GetMatchPercent(c, profile),
	}, nil
}

func (s *service) SetMode(ctx context.Context, userID int64, mode Mode) error {
	if mode != ModeStandard && mode != ModeBlind {
		return ErrInvalidMode
	}
	return s.repo.SetMode(ctx, userID, mode)
}

func (s *service) SetActiveCourse(ctx context.Context, userID int64, courseID string) error {
	if _, err := s.repo.GetCourse(ctx, courseID); err != nil {
		return err
	}
	return s.repo.SetActiveCourse(ctx, userID, courseID)
}

func (s *service) GetActiveCourse(ctx context.Context, userID int64) (*CourseView, error) {
	state, err := s.repo.GetUserState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.ActiveCourseID == nil {
		return nil, ErrNoActiveCourse
	}

	view, err := s.View(ctx, userID, *state.ActiveCourseID)
	if errors.Is(err, ErrCourseNotFound) {
		return nil, ErrNoActiveCourse
	}
	return view, err
}

func (s *service) UnlockStop(ctx context.Context, userID int64, courseID string, order int) (*CourseView, error) {
	c, err := s.repo.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if _, ok := c.Stops.Find(order); !ok {
		return nil, ErrStopNotFound
	}

	if err := s.repo.UnlockStop(ctx, userID, courseID, order); err != nil {
		return nil, fmt.Errorf("failed to unlock stop: %w", err)
	}
	RecordUnlock()

	return s.View(ctx, userID, courseID)
}

// View returns the course as the user should see it. Stops the user has
// unlocked are marked as such; in blind mode every still-locked stop only
// shows its blind title and hint.
func (s *service) View(ctx context.Context, userID int64, courseID string) (*CourseView, error) {
	c, err := s.repo.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	state, err := s.repo.GetUserState(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.repo.GetUnlockedStops(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	return buildView(c, state.Mode, unlocked), nil
}

func buildView(c *Course, mode Mode, unlocked map[int]bool) *CourseView {
	view := *c
	view.Stops = make(Stops, len(c.Stops))

	for i, stop := range c.Stops {
		stop.IsUnlocked = stop.IsUnlocked || unlocked[stop.Order]
		if mode == ModeBlind && !stop.IsUnlocked {
			stop.Place = maskPlace(stop.Place)
			stop.Alternatives = []Place{}
		}
		view.Stops[i] = stop
	}

	if mode == ModeBlind {
		view.Title = c.BlindTitle
		view.Description = c.BlindSubtitle
	}

	if mode == "" {
		mode = ModeStandard
	}
	return &CourseView{Course: &view, Mode: mode}
}

func maskPlace(p Place) Place {
	return Place{
		ID:            p.ID,
		Name:          p.BlindTitle,
		Category:      p.Category,
		ImageURLs:     []string{},
		Description:   p.BlindHint,
		EstimatedTime: p.EstimatedTime,
		BlindHint:     p.BlindHint,
		BlindTitle:    p.BlindTitle,
	}
}

func (s *service) Generate(ctx context.Context, userID int64, req *GenerateRequest) (*Course, error) {
	if s.generator == nil {
		return nil, ErrGeneratorUnavailable
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	start := time.Now()
	c, err := s.generator.GenerateCourse(ctx, req, profile)
	if err != nil {
		RecordGeneration("error", time.Since(start))
		log.Printf("❌ Course generation failed for user %d: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	c.CreatedBy = &userID
	created, err := s.Add(ctx, c)
	if errors.Is(err, ErrInvalidCourse) {
		RecordGeneration("invalid", time.Since(start))
		log.Printf("❌ Generated course rejected for user %d: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if err != nil {
		return nil, err
	}
	RecordGeneration("success", time.Since(start))

	if err := s.repo.SetActiveCourse(ctx, userID, created.ID); err != nil {
		return nil, fmt.Errorf("failed to activate generated course: %w", err)
	}

	return created, nil
}

func (s *service) Transit(ctx context.Context, courseID string) (*TransitPlanResponse, error) {
	c, err := s.repo.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	stops := make([]transit.Stop, len(c.Stops))
	for i, stop := range c.Stops {
		stops[i] = transit.Stop{
			Name:      stop.Place.Name,
			Latitude:  stop.Place.Latitude,
			Longitude: stop.Place.Longitude,
		}
	}

	legs := transit.Plan(stops)
	total := 0
	for _, leg := range legs {
		total += leg.TotalMinutes
	}

	return &TransitPlanResponse{
		CourseID:     c.ID,
		Legs:         legs,
		TotalMinutes: total,
	}, nil
}
