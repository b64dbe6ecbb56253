package course

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/imadgeboyega/datemate-backend/internal/preference"
)

type fakeRepository struct {
	mu       sync.Mutex
	courses  map[string]*Course
	states   map[int64]*UserState
	unlocked map[string]map[int]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		courses:  make(map[string]*Course),
		states:   make(map[int64]*UserState),
		unlocked: make(map[string]map[int]bool),
	}
}

func (f *fakeRepository) ListCourses(ctx context.Context) ([]*Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]*Course, 0, len(f.courses))
	for _, c := range f.courses {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (f *fakeRepository) GetCourse(ctx context.Context, id string) (*Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok {
		return nil, ErrCourseNotFound
	}
	return c, nil
}

func (f *fakeRepository) CreateCourse(ctx context.Context, c *Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.courses[c.ID]; ok {
		return ErrCourseExists
	}
	f.courses[c.ID] = c
	return nil
}

func (f *fakeRepository) CountCourses(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.courses), nil
}

func (f *fakeRepository) state(userID int64) *UserState {
	s, ok := f.states[userID]
	if !ok {
		s = &UserState{UserID: userID, Mode: ModeStandard}
		f.states[userID] = s
	}
	return s
}

func (f *fakeRepository) GetUserState(ctx context.Context, userID int64) (*UserState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *f.state(userID)
	return &copied, nil
}

func (f *fakeRepository) SetMode(ctx context.Context, userID int64, mode Mode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state(userID).Mode = mode
	return nil
}

func (f *fakeRepository) SetActiveCourse(ctx context.Context, userID int64, courseID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := courseID
	f.state(userID).ActiveCourseID = &id
	return nil
}

func unlockKey(userID int64, courseID string) string {
	return fmt.Sprintf("%d/%s", userID, courseID)
}

func (f *fakeRepository) UnlockStop(ctx context.Context, userID int64, courseID string, order int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := unlockKey(userID, courseID)
	if f.unlocked[key] == nil {
		f.unlocked[key] = make(map[int]bool)
	}
	f.unlocked[key][order] = true
	return nil
}

func (f *fakeRepository) GetUnlockedStops(ctx context.Context, userID int64, courseID string) (map[int]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int]bool)
	for order := range f.unlocked[unlockKey(userID, courseID)] {
		out[order] = true
	}
	return out, nil
}

type fakeProfiles map[int64]preference.UserProfile

func (f fakeProfiles) GetProfile(ctx context.Context, userID int64) (preference.UserProfile, error) {
	return f[userID], nil
}

type fakeGenerator struct {
	course *Course
	err    error
	calls  int
}

func (g *fakeGenerator) GenerateCourse(ctx context.Context, req *GenerateRequest, profile preference.UserProfile) (*Course, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	copied := *g.course
	return &copied, nil
}

type countingCache struct {
	noopCache
	invalidations int
}

func (c *countingCache) InvalidateAll(ctx context.Context) {
	c.invalidations++
}

func seededService(t *testing.T, profiles fakeProfiles, gen Generator) (Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	if _, err := SeedSampleCourses(context.Background(), repo); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if profiles == nil {
		profiles = fakeProfiles{}
	}
	return NewService(repo, profiles, gen, nil), repo
}

func validCourse() *Course {
	return &Course{
		Title:    "테스트 코스",
		Vibe:     preference.VibeRomantic,
		DateType: preference.DateTypeCouple,
		Region:   "강남구",
		Stops: Stops{
			{Order: 1, Place: Place{Name: "카페", Latitude: 37.5, Longitude: 127.0}},
			{Order: 2, Place: Place{Name: "바", Latitude: 37.51, Longitude: 127.01}},
		},
	}
}

func TestSeedSampleCoursesOnlyOnce(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()

	n, err := SeedSampleCourses(ctx, repo)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != len(SampleCourses()) {
		t.Errorf("Expected %d seeded courses, got %d", len(SampleCourses()), n)
	}

	n, err = SeedSampleCourses(ctx, repo)
	if err != nil || n != 0 {
		t.Errorf("Expected second seed to be a no-op, got %d (%v)", n, err)
	}

	list, _ := repo.ListCourses(ctx)
	if list[0].ID != SampleCourses()[0].ID {
		t.Errorf("Expected sample order to be kept, got %s first", list[0].ID)
	}
}

func TestAddCourse(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	cache := &countingCache{}
	svc := NewService(repo, fakeProfiles{}, nil, cache)

	created, err := svc.Add(ctx, validCourse())
	if err != nil {
		t.Fatalf("Expected add to succeed, got %v", err)
	}
	if created.ID == "" || created.Stops[0].Place.ID == "" {
		t.Error("Expected IDs to be assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
	if cache.invalidations != 1 {
		t.Errorf("Expected cache invalidation, got %d", cache.invalidations)
	}

	second, err := svc.Add(ctx, validCourse())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	list, _ := svc.List(ctx)
	if list[0].ID != second.ID {
		t.Error("Expected the newest course to be listed first")
	}

	tests := []struct {
		name   string
		mutate func(c *Course)
	}{
		{"missing title", func(c *Course) { c.Title = "" }},
		{"no stops", func(c *Course) { c.Stops = nil }},
		{"gap in orders", func(c *Course) { c.Stops[1].Order = 3 }},
		{"zero order", func(c *Course) { c.Stops[0].Order = 0 }},
		{"unknown vibe", func(c *Course) { c.Vibe = "sleepy" }},
		{"unknown date type", func(c *Course) { c.DateType = "family" }},
		{"bad latitude", func(c *Course) { c.Stops[0].Place.Latitude = 120 }},
		{"rating over five", func(c *Course) { c.Stops[0].Place.Rating = 6 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCourse()
			tt.mutate(c)
			if _, err := svc.Add(ctx, c); !errors.Is(err, ErrInvalidCourse) {
				t.Errorf("Expected ErrInvalidCourse, got %v", err)
			}
		})
	}
}

func TestAddCourseStampsServerTime(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewService(repo, fakeProfiles{}, nil, nil).(*service)

	clock := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	first, err := svc.Add(ctx, validCourse())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	tests := []struct {
		name      string
		createdAt time.Time
	}{
		{"past timestamp", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"future timestamp", time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCourse()
			c.CreatedAt = tt.createdAt
			created, err := svc.Add(ctx, c)
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if !created.CreatedAt.Equal(clock) {
				t.Errorf("Expected created_at %v, got %v", clock, created.CreatedAt)
			}

			list, _ := svc.List(ctx)
			if list[0].ID != created.ID {
				t.Errorf("Expected %s listed first, got %s", created.ID, list[0].ID)
			}
			if list[len(list)-1].ID != first.ID {
				t.Errorf("Expected %s listed last, got %s", first.ID, list[len(list)-1].ID)
			}
		})
	}
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()
	profiles := fakeProfiles{
		1: {
			DateType:     preference.DateTypeCouple,
			SelectedVibe: preference.VibeHip,
			LikedTags:    []string{"t5", "t24"},
			MBTI:         "ENTP",
		},
	}
	svc, _ := seededService(t, profiles, nil)

	ranked, err := svc.Recommend(ctx, 1, nil)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(ranked) != len(SampleCourses()) {
		t.Fatalf("Expected every course ranked, got %d", len(ranked))
	}
	if ranked[0].ID != "euljiro-hip" {
		t.Errorf("Expected euljiro-hip first, got %s", ranked[0].ID)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Score < ranked[i].Score {
			t.Errorf("Expected descending scores, got %d before %d", ranked[i-1].Score, ranked[i].Score)
		}
	}
	if ranked[0].MatchPercent != GetMatchPercent(ranked[0].Course, profiles[1]) {
		t.Error("Expected match percent to agree with GetMatchPercent")
	}

	t.Run("filters", func(t *testing.T) {
		filtered, err := svc.Recommend(ctx, 1, &RecommendFilters{Vibe: preference.VibeChill})
		if err != nil {
			t.Fatalf("recommend: %v", err)
		}
		if len(filtered) != 1 || filtered[0].ID != "hangang-chill" {
			t.Errorf("Expected only hangang-chill, got %d courses", len(filtered))
		}
	})

	t.Run("limit", func(t *testing.T) {
		limited, _ := svc.Recommend(ctx, 1, &RecommendFilters{Limit: 2})
		if len(limited) != 2 {
			t.Errorf("Expected 2 courses, got %d", len(limited))
		}
	})

	t.Run("empty profile keeps catalogue order", func(t *testing.T) {
		ranked, _ := svc.Recommend(ctx, 99, nil)
		list, _ := svc.List(ctx)
		for i := range ranked {
			if ranked[i].ID != list[i].ID || ranked[i].Score != 0 {
				t.Errorf("Expected %s with score 0 at %d, got %s (%d)", list[i].ID, i, ranked[i].ID, ranked[i].Score)
			}
		}
	})
}

func TestSetModeAndBlindView(t *testing.T) {
	ctx := context.Background()
	svc, _ := seededService(t, nil, nil)

	if err := svc.SetMode(ctx, 1, "sideways"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("Expected ErrInvalidMode, got %v", err)
	}

	standard, err := svc.View(ctx, 1, "seongsu-emotional")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if standard.Mode != ModeStandard || standard.Stops[1].Place.Name != "서울숲" {
		t.Error("Expected standard mode to show real places")
	}

	if err := svc.SetMode(ctx, 1, ModeBlind); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	blind, err := svc.View(ctx, 1, "seongsu-emotional")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if blind.Title != "새로운 모험이 기다려요" {
		t.Errorf("Expected blind title, got %q", blind.Title)
	}
	if blind.Stops[0].Place.Name != "대림창고" {
		t.Error("Expected the unlocked first stop to stay visible")
	}
	if blind.Stops[1].Place.Name != "???" || blind.Stops[1].Place.Description != "초록빛 힐링 스팟" {
		t.Errorf("Expected locked stop to be masked, got %+v", blind.Stops[1].Place)
	}
	if blind.Stops[1].Place.Address != "" || blind.Stops[1].Place.Latitude != 0 {
		t.Error("Expected masked stop to hide its location")
	}

	stored, _ := svc.Get(ctx, "seongsu-emotional")
	if stored.Stops[1].Place.Name != "서울숲" {
		t.Error("Expected blind mode to leave stored course untouched")
	}

	other, _ := svc.View(ctx, 2, "seongsu-emotional")
	if other.Mode != ModeStandard {
		t.Error("Expected mode to be per user")
	}
}

func TestUnlockStop(t *testing.T) {
	ctx := context.Background()
	svc, _ := seededService(t, nil, nil)
	_ = svc.SetMode(ctx, 1, ModeBlind)

	view, err := svc.UnlockStop(ctx, 1, "seongsu-emotional", 2)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if !view.Stops[1].IsUnlocked || view.Stops[1].Place.Name != "서울숲" {
		t.Error("Expected stop 2 to be revealed")
	}
	if view.Stops[2].IsUnlocked {
		t.Error("Expected stop 3 to stay locked")
	}

	if _, err := svc.UnlockStop(ctx, 1, "seongsu-emotional", 9); !errors.Is(err, ErrStopNotFound) {
		t.Errorf("Expected ErrStopNotFound, got %v", err)
	}
	if _, err := svc.UnlockStop(ctx, 1, "missing", 1); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("Expected ErrCourseNotFound, got %v", err)
	}

	otherUser, _ := svc.View(ctx, 2, "seongsu-emotional")
	if otherUser.Stops[1].IsUnlocked {
		t.Error("Expected unlocks to be per user")
	}
}

func TestActiveCourse(t *testing.T) {
	ctx := context.Background()
	svc, _ := seededService(t, nil, nil)

	if _, err := svc.GetActiveCourse(ctx, 1); !errors.Is(err, ErrNoActiveCourse) {
		t.Errorf("Expected ErrNoActiveCourse, got %v", err)
	}
	if err := svc.SetActiveCourse(ctx, 1, "missing"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("Expected ErrCourseNotFound, got %v", err)
	}
	if err := svc.SetActiveCourse(ctx, 1, "hangang-chill"); err != nil {
		t.Fatalf("set active: %v", err)
	}

	active, err := svc.GetActiveCourse(ctx, 1)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active.ID != "hangang-chill" {
		t.Errorf("Expected hangang-chill, got %s", active.ID)
	}
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	req := &GenerateRequest{Region: "강남구"}

	t.Run("unavailable", func(t *testing.T) {
		svc, _ := seededService(t, nil, nil)
		if _, err := svc.Generate(ctx, 1, req); !errors.Is(err, ErrGeneratorUnavailable) {
			t.Errorf("Expected ErrGeneratorUnavailable, got %v", err)
		}
	})

	t.Run("failure", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("upstream 500")}
		svc, _ := seededService(t, nil, gen)
		if _, err := svc.Generate(ctx, 1, req); !errors.Is(err, ErrGenerationFailed) {
			t.Errorf("Expected ErrGenerationFailed, got %v", err)
		}
	})

	t.Run("unusable draft", func(t *testing.T) {
		draft := validCourse()
		draft.Stops[0].Place.Latitude, draft.Stops[0].Place.Longitude = 127.0, 37.5
		gen := &fakeGenerator{course: draft}
		svc, repo := seededService(t, nil, gen)
		before, _ := repo.CountCourses(ctx)

		_, err := svc.Generate(ctx, 1, req)
		if !errors.Is(err, ErrGenerationFailed) {
			t.Errorf("Expected ErrGenerationFailed, got %v", err)
		}
		if errors.Is(err, ErrInvalidCourse) {
			t.Error("Expected the draft error not to surface as a client error")
		}
		if after, _ := repo.CountCourses(ctx); after != before {
			t.Errorf("Expected no course stored, count went %d -> %d", before, after)
		}
	})

	t.Run("success", func(t *testing.T) {
		gen := &fakeGenerator{course: validCourse()}
		svc, _ := seededService(t, nil, gen)

		created, err := svc.Generate(ctx, 7, req)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if created.CreatedBy == nil || *created.CreatedBy != 7 {
			t.Error("Expected created_by to be the caller")
		}

		list, _ := svc.List(ctx)
		if list[0].ID != created.ID {
			t.Error("Expected generated course to be listed first")
		}

		active, err := svc.GetActiveCourse(ctx, 7)
		if err != nil || active.ID != created.ID {
			t.Errorf("Expected generated course to be active, got %v", err)
		}
	})
}

func TestTransitPlan(t *testing.T) {
	ctx := context.Background()
	svc, _ := seededService(t, nil, nil)

	plan, err := svc.Transit(ctx, "seongsu-emotional")
	if err != nil {
		t.Fatalf("transit: %v", err)
	}
	if len(plan.Legs) != 2 {
		t.Fatalf("Expected 2 legs for 3 stops, got %d", len(plan.Legs))
	}

	sum := 0
	for _, leg := range plan.Legs {
		if len(leg.Steps) == 0 {
			t.Error("Expected every leg to have steps")
		}
		sum += leg.TotalMinutes
	}
	if plan.TotalMinutes != sum {
		t.Errorf("Expected total %d, got %d", sum, plan.TotalMinutes)
	}

	if _, err := svc.Transit(ctx, "missing"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("Expected ErrCourseNotFound, got %v", err)
	}
}
