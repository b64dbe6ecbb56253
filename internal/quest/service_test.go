package quest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/imadgeboyega/datemate-backend/internal/course"
)

type fakeRepository struct {
	mu       sync.Mutex
	disabled map[int64]bool
	quests   map[int64]*Quest
	stats    map[int64]*Stats
	failNext error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		disabled: make(map[int64]bool),
		quests:   make(map[int64]*Quest),
		stats:    make(map[int64]*Stats),
	}
}

func cloneQuest(q *Quest) *Quest {
	copied := *q
	copied.Missions = make([]*Mission, len(q.Missions))
	for i, m := range q.Missions {
		mc := *m
		copied.Missions[i] = &mc
	}
	return &copied
}

func (f *fakeRepository) IsEnabled(ctx context.Context, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.disabled[userID], nil
}

func (f *fakeRepository) ToggleEnabled(ctx context.Context, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disabled[userID] = !f.disabled[userID]
	return !f.disabled[userID], nil
}

func (f *fakeRepository) StartQuest(ctx context.Context, q *Quest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quests[q.UserID] = cloneQuest(q)
	return nil
}

func (f *fakeRepository) GetActiveQuest(ctx context.Context, userID int64) (*Quest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quests[userID]
	if !ok || !q.IsActive {
		return nil, ErrNoActiveQuest
	}
	return cloneQuest(q), nil
}

func (f *fakeRepository) CompleteMission(ctx context.Context, userID int64, missionID, photoURL string, at time.Time) (*Quest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failNext; err != nil {
		f.failNext = nil
		return nil, err
	}

	q, ok := f.quests[userID]
	if !ok || !q.IsActive {
		return nil, ErrNoActiveQuest
	}
	for _, m := range q.Missions {
		if m.ID != missionID {
			continue
		}
		if m.IsCompleted {
			return nil, ErrMissionCompleted
		}
		url := photoURL
		m.IsCompleted, m.PhotoURL, m.CompletedAt = true, &url, &at
	}

	if q.IsFinished() {
		q.IsActive = false
		q.CompletedAt = &at
		s, ok := f.stats[userID]
		if !ok {
			s = &Stats{UserID: userID}
			f.stats[userID] = s
		}
		s.CompletedCourses++
		s.VisitedPlaces += len(q.Missions)
		s.ShortForms++
	}
	return cloneQuest(q), nil
}

func (f *fakeRepository) GetStats(ctx context.Context, userID int64) (*Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.stats[userID]; ok {
		copied := *s
		return &copied, nil
	}
	return &Stats{UserID: userID}, nil
}

type fakeCourses map[string]*course.Course

func (f fakeCourses) Get(ctx context.Context, id string) (*course.Course, error) {
	c, ok := f[id]
	if !ok {
		return nil, course.ErrCourseNotFound
	}
	return c, nil
}

type memoryPhotoStore struct {
	mu      sync.Mutex
	saved   map[string]string
	deleted []string
	n       int
}

func newMemoryPhotoStore() *memoryPhotoStore {
	return &memoryPhotoStore{saved: make(map[string]string)}
}

func (m *memoryPhotoStore) Save(ctx context.Context, folder string, photo Photo) (string, error) {
	if _, ok := allowedPhotoTypes[photo.ContentType]; !ok {
		return "", ErrUnsupportedPhoto
	}
	body, err := io.ReadAll(photo.Body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	url := fmt.Sprintf("https://cdn.test/%s/%d.jpg", folder, m.n)
	m.saved[url] = string(body)
	return url, nil
}

func (m *memoryPhotoStore) Delete(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saved, url)
	m.deleted = append(m.deleted, url)
	return nil
}

func sampleCourse() *course.Course {
	return &course.Course{
		ID:    "seongsu-emotional",
		Title: "성수 감성 투어",
		Stops: course.Stops{
			{Order: 1, Place: course.Place{ID: "p1", Name: "대림창고"}, QuestMission: &course.QuestMission{ID: "seongsu-emotional-m1", Description: "창고 벽화 앞에서 사진 찍기"}},
			{Order: 2, Place: course.Place{ID: "p2", Name: "서울숲"}},
		},
	}
}

func jpeg(body string) *Photo {
	return &Photo{Body: strings.NewReader(body), ContentType: "image/jpeg"}
}

func newTestService() (Service, *fakeRepository, *memoryPhotoStore) {
	repo := newFakeRepository()
	photos := newMemoryPhotoStore()
	c := sampleCourse()
	svc := NewService(repo, fakeCourses{c.ID: c}, photos)
	return svc, repo, photos
}

func TestStartBuildsMissionPerStop(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	q, err := svc.Start(ctx, 1, "seongsu-emotional")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if q.ID != "quest-seongsu-emotional" {
		t.Errorf("Expected quest-seongsu-emotional, got %s", q.ID)
	}
	if len(q.Missions) != 2 {
		t.Fatalf("Expected 2 missions, got %d", len(q.Missions))
	}
	if q.Missions[0].Description != "창고 벽화 앞에서 사진 찍기" {
		t.Errorf("Expected curated mission, got %q", q.Missions[0].Description)
	}
	if q.Missions[1].ID != "seongsu-emotional-m2" || q.Missions[1].Description != "서울숲에서 인증샷 남기기" {
		t.Errorf("Expected default mission, got %+v", q.Missions[1])
	}

	active, err := svc.Active(ctx, 1)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if !active.Enabled || active.Quest == nil || active.Quest.CourseID != "seongsu-emotional" {
		t.Errorf("Expected enabled active quest, got %+v", active)
	}
}

func TestStartErrors(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Start(ctx, 1, "missing"); !errors.Is(err, course.ErrCourseNotFound) {
		t.Errorf("Expected ErrCourseNotFound, got %v", err)
	}

	enabled, err := svc.Toggle(ctx, 1)
	if err != nil || enabled {
		t.Fatalf("Expected toggle to disable quest mode, got %v (%v)", enabled, err)
	}
	if _, err := svc.Start(ctx, 1, "seongsu-emotional"); !errors.Is(err, ErrQuestDisabled) {
		t.Errorf("Expected ErrQuestDisabled, got %v", err)
	}

	active, _ := svc.Active(ctx, 1)
	if active.Enabled || active.Quest != nil {
		t.Errorf("Expected disabled mode without quest, got %+v", active)
	}
}

func TestCompleteMissionFinishesQuest(t *testing.T) {
	svc, _, photos := newTestService()
	ctx := context.Background()
	svc.Start(ctx, 7, "seongsu-emotional")

	resp, err := svc.CompleteMission(ctx, 7, "seongsu-emotional-m1", jpeg("first"))
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.Finished || resp.Quest.Remaining() != 1 {
		t.Errorf("Expected one mission left, got %+v", resp)
	}
	if resp.Quest.Missions[0].PhotoURL == nil {
		t.Fatal("Expected photo URL on completed mission")
	}
	if photos.saved[*resp.Quest.Missions[0].PhotoURL] != "first" {
		t.Error("Expected photo to be stored")
	}

	if _, err := svc.CompleteMission(ctx, 7, "seongsu-emotional-m1", jpeg("again")); !errors.Is(err, ErrMissionCompleted) {
		t.Errorf("Expected ErrMissionCompleted, got %v", err)
	}

	resp, err = svc.CompleteMission(ctx, 7, "seongsu-emotional-m2", jpeg("second"))
	if err != nil {
		t.Fatalf("complete last: %v", err)
	}
	if !resp.Finished || resp.Quest.CompletedAt == nil {
		t.Errorf("Expected finished quest, got %+v", resp)
	}

	stats, _ := svc.Stats(ctx, 7)
	if stats.CompletedCourses != 1 || stats.VisitedPlaces != 2 || stats.ShortForms != 1 {
		t.Errorf("Expected stats 1/2/1, got %+v", stats)
	}

	if _, err := svc.CompleteMission(ctx, 7, "seongsu-emotional-m2", jpeg("late")); !errors.Is(err, ErrNoActiveQuest) {
		t.Errorf("Expected ErrNoActiveQuest after finishing, got %v", err)
	}
}

func TestCompleteMissionErrors(t *testing.T) {
	svc, repo, photos := newTestService()
	ctx := context.Background()
	svc.Start(ctx, 3, "seongsu-emotional")

	tests := []struct {
		name      string
		missionID string
		photo     *Photo
		wantErr   error
	}{
		{"no photo", "seongsu-emotional-m1", nil, ErrPhotoRequired},
		{"unknown mission", "other-m1", jpeg("x"), ErrMissionNotFound},
		{"unsupported type", "seongsu-emotional-m1", &Photo{Body: strings.NewReader("gif"), ContentType: "image/gif"}, ErrUnsupportedPhoto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CompleteMission(ctx, 3, tt.missionID, tt.photo)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	repo.failNext = errors.New("db down")
	if _, err := svc.CompleteMission(ctx, 3, "seongsu-emotional-m1", jpeg("orphan")); err == nil {
		t.Fatal("Expected repository failure")
	}
	if len(photos.deleted) != 1 || len(photos.saved) != 0 {
		t.Errorf("Expected orphaned photo to be deleted, saved=%v deleted=%v", photos.saved, photos.deleted)
	}

	if _, err := svc.CompleteMission(ctx, 99, "seongsu-emotional-m1", jpeg("x")); !errors.Is(err, ErrNoActiveQuest) {
		t.Errorf("Expected ErrNoActiveQuest, got %v", err)
	}
}

func TestQuestRemaining(t *testing.T) {
	q := &Quest{}
	if q.IsFinished() {
		t.Error("Expected quest without missions not to be finished")
	}

	q.Missions = []*Mission{{IsCompleted: true}, {IsCompleted: false}}
	if q.Remaining() != 1 || q.IsFinished() {
		t.Errorf("Expected 1 remaining, got %d", q.Remaining())
	}
}
