// internal/quest/service.go

package quest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/imadgeboyega/datemate-backend/internal/course"
)

var (
	ErrNoActiveQuest    = errors.New("no active quest")
	ErrQuestDisabled    = errors.New("quest mode is turned off")
	ErrMissionNotFound  = errors.New("mission not found")
	ErrMissionCompleted = errors.New("mission already completed")
	ErrPhotoRequired    = errors.New("proof photo is required")
)

// CourseSource looks up the course a quest is started for
type CourseSource interface {
	Get(ctx context.Context, id string) (*course.Course, error)
}

type Service interface {
	Active(ctx context.Context, userID int64) (*ActiveResponse, error)
	Start(ctx context.Context, userID int64, courseID string) (*Quest, error)
	Toggle(ctx context.Context, userID int64) (bool, error)
	CompleteMission(ctx context.Context, userID int64, missionID string, photo *Photo) (*CompleteMissionResponse, error)
	Stats(ctx context.Context, userID int64) (*Stats, error)
}

type service struct {
	repo    Repository
	courses CourseSource
	photos  PhotoStore
	now     func() time.Time
}

func NewService(repo Repository, courses CourseSource, photos PhotoStore) Service {
	return &service{
		repo:    repo,
		courses: courses,
		photos:  photos,
		now:     time.Now,
	}
}

func (s *service) Active(ctx context.Context, userID int64) (*ActiveResponse, error) {
	enabled, err := s.repo.IsEnabled(ctx, userID)
	if err != nil {
		return nil, err
	}

	q, err := s.repo.GetActiveQuest(ctx, userID)
	if err != nil && !errors.Is(err, ErrNoActiveQuest) {
		return nil, err
	}

	return &ActiveResponse{Enabled: enabled, Quest: q}, nil
}

// Start builds one mission per stop. Stops without a curated mission get a
// photo-at-the-place default.
func (s *service) Start(ctx context.Context, userID int64, courseID string) (*Quest, error) {
	enabled, err := s.repo.IsEnabled(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, ErrQuestDisabled
	}

	c, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	q := &Quest{
		ID:        questID(c.ID),
		UserID:    userID,
		CourseID:  c.ID,
		IsActive:  true,
		StartedAt: s.now().UTC(),
		Missions:  make([]*Mission, 0, len(c.Stops)),
	}
	for _, stop := range c.Stops {
		q.Missions = append(q.Missions, missionForStop(q.ID, c.ID, stop))
	}

	if err := s.repo.StartQuest(ctx, q); err != nil {
		return nil, err
	}

	RecordQuestStarted()
	log.Printf("✅ Quest %s started for user %d (%d missions)", q.ID, userID, len(q.Missions))
	return q, nil
}

func missionForStop(questID, courseID string, stop course.Stop) *Mission {
	m := &Mission{
		ID:          fmt.Sprintf("%s-m%d", courseID, stop.Order),
		QuestID:     questID,
		PlaceID:     stop.Place.ID,
		PlaceName:   stop.Place.Name,
		Description: fmt.Sprintf("%s에서 인증샷 남기기", stop.Place.Name),
		Position:    stop.Order,
	}
	if qm := stop.QuestMission; qm != nil {
		if qm.ID != "" {
			m.ID = qm.ID
		}
		if qm.Description != "" {
			m.Description = qm.Description
		}
	}
	return m
}

func (s *service) Toggle(ctx context.Context, userID int64) (bool, error) {
	return s.repo.ToggleEnabled(ctx, userID)
}

func (s *service) CompleteMission(ctx context.Context, userID int64, missionID string, photo *Photo) (*CompleteMissionResponse, error) {
	if photo == nil || photo.Body == nil {
		return nil, ErrPhotoRequired
	}

	q, err := s.repo.GetActiveQuest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !hasOpenMission(q, missionID) {
		if hasMission(q, missionID) {
			return nil, ErrMissionCompleted
		}
		return nil, ErrMissionNotFound
	}

	url, err := s.photos.Save(ctx, fmt.Sprintf("quests/%d/%s", userID, q.ID), *photo)
	if err != nil {
		RecordMissionCompleted("upload_failed")
		return nil, err
	}

	updated, err := s.repo.CompleteMission(ctx, userID, missionID, url, s.now().UTC())
	if err != nil {
		if delErr := s.photos.Delete(ctx, url); delErr != nil {
			log.Printf("⚠️  Failed to remove orphaned photo %s: %v", url, delErr)
		}
		RecordMissionCompleted("error")
		return nil, err
	}
	RecordMissionCompleted("success")

	finished := !updated.IsActive
	if finished {
		RecordQuestFinished()
		log.Printf("🏁 Quest %s finished by user %d", updated.ID, userID)
	}

	return &CompleteMissionResponse{Quest: updated, Finished: finished}, nil
}

func hasMission(q *Quest, missionID string) bool {
	for _, m := range q.Missions {
		if m.ID == missionID {
			return true
		}
	}
	return false
}

func hasOpenMission(q *Quest, missionID string) bool {
	for _, m := range q.Missions {
		if m.ID == missionID {
			return !m.IsCompleted
		}
	}
	return false
}

func (s *service) Stats(ctx context.Context, userID int64) (*Stats, error) {
	return s.repo.GetStats(ctx, userID)
}
