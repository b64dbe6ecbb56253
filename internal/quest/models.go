// internal/quest/models.go

package quest

import "time"

// Mission is a photo task at one stop of the quest's course
type Mission struct {
	ID          string     `json:"id" db:"id"`
	QuestID     string     `json:"quest_id" db:"quest_id"`
	PlaceID     string     `json:"place_id" db:"place_id"`
	PlaceName   string     `json:"place_name" db:"place_name"`
	Description string     `json:"description" db:"description"`
	Position    int        `json:"position" db:"position"`
	IsCompleted bool       `json:"is_completed" db:"is_completed"`
	PhotoURL    *string    `json:"photo_url" db:"photo_url"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// Quest walks a user through one course. A user has at most one active quest.
type Quest struct {
	ID          string     `json:"id" db:"id"`
	UserID      int64      `json:"user_id" db:"user_id"`
	CourseID    string     `json:"course_id" db:"course_id"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	StartedAt   time.Time  `json:"started_at" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	Missions    []*Mission `json:"missions" db:"-"`
}

// Remaining counts missions still open
func (q *Quest) Remaining() int {
	n := 0
	for _, m := range q.Missions {
		if !m.IsCompleted {
			n++
		}
	}
	return n
}

// IsFinished reports whether every mission has been completed
func (q *Quest) IsFinished() bool {
	return len(q.Missions) > 0 && q.Remaining() == 0
}

// Stats are the lifetime counters shown on the profile screen
type Stats struct {
	UserID           int64 `json:"user_id" db:"user_id"`
	CompletedCourses int   `json:"completed_courses" db:"completed_courses"`
	VisitedPlaces    int   `json:"visited_places" db:"visited_places"`
	ShortForms       int   `json:"short_forms" db:"short_forms"`
}

// ActiveResponse is the quest screen payload
type ActiveResponse struct {
	Enabled bool   `json:"enabled"`
	Quest   *Quest `json:"quest"`
}

type StartQuestRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

type ToggleResponse struct {
	Enabled bool `json:"enabled"`
}

// CompleteMissionResponse reports the mission and whether the quest just finished
type CompleteMissionResponse struct {
	Quest    *Quest `json:"quest"`
	Finished bool   `json:"finished"`
}

func questID(courseID string) string {
	return "quest-" + courseID
}
