// internal/course/repository.go

package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository interface {
	// Courses
	ListCourses(ctx context.Context) ([]*Course, error)
	GetCourse(ctx context.Context, id string) (*Course, error)
	CreateCourse(ctx context.Context, c *Course) error
	CountCourses(ctx context.Context) (int, error)

	// Per-user state
	GetUserState(ctx context.Context, userID int64) (*UserState, error)
	SetMode(ctx context.Context, userID int64, mode Mode) error
	SetActiveCourse(ctx context.Context, userID int64, courseID string) error

	// Blind reveal
	UnlockStop(ctx context.Context, userID int64, courseID string, order int) error
	GetUnlockedStops(ctx context.Context, userID int64, courseID string) (map[int]bool, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const courseColumns = `
	id, title, blind_title, blind_subtitle, description, tags, hero_image_url,
	total_duration, total_distance, stops, vibe, date_type, region, created_by, created_at
`

func (r *postgresRepository) ListCourses(ctx context.Context) ([]*Course, error) {
	var courses []*Course
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at DESC, id`

	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (r *postgresRepository) GetCourse(ctx context.Context, id string) (*Course, error) {
	var c Course
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) CreateCourse(ctx context.Context, c *Course) error {
	query := `
		INSERT INTO courses (
			id, title, blind_title, blind_subtitle, description, tags, hero_image_url,
			total_duration, total_distance, stops, vibe, date_type, region, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		c.ID, c.Title, c.BlindTitle, c.BlindSubtitle, c.Description, pq.Array(c.Tags), c.HeroImageURL,
		c.TotalDuration, c.TotalDistance, c.Stops, c.Vibe, c.DateType, c.Region, c.CreatedBy, c.CreatedAt,
	)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return ErrCourseExists
		}
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

func (r *postgresRepository) CountCourses(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM courses`)
	return count, err
}

func (r *postgresRepository) GetUserState(ctx context.Context, userID int64) (*UserState, error) {
	state := UserState{UserID: userID, Mode: ModeStandard}
	query := `SELECT user_id, active_course_id, mode FROM course_user_state WHERE user_id = $1`

	err := r.db.GetContext(ctx, &state, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course state: %w", err)
	}
	return &state, nil
}

func (r *postgresRepository) SetMode(ctx context.Context, userID int64, mode Mode) error {
	query := `
		INSERT INTO course_user_state (user_id, mode, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE
		SET mode = EXCLUDED.mode, updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query, userID, mode)
	return err
}

func (r *postgresRepository) SetActiveCourse(ctx context.Context, userID int64, courseID string) error {
	query := `
		INSERT INTO course_user_state (user_id, active_course_id, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE
		SET active_course_id = EXCLUDED.active_course_id, updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query, userID, courseID)
	return err
}

func (r *postgresRepository) UnlockStop(ctx context.Context, userID int64, courseID string, order int) error {
	query := `
		INSERT INTO course_unlocks (user_id, course_id, stop_order)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, course_id, stop_order) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, userID, courseID, order)
	return err
}

func (r *postgresRepository) GetUnlockedStops(ctx context.Context, userID int64, courseID string) (map[int]bool, error) {
	var orders []int
	query := `SELECT stop_order FROM course_unlocks WHERE user_id = $1 AND course_id = $2`

	if err := r.db.SelectContext(ctx, &orders, query, userID, courseID); err != nil {
		return nil, fmt.Errorf("failed to get unlocked stops: %w", err)
	}

	unlocked := make(map[int]bool, len(orders))
	for _, order := range orders {
		unlocked[order] = true
	}
	return unlocked, nil
}
