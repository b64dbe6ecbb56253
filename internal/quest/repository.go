// internal/quest/repository.go

package quest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	IsEnabled(ctx context.Context, userID int64) (bool, error)
	ToggleEnabled(ctx context.Context, userID int64) (bool, error)

	// StartQuest deactivates any other quest of the user and (re)creates q
	StartQuest(ctx context.Context, q *Quest) error
	GetActiveQuest(ctx context.Context, userID int64) (*Quest, error)
	// CompleteMission marks the mission done. When it was the last open
	// mission the quest is closed and the user's stats are bumped in the
	// same transaction.
	CompleteMission(ctx context.Context, userID int64, missionID, photoURL string, at time.Time) (*Quest, error)

	GetStats(ctx context.Context, userID int64) (*Stats, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) IsEnabled(ctx context.Context, userID int64) (bool, error) {
	var enabled bool
	err := r.db.GetContext(ctx, &enabled, `SELECT enabled FROM quest_settings WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get quest settings: %w", err)
	}
	return enabled, nil
}

func (r *postgresRepository) ToggleEnabled(ctx context.Context, userID int64) (bool, error) {
	var enabled bool
	err := r.db.GetContext(ctx, &enabled, `
		INSERT INTO quest_settings (user_id, enabled) VALUES ($1, FALSE)
		ON CONFLICT (user_id) DO UPDATE SET enabled = NOT quest_settings.enabled
		RETURNING enabled`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle quest mode: %w", err)
	}
	return enabled, nil
}

func (r *postgresRepository) StartQuest(ctx context.Context, q *Quest) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE quests SET is_active = FALSE WHERE user_id = $1 AND is_active`, q.UserID); err != nil {
		return fmt.Errorf("failed to deactivate quests: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO quests (user_id, id, course_id, is_active, started_at, completed_at)
		VALUES ($1, $2, $3, TRUE, $4, NULL)
		ON CONFLICT (user_id, id) DO UPDATE SET
			is_active = TRUE, started_at = EXCLUDED.started_at, completed_at = NULL`,
		q.UserID, q.ID, q.CourseID, q.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create quest: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM quest_missions WHERE user_id = $1 AND quest_id = $2`, q.UserID, q.ID); err != nil {
		return fmt.Errorf("failed to clear missions: %w", err)
	}

	for _, m := range q.Missions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO quest_missions (user_id, quest_id, id, place_id, place_name, description, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			q.UserID, q.ID, m.ID, m.PlaceID, m.PlaceName, m.Description, m.Position)
		if err != nil {
			return fmt.Errorf("failed to create mission: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepository) GetActiveQuest(ctx context.Context, userID int64) (*Quest, error) {
	return r.activeQuest(ctx, r.db, userID)
}

func (r *postgresRepository) activeQuest(ctx context.Context, q sqlx.QueryerContext, userID int64) (*Quest, error) {
	var quest Quest
	err := sqlx.GetContext(ctx, q, &quest, `
		SELECT id, user_id, course_id, is_active, started_at, completed_at
		FROM quests WHERE user_id = $1 AND is_active`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoActiveQuest
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active quest: %w", err)
	}

	err = sqlx.SelectContext(ctx, q, &quest.Missions, `
		SELECT id, quest_id, place_id, place_name, description, position, is_completed, photo_url, completed_at
		FROM quest_missions WHERE user_id = $1 AND quest_id = $2
		ORDER BY position`, userID, quest.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get missions: %w", err)
	}
	return &quest, nil
}

func (r *postgresRepository) CompleteMission(ctx context.Context, userID int64, missionID, photoURL string, at time.Time) (*Quest, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var completed bool
	err = tx.GetContext(ctx, &completed, `
		SELECT m.is_completed FROM quest_missions m
		JOIN quests q ON q.user_id = m.user_id AND q.id = m.quest_id
		WHERE m.user_id = $1 AND m.id = $2 AND q.is_active
		FOR UPDATE OF m`, userID, missionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock mission: %w", err)
	}
	if completed {
		return nil, ErrMissionCompleted
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE quest_missions m SET is_completed = TRUE, photo_url = $3, completed_at = $4
		FROM quests q
		WHERE q.user_id = m.user_id AND q.id = m.quest_id AND q.is_active
		  AND m.user_id = $1 AND m.id = $2`, userID, missionID, photoURL, at)
	if err != nil {
		return nil, fmt.Errorf("failed to complete mission: %w", err)
	}

	quest, err := r.activeQuest(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if quest.IsFinished() {
		_, err = tx.ExecContext(ctx, `
			UPDATE quests SET is_active = FALSE, completed_at = $3
			WHERE user_id = $1 AND id = $2`, userID, quest.ID, at)
		if err != nil {
			return nil, fmt.Errorf("failed to finish quest: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO quest_stats (user_id, completed_courses, visited_places, short_forms)
			VALUES ($1, 1, $2, 1)
			ON CONFLICT (user_id) DO UPDATE SET
				completed_courses = quest_stats.completed_courses + 1,
				visited_places = quest_stats.visited_places + EXCLUDED.visited_places,
				short_forms = quest_stats.short_forms + 1`,
			userID, len(quest.Missions))
		if err != nil {
			return nil, fmt.Errorf("failed to update quest stats: %w", err)
		}

		quest.IsActive = false
		quest.CompletedAt = &at
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return quest, nil
}

func (r *postgresRepository) GetStats(ctx context.Context, userID int64) (*Stats, error) {
	stats := Stats{UserID: userID}
	err := r.db.GetContext(ctx, &stats, `
		SELECT user_id, completed_courses, visited_places, short_forms
		FROM quest_stats WHERE user_id = $1`, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get quest stats: %w", err)
	}
	return &stats, nil
}
