// internal/chat/repository.go

package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// TMIEnabled defaults to false for users without a settings row
	TMIEnabled(ctx context.Context, userID int64) (bool, error)
	ToggleTMI(ctx context.Context, userID int64) (bool, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) TMIEnabled(ctx context.Context, userID int64) (bool, error) {
	var enabled bool
	err := r.db.GetContext(ctx, &enabled, `SELECT tmi_enabled FROM chat_settings WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get chat settings: %w", err)
	}
	return enabled, nil
}

func (r *postgresRepository) ToggleTMI(ctx context.Context, userID int64) (bool, error) {
	var enabled bool
	err := r.db.GetContext(ctx, &enabled, `
		INSERT INTO chat_settings (user_id, tmi_enabled) VALUES ($1, TRUE)
		ON CONFLICT (user_id) DO UPDATE SET
			tmi_enabled = NOT chat_settings.tmi_enabled, updated_at = CURRENT_TIMESTAMP
		RETURNING tmi_enabled`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle TMI: %w", err)
	}
	return enabled, nil
}
