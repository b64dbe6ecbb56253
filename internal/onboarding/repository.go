// internal/onboarding/repository.go

package onboarding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	// UpdateProfile loads the row under a lock (creating it if needed),
	// applies fn and writes the result back in one transaction.
	UpdateProfile(ctx context.Context, userID int64, fn func(p *Profile) error) (*Profile, error)
	DeleteProfile(ctx context.Context, userID int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const profileColumns = `
	user_id, date_type, mbti, birthday, city, district, liked_tags, disliked_tags,
	balance_answers, selected_vibe, is_complete, updated_at
`

func (r *postgresRepository) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	err := r.db.GetContext(ctx, &p, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, userID int64, fn func(p *Profile) error) (*Profile, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	var p Profile
	err = tx.GetContext(ctx, &p, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1 FOR UPDATE`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock profile: %w", err)
	}

	if err := fn(&p); err != nil {
		return nil, err
	}

	err = tx.QueryRowxContext(ctx, `
		UPDATE user_profiles SET
			date_type = $2, mbti = $3, birthday = $4, city = $5, district = $6,
			liked_tags = $7, disliked_tags = $8, balance_answers = $9,
			selected_vibe = $10, is_complete = $11, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1
		RETURNING updated_at`,
		p.UserID, p.DateType, p.MBTI, p.Birthday, p.City, p.District,
		p.LikedTags, p.DislikedTags, p.BalanceAnswers,
		p.SelectedVibe, p.IsComplete,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) DeleteProfile(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
