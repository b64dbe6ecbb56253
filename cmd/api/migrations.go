// cmd/api/migrations.go

package main

import (
	"database/sql"
	"fmt"
	"log"
)

var migrations = []string{
	// Users and sessions
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token TEXT UNIQUE NOT NULL,
		refresh_token TEXT UNIQUE NOT NULL,
		ip_address VARCHAR(45),
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`,

	// Onboarding profile
	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		date_type VARCHAR(20) NOT NULL DEFAULT '',
		mbti VARCHAR(4) NOT NULL DEFAULT '',
		birthday TEXT NOT NULL DEFAULT '',
		city VARCHAR(50) NOT NULL DEFAULT '',
		district VARCHAR(50) NOT NULL DEFAULT '',
		liked_tags TEXT[] NOT NULL DEFAULT '{}',
		disliked_tags TEXT[] NOT NULL DEFAULT '{}',
		balance_answers JSONB NOT NULL DEFAULT '{}',
		selected_vibe VARCHAR(20) NOT NULL DEFAULT '',
		is_complete BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`,

	// Courses
	`CREATE TABLE IF NOT EXISTS courses (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		blind_title TEXT NOT NULL DEFAULT '',
		blind_subtitle TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		tags TEXT[] NOT NULL DEFAULT '{}',
		hero_image_url TEXT NOT NULL DEFAULT '',
		total_duration INTEGER NOT NULL DEFAULT 0,
		total_distance DOUBLE PRECISION NOT NULL DEFAULT 0,
		stops JSONB NOT NULL DEFAULT '[]',
		vibe VARCHAR(20) NOT NULL DEFAULT '',
		date_type VARCHAR(20) NOT NULL DEFAULT '',
		region VARCHAR(50) NOT NULL DEFAULT '',
		created_by BIGINT REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS course_user_state (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		active_course_id TEXT REFERENCES courses(id) ON DELETE SET NULL,
		mode VARCHAR(20) NOT NULL DEFAULT 'standard',
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS course_unlocks (
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		course_id TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		stop_order INTEGER NOT NULL,
		unlocked_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, course_id, stop_order)
	)`,

	// Quests
	`CREATE TABLE IF NOT EXISTS quest_settings (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		enabled BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS quests (
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		id TEXT NOT NULL,
		course_id TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		started_at TIMESTAMP WITH TIME ZONE NOT NULL,
		completed_at TIMESTAMP WITH TIME ZONE,
		PRIMARY KEY (user_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS quest_missions (
		user_id BIGINT NOT NULL,
		quest_id TEXT NOT NULL,
		id TEXT NOT NULL,
		place_id TEXT NOT NULL,
		place_name TEXT NOT NULL,
		description TEXT NOT NULL,
		position INTEGER NOT NULL,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		photo_url TEXT,
		completed_at TIMESTAMP WITH TIME ZONE,
		PRIMARY KEY (user_id, quest_id, id),
		FOREIGN KEY (user_id, quest_id) REFERENCES quests(user_id, id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS quest_stats (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		completed_courses INTEGER NOT NULL DEFAULT 0,
		visited_places INTEGER NOT NULL DEFAULT 0,
		short_forms INTEGER NOT NULL DEFAULT 0
	)`,

	// Chat
	`CREATE TABLE IF NOT EXISTS chat_settings (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		tmi_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`,

	// Indexes
	`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_created ON courses(created_at DESC)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_quests_one_active ON quests(user_id) WHERE is_active`,
}

// runMigrations creates the schema if it does not exist yet
func runMigrations(db *sql.DB) error {
	log.Println("   - Creating/updating tables...")

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Printf("   ✅ %d migrations executed successfully", len(migrations))
	return nil
}
