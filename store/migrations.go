package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables on startup when they do not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS challenges (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT 'target',
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			frequency TEXT NOT NULL DEFAULT 'daily',
			subtasks JSONB NOT NULL DEFAULT '[]',
			status TEXT NOT NULL DEFAULT 'active',
			current_streak INT NOT NULL DEFAULT 0,
			best_streak INT NOT NULL DEFAULT 0,
			reminder_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			reminder_time TEXT NOT NULL DEFAULT '09:00',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT challenges_dates CHECK (end_date >= start_date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_challenges_user ON challenges (user_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS daily_logs (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			challenge_id UUID NOT NULL,
			date DATE NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			completed_subtasks TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT daily_logs_one_per_day UNIQUE (challenge_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_logs_challenge ON daily_logs (challenge_id, date)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			color TEXT NOT NULL DEFAULT '#3B82F6',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT categories_name_per_user UNIQUE (user_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS user_settings (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			default_reminder_time TEXT NOT NULL DEFAULT '09:00',
			theme TEXT NOT NULL DEFAULT 'light',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
