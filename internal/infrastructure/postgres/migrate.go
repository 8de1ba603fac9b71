package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		telegram_id BIGINT PRIMARY KEY,
		username    TEXT NOT NULL DEFAULT '',
		first_name  TEXT NOT NULL DEFAULT '',
		last_name   TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT NOT NULL REFERENCES users (telegram_id),
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT NOT NULL REFERENCES users (telegram_id),
		description TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'Pending',
		due_date    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS weather_preferences (
		user_id  BIGINT PRIMARY KEY REFERENCES users (telegram_id),
		location TEXT NOT NULL,
		at_time  TEXT NOT NULL DEFAULT '08:00'
	)`,
}

// Migrate brings the schema up to date. Statements are idempotent, so
// running this on every startup is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
