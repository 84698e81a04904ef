// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL and pings it. Schema changes are applied
// separately by Migrate.
func Open(ctx context.Context, connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &DB{sql: s}, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

var schema = []string{
	"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL DEFAULT '', created_at TIMESTAMPTZ NOT NULL);",
	"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, user_agent TEXT NOT NULL DEFAULT '', ip TEXT NOT NULL DEFAULT '', expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
	"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		height_cm DOUBLE PRECISION CHECK (height_cm BETWEEN 30 AND 244),
		gender TEXT NOT NULL DEFAULT '' CHECK (gender IN ('', 'male', 'female')),
		date_of_birth DATE,
		weight_unit TEXT NOT NULL DEFAULT 'lbs' CHECK (weight_unit IN ('kg', 'lbs')),
		height_unit TEXT NOT NULL DEFAULT 'in' CHECK (height_unit IN ('cm', 'in')),
		updated_at TIMESTAMPTZ NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS body_metrics (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		day DATE NOT NULL,
		weight DOUBLE PRECISION NOT NULL CHECK (weight > 0),
		weight_unit TEXT NOT NULL CHECK (weight_unit IN ('kg', 'lbs')),
		body_fat_percentage DOUBLE PRECISION CHECK (body_fat_percentage BETWEEN 0 AND 70),
		body_fat_method TEXT NOT NULL DEFAULT '',
		lean_body_mass DOUBLE PRECISION,
		ffmi DOUBLE PRECISION,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);`,
	"CREATE INDEX IF NOT EXISTS idx_body_metrics_user_day ON body_metrics(user_id, day);",
	`CREATE TABLE IF NOT EXISTS progress_photos (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		day DATE NOT NULL,
		photo_url TEXT NOT NULL,
		view_type TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);`,
	"CREATE INDEX IF NOT EXISTS idx_progress_photos_user_day ON progress_photos(user_id, day);",
}

// Migrate creates any missing tables and indexes.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	log.Infof("postgres schema up to date (%d statements)", len(schema))
	return nil
}
