package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"movie-discovery-llm-recommender/internal/config"
)

// NewPostgres creates a new PostgreSQL connection and runs migrations.
func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Migrations returns the schema statements in execution order.
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			favorite_genres TEXT[] NOT NULL DEFAULT '{}',
			favorite_media TEXT,
			created_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS tmdb (
			id INTEGER PRIMARY KEY,
			title VARCHAR(500) NOT NULL,
			poster_url TEXT,
			overview TEXT,
			release_date DATE,
			genre_ids INTEGER[] NOT NULL DEFAULT '{}',
			popularity DOUBLE PRECISION DEFAULT 0,
			vote_average DOUBLE PRECISION DEFAULT 0,
			media_type VARCHAR(10) NOT NULL DEFAULT 'movie',
			platforms TEXT[] NOT NULL DEFAULT '{}',
			trailer_url TEXT,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS seen_items (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			tmdb_id INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT NOW(),
			UNIQUE(user_id, tmdb_id)
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			tmdb_id INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT NOW(),
			UNIQUE(user_id, tmdb_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			tmdb_id INTEGER NOT NULL,
			rating NUMERIC(2,1) NOT NULL CHECK (rating >= 0.5 AND rating <= 5),
			comment TEXT,
			created_at TIMESTAMP DEFAULT NOW(),
			UNIQUE(user_id, tmdb_id)
		)`,
		`CREATE TABLE IF NOT EXISTS wishlist (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			tmdb_id INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT NOW(),
			UNIQUE(user_id, tmdb_id)
		)`,
		`CREATE TABLE IF NOT EXISTS recommendations (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			tmdb_id INTEGER NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_user_created ON recommendations(user_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS activity_logs (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			action VARCHAR(50) NOT NULL,
			tmdb_id INTEGER,
			details TEXT,
			created_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_logs_user ON activity_logs(user_id)`,
	}
}

func runMigrations(db *sql.DB) error {
	for _, m := range Migrations() {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
