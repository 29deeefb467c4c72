package repository

import (
	"context"
	"database/sql"
	"fmt"

	"movie-discovery-llm-recommender/internal/models"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log appends an audit entry.
func (r *ActivityRepository) Log(ctx context.Context, entry models.ActivityLogEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_logs (user_id, action, tmdb_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.UserID, entry.Action, entry.CatalogID, entry.Details, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}
