package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"movie-discovery-llm-recommender/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns the user's taste profile.
func (r *UserRepository) FindByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	var (
		profile models.UserProfile
		media   sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, favorite_genres, favorite_media FROM users WHERE id = $1
	`, userID).Scan(&profile.ID, pq.Array(&profile.FavoriteGenres), &media)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", userID, translateError(err))
	}
	profile.FavoriteMedia = media.String
	return &profile, nil
}
