package repository

import (
	"context"
	"database/sql"
	"fmt"

	"movie-discovery-llm-recommender/internal/models"
)

// HistoryRepository reads the user's interaction tables, oldest entry first,
// each joined with the cached catalog metadata.
type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) GetSeenItems(ctx context.Context, userID string) ([]models.HistoryItem, error) {
	return r.list(ctx, "seen_items", userID)
}

func (r *HistoryRepository) GetFavorites(ctx context.Context, userID string) ([]models.HistoryItem, error) {
	return r.list(ctx, "favorites", userID)
}

func (r *HistoryRepository) GetWishlist(ctx context.Context, userID string) ([]models.HistoryItem, error) {
	return r.list(ctx, "wishlist", userID)
}

func (r *HistoryRepository) GetRatings(ctx context.Context, userID string) ([]models.HistoryItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT h.user_id, h.tmdb_id, h.rating::float8, COALESCE(h.comment, ''), h.created_at, `+catalogColumns+`
		FROM ratings h
		LEFT JOIN tmdb t ON t.id = h.tmdb_id
		WHERE h.user_id = $1
		ORDER BY h.created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var items []models.HistoryItem
	for rows.Next() {
		var (
			h  models.HistoryItem
			cr catalogRow
		)
		dest := append([]any{&h.UserID, &h.CatalogID, &h.Rating, &h.Comment, &h.CreatedAt}, cr.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		h.Item = cr.item()
		items = append(items, h)
	}
	return items, rows.Err()
}

// list reads one of the id-only history tables. table is never user input.
func (r *HistoryRepository) list(ctx context.Context, table, userID string) ([]models.HistoryItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT h.user_id, h.tmdb_id, h.created_at, `+catalogColumns+`
		FROM `+table+` h
		LEFT JOIN tmdb t ON t.id = h.tmdb_id
		WHERE h.user_id = $1
		ORDER BY h.created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var items []models.HistoryItem
	for rows.Next() {
		var (
			h  models.HistoryItem
			cr catalogRow
		)
		dest := append([]any{&h.UserID, &h.CatalogID, &h.CreatedAt}, cr.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		h.Item = cr.item()
		items = append(items, h)
	}
	return items, rows.Err()
}
