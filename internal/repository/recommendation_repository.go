package repository

import (
	"context"
	"database/sql"
	"fmt"

	"movie-discovery-llm-recommender/internal/models"
)

type RecommendationRepository struct {
	db *sql.DB
}

func NewRecommendationRepository(db *sql.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

const recommendationSelect = `
	SELECT r.id, r.user_id, r.tmdb_id, r.reason, r.created_at, ` + catalogColumns + `
	FROM recommendations r
	LEFT JOIN tmdb t ON t.id = r.tmdb_id
	WHERE r.user_id = $1
	ORDER BY r.created_at DESC`

// FindLatestByUser returns the user's most recent recommendations, newest first.
func (r *RecommendationRepository) FindLatestByUser(ctx context.Context, userID string, limit int) ([]models.Recommendation, error) {
	return r.query(ctx, recommendationSelect+` LIMIT $2`, userID, limit)
}

// FindAllByUser returns every recommendation ever made to the user, newest first.
func (r *RecommendationRepository) FindAllByUser(ctx context.Context, userID string) ([]models.Recommendation, error) {
	return r.query(ctx, recommendationSelect, userID)
}

// FindPageByUser returns one page of the user's history and the total count.
func (r *RecommendationRepository) FindPageByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Recommendation, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recommendations WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count recommendations: %w", err)
	}

	offset := (page - 1) * pageSize
	recs, err := r.query(ctx, recommendationSelect+` LIMIT $2 OFFSET $3`, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

// Save inserts a new recommendation row.
func (r *RecommendationRepository) Save(ctx context.Context, rec *models.Recommendation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recommendations (id, user_id, tmdb_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, rec.UserID, rec.CatalogID, rec.Reason, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert recommendation: %w", translateError(err))
	}
	return nil
}

func (r *RecommendationRepository) query(ctx context.Context, q string, args ...any) ([]models.Recommendation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []models.Recommendation
	for rows.Next() {
		var (
			rec models.Recommendation
			cr  catalogRow
		)
		dest := append([]any{&rec.ID, &rec.UserID, &rec.CatalogID, &rec.Reason, &rec.CreatedAt}, cr.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		rec.Item = cr.item()
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
