package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"movie-discovery-llm-recommender/internal/models"
)

// catalogColumns selects a LEFT JOINed tmdb row aliased as t.
const catalogColumns = `t.id, COALESCE(t.title, ''), COALESCE(t.poster_url, ''), COALESCE(t.overview, ''),
	COALESCE(TO_CHAR(t.release_date, 'YYYY-MM-DD'), ''), COALESCE(t.genre_ids, '{}'),
	COALESCE(t.popularity, 0), COALESCE(t.vote_average, 0), COALESCE(t.media_type, 'movie'),
	COALESCE(t.platforms, '{}'), COALESCE(t.trailer_url, '')`

// catalogRow receives catalogColumns; the item is absent when id is NULL.
type catalogRow struct {
	id          sql.NullInt64
	title       string
	posterURL   string
	overview    string
	releaseDate string
	genreIDs    pq.Int64Array
	popularity  float64
	voteAverage float64
	mediaType   string
	platforms   pq.StringArray
	trailerURL  string
}

func (r *catalogRow) dest() []any {
	return []any{
		&r.id, &r.title, &r.posterURL, &r.overview, &r.releaseDate, &r.genreIDs,
		&r.popularity, &r.voteAverage, &r.mediaType, &r.platforms, &r.trailerURL,
	}
}

func (r *catalogRow) item() *models.CatalogItem {
	if !r.id.Valid {
		return nil
	}
	genres := make([]int, len(r.genreIDs))
	for i, g := range r.genreIDs {
		genres[i] = int(g)
	}
	return &models.CatalogItem{
		ID:          int(r.id.Int64),
		Title:       r.title,
		PosterURL:   r.posterURL,
		Overview:    r.overview,
		ReleaseDate: r.releaseDate,
		TrailerURL:  r.trailerURL,
		GenreIDs:    genres,
		Popularity:  r.popularity,
		VoteAverage: r.voteAverage,
		MediaType:   models.MediaType(r.mediaType),
		Platforms:   []string(r.platforms),
	}
}

// nullableDate returns nil for anything that is not a YYYY-MM-DD date so the
// ::date cast never fails on partial values like "2010".
func nullableDate(dateStr string) any {
	if _, err := time.Parse(time.DateOnly, dateStr); err != nil {
		return nil
	}
	return dateStr
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

const uniqueViolation = "23505"

// translateError maps driver errors onto the model sentinels.
func translateError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return models.ErrDuplicate
	}
	return err
}
