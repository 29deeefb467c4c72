package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"movie-discovery-llm-recommender/internal/models"
)

// CatalogRepository is the local cache of TMDB metadata.
type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Save inserts or refreshes the cached metadata of an item.
func (r *CatalogRepository) Save(ctx context.Context, item models.CatalogItem) error {
	mediaType := item.MediaType
	if mediaType == "" {
		mediaType = models.MediaMovie
	}
	platforms := item.Platforms
	if platforms == nil {
		platforms = []string{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tmdb (id, title, poster_url, overview, release_date, genre_ids,
			popularity, vote_average, media_type, platforms, trailer_url, updated_at)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			poster_url = EXCLUDED.poster_url,
			overview = EXCLUDED.overview,
			release_date = EXCLUDED.release_date,
			genre_ids = EXCLUDED.genre_ids,
			popularity = EXCLUDED.popularity,
			vote_average = EXCLUDED.vote_average,
			media_type = EXCLUDED.media_type,
			platforms = EXCLUDED.platforms,
			trailer_url = EXCLUDED.trailer_url,
			updated_at = EXCLUDED.updated_at
	`, item.ID, item.Title, nullableString(item.PosterURL), nullableString(item.Overview),
		nullableDate(item.ReleaseDate), pq.Array(genreArray(item.GenreIDs)),
		item.Popularity, item.VoteAverage, string(mediaType), pq.Array(platforms),
		nullableString(item.TrailerURL), time.Now())
	if err != nil {
		return fmt.Errorf("upsert tmdb %d: %w", item.ID, err)
	}
	return nil
}

// FindByID returns the cached metadata of an item.
func (r *CatalogRepository) FindByID(ctx context.Context, id int) (*models.CatalogItem, error) {
	var cr catalogRow
	err := r.db.QueryRowContext(ctx, `SELECT `+catalogColumns+` FROM tmdb t WHERE t.id = $1`, id).Scan(cr.dest()...)
	if err != nil {
		return nil, fmt.Errorf("find tmdb %d: %w", id, translateError(err))
	}
	return cr.item(), nil
}

func genreArray(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}
