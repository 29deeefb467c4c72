package models

import "errors"

var (
	// ErrNotFound is returned by stores when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned by stores when a unique key already exists.
	ErrDuplicate = errors.New("duplicate key")
)

// MediaType distinguishes movies from series.
type MediaType string

const (
	MediaMovie  MediaType = "movie"
	MediaSeries MediaType = "series"
)

// CatalogItem is the cached metadata of a catalog title, keyed by its TMDB id.
type CatalogItem struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	PosterURL   string    `json:"poster_url,omitempty"`
	Overview    string    `json:"overview,omitempty"`
	ReleaseDate string    `json:"release_date,omitempty"`
	TrailerURL  string    `json:"trailer_url,omitempty"`
	GenreIDs    []int     `json:"genre_ids"`
	Popularity  float64   `json:"popularity"`
	VoteAverage float64   `json:"vote_average"`
	MediaType   MediaType `json:"media_type"`
	Platforms   []string  `json:"platforms,omitempty"`
}

// PrimaryGenre returns the first genre id of the item, or false if it has none.
func (c CatalogItem) PrimaryGenre() (int, bool) {
	if len(c.GenreIDs) == 0 {
		return 0, false
	}
	return c.GenreIDs[0], true
}

// TrendingItem is the lightweight shape returned by the trending query.
type TrendingItem struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	MediaType MediaType `json:"media_type"`
}

const (
	TMDBImageBaseW500 = "https://image.tmdb.org/t/p/w500"
	YouTubeWatchURL   = "https://www.youtube.com/watch?v="
)
