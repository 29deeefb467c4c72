package models

import "time"

// Recommendation is one persisted recommendation row.
type Recommendation struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	CatalogID int          `json:"tmdb_id"`
	Reason    string       `json:"reason"`
	CreatedAt time.Time    `json:"created_at"`
	Item      *CatalogItem `json:"tmdb,omitempty"`
}

// ActivityLogEntry is an append-only audit record.
type ActivityLogEntry struct {
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	CatalogID int       `json:"tmdb_id"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

const ActionRecommended = "recommended"

// ScoredCandidate is a resolved catalog item together with its score and the
// reasons that produced it. Repeat marks items already in the user's history.
type ScoredCandidate struct {
	Item    CatalogItem
	Score   float64
	Reasons []string
	Repeat  bool
}

// RecommendationResponse is the response shape for a recommended title.
type RecommendationResponse struct {
	ID          string    `json:"id"`
	CatalogID   int       `json:"tmdb_id"`
	Reason      string    `json:"reason"`
	CreatedAt   string    `json:"created_at"`
	MatchScore  int       `json:"match_score"`
	Repeat      bool      `json:"repeat"`
	Title       string    `json:"title,omitempty"`
	PosterURL   string    `json:"poster_url,omitempty"`
	Overview    string    `json:"overview,omitempty"`
	ReleaseDate *string   `json:"release_date,omitempty"`
	VoteAverage float64   `json:"vote_average,omitempty"`
	MediaType   MediaType `json:"media_type,omitempty"`
	Popularity  float64   `json:"popularity,omitempty"`
	Platforms   []string  `json:"platforms,omitempty"`
	TrailerURL  string    `json:"trailer_url,omitempty"`
}

// RecommendationListResponse wraps a generated or latest list.
type RecommendationListResponse struct {
	Recommendations []RecommendationResponse `json:"recommendations"`
}

// RecommendationPage is the paginated history response.
type RecommendationPage struct {
	Page         int                      `json:"page"`
	PageSize     int                      `json:"page_size"`
	TotalPages   int                      `json:"total_pages"`
	TotalResults int                      `json:"total_results"`
	HasNextPage  bool                     `json:"has_next_page"`
	Data         []RecommendationResponse `json:"data"`
}

// HistoryParams holds query parameters for the history listing.
type HistoryParams struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// Validate sets defaults and clamps out-of-range values.
func (p *HistoryParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}
