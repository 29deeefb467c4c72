package models

import "time"

// UserProfile holds the taste signals stored on the user record.
type UserProfile struct {
	ID             string   `json:"id"`
	FavoriteGenres []string `json:"favorite_genres"`
	FavoriteMedia  string   `json:"favorite_media,omitempty"`
}

// HistoryItem is a seen, favorite, rating or wishlist entry. Rating and
// Comment are only set for ratings.
type HistoryItem struct {
	UserID    string       `json:"user_id"`
	CatalogID int          `json:"tmdb_id"`
	Item      *CatalogItem `json:"tmdb,omitempty"`
	Rating    float64      `json:"rating,omitempty"`
	Comment   string       `json:"comment,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Title returns the cached catalog title, or "" when the item is unresolved.
func (h HistoryItem) Title() string {
	if h.Item == nil {
		return ""
	}
	return h.Item.Title
}
