package service

import (
	"context"

	"movie-discovery-llm-recommender/internal/models"
)

// ProfileStore reads user taste profiles.
type ProfileStore interface {
	FindByID(ctx context.Context, userID string) (*models.UserProfile, error)
}

// HistoryStore reads a user's interactions, oldest first.
type HistoryStore interface {
	GetSeenItems(ctx context.Context, userID string) ([]models.HistoryItem, error)
	GetFavorites(ctx context.Context, userID string) ([]models.HistoryItem, error)
	GetRatings(ctx context.Context, userID string) ([]models.HistoryItem, error)
	GetWishlist(ctx context.Context, userID string) ([]models.HistoryItem, error)
}

// RecommendationStore reads and writes recommendations. Reads are newest first.
type RecommendationStore interface {
	FindLatestByUser(ctx context.Context, userID string, limit int) ([]models.Recommendation, error)
	FindAllByUser(ctx context.Context, userID string) ([]models.Recommendation, error)
	FindPageByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Recommendation, int, error)
	Save(ctx context.Context, rec *models.Recommendation) error
}

// CatalogCache stores catalog metadata keyed by catalog id.
type CatalogCache interface {
	Save(ctx context.Context, item models.CatalogItem) error
	FindByID(ctx context.Context, id int) (*models.CatalogItem, error)
}

// ActivityLog appends audit entries.
type ActivityLog interface {
	Log(ctx context.Context, entry models.ActivityLogEntry) error
}

// TextGenerator turns a prompt into free-form text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CatalogSearch finds catalog items by free text and lists trending titles.
type CatalogSearch interface {
	Search(ctx context.Context, query string) ([]models.CatalogItem, error)
	Trending(ctx context.Context, count int) ([]models.TrendingItem, error)
}

// Stores groups the persistence collaborators of the service.
type Stores struct {
	Profiles        ProfileStore
	History         HistoryStore
	Recommendations RecommendationStore
	Catalog         CatalogCache
	Activity        ActivityLog
}
