package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"movie-discovery-llm-recommender/internal/metrics"
	"movie-discovery-llm-recommender/internal/models"
	"movie-discovery-llm-recommender/internal/prompt"
	"movie-discovery-llm-recommender/internal/scoring"
)

const (
	// TargetCount is the number of recommendations a generation run returns.
	TargetCount = 5
	// LatestCount is the size of the latest-recommendations list.
	LatestCount = 8

	recentRecommendations = 10
	repickPoolSize        = 50
)

var (
	// ErrNoCandidates is returned when every stage came up empty.
	ErrNoCandidates = errors.New("could not generate new recommendations, try different feedback")
	// ErrUserNotFound is returned when the user has no profile.
	ErrUserNotFound = errors.New("user not found")
)

// RecommendationService generates, persists and lists recommendations.
type RecommendationService struct {
	stores    Stores
	generator TextGenerator
	search    CatalogSearch
	builder   *prompt.Builder
	now       func() time.Time
	newID     func() string
}

// NewRecommendationService creates a new RecommendationService. A nil
// builder uses the default keyword detector.
func NewRecommendationService(stores Stores, generator TextGenerator, search CatalogSearch, builder *prompt.Builder) *RecommendationService {
	if builder == nil {
		builder = prompt.NewBuilder(nil)
	}
	return &RecommendationService{
		stores:    stores,
		generator: generator,
		search:    search,
		builder:   builder,
		now:       time.Now,
		newID:     newRecommendationID,
	}
}

// Generate produces TargetCount recommendations for the user, persisting
// the ones that are new to them. likedID is 0 when absent.
func (s *RecommendationService) Generate(ctx context.Context, userID, feedback string, likedID int) ([]models.RecommendationResponse, error) {
	start := time.Now()

	r, err := s.load(ctx, userID, feedback, likedID)
	if err != nil {
		metrics.RecordGeneration("error", time.Since(start))
		return nil, err
	}

	s.source(ctx, r)
	if err := ctx.Err(); err != nil {
		metrics.RecordGeneration("error", time.Since(start))
		return nil, err
	}

	if len(r.candidates) == 0 {
		slog.Warn("no recommendation candidates", "user_id", userID, "feedback", r.feedback)
		metrics.RecordGeneration("no_candidates", time.Since(start))
		return nil, ErrNoCandidates
	}

	selected := scoring.Diversify(r.candidates, TargetCount)
	out := s.persist(ctx, r, selected)

	slog.Info("recommendations generated",
		"user_id", userID,
		"count", len(out),
		"candidates", len(r.candidates),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	metrics.RecordGeneration("success", time.Since(start))
	return out, nil
}

// Latest returns the user's most recent recommendations.
func (s *RecommendationService) Latest(ctx context.Context, userID string) ([]models.RecommendationResponse, error) {
	recs, err := s.stores.Recommendations.FindLatestByUser(ctx, userID, LatestCount)
	if err != nil {
		return nil, fmt.Errorf("latest recommendations: %w", err)
	}
	return mapRecommendations(recs), nil
}

// History returns one page of everything ever recommended to the user.
func (s *RecommendationService) History(ctx context.Context, userID string, params models.HistoryParams) (*models.RecommendationPage, error) {
	params.Validate()

	recs, total, err := s.stores.Recommendations.FindPageByUser(ctx, userID, params.Page, params.PageSize)
	if err != nil {
		return nil, fmt.Errorf("recommendation history: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	return &models.RecommendationPage{
		Page:         params.Page,
		PageSize:     params.PageSize,
		TotalPages:   totalPages,
		TotalResults: total,
		HasNextPage:  params.Page < totalPages,
		Data:         mapRecommendations(recs),
	}, nil
}

// load reads everything a run needs. Any failing read fails the run, except
// the liked title lookup which only enriches the prompt.
func (s *RecommendationService) load(ctx context.Context, userID, feedback string, likedID int) (*run, error) {
	var (
		profile *models.UserProfile
		in      prompt.Input
		all     []models.Recommendation
		liked   *models.CatalogItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.stores.Profiles.FindByID(gctx, userID)
		if errors.Is(err, models.ErrNotFound) || (err == nil && p == nil) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		profile = p
		return nil
	})
	fetch(g, &in.Seen, "load seen items", func() ([]models.HistoryItem, error) {
		return s.stores.History.GetSeenItems(gctx, userID)
	})
	fetch(g, &in.Favorites, "load favorites", func() ([]models.HistoryItem, error) {
		return s.stores.History.GetFavorites(gctx, userID)
	})
	fetch(g, &in.Ratings, "load ratings", func() ([]models.HistoryItem, error) {
		return s.stores.History.GetRatings(gctx, userID)
	})
	fetch(g, &in.Wishlist, "load wishlist", func() ([]models.HistoryItem, error) {
		return s.stores.History.GetWishlist(gctx, userID)
	})
	fetch(g, &in.RecentRecommendations, "load recent recommendations", func() ([]models.Recommendation, error) {
		return s.stores.Recommendations.FindLatestByUser(gctx, userID, recentRecommendations)
	})
	fetch(g, &all, "load recommendation history", func() ([]models.Recommendation, error) {
		return s.stores.Recommendations.FindAllByUser(gctx, userID)
	})
	if likedID > 0 {
		g.Go(func() error {
			item, err := s.stores.Catalog.FindByID(gctx, likedID)
			if err != nil {
				slog.Warn("liked title not in catalog cache", "user_id", userID, "tmdb_id", likedID, "error", err)
				return nil
			}
			liked = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	in.Profile = *profile
	in.Feedback = feedback
	in.Liked = liked
	in.Count = TargetCount
	return newRun(userID, in, all), nil
}

// fetch runs fn in g and stores its result in dst.
func fetch[T any](g *errgroup.Group, dst *T, what string, fn func() (T, error)) {
	g.Go(func() error {
		v, err := fn()
		if err != nil {
			return fmt.Errorf("%s: %w", what, err)
		}
		*dst = v
		return nil
	})
}
