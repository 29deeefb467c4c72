package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"movie-discovery-llm-recommender/internal/models"
)

const defaultReason = "recommended for you"

func newRecommendationID() string { return uuid.NewString() }

// persist stores the selected candidates that are new to the user and maps
// every selected candidate, repeats included, to a response. Writes are
// independent: one failing write never stops the others.
func (s *RecommendationService) persist(ctx context.Context, r *run, selected []models.ScoredCandidate) []models.RecommendationResponse {
	out := make([]models.RecommendationResponse, 0, len(selected))
	for _, c := range selected {
		rec := models.Recommendation{
			ID:        s.newID(),
			UserID:    r.userID,
			CatalogID: c.Item.ID,
			Reason:    reasonText(c.Reasons),
			CreatedAt: s.now().UTC(),
		}
		if !r.recommended[c.Item.ID] {
			s.save(ctx, rec, c.Item)
		}
		out = append(out, toResponse(rec, c))
	}
	return out
}

func (s *RecommendationService) save(ctx context.Context, rec models.Recommendation, item models.CatalogItem) {
	log := slog.With("user_id", rec.UserID, "tmdb_id", rec.CatalogID)

	if err := s.stores.Catalog.Save(ctx, item); err != nil {
		log.Warn("failed to cache catalog item", "error", err)
	}

	if err := s.stores.Recommendations.Save(ctx, &rec); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			log.Info("recommendation already saved", "error", err)
		} else {
			log.Warn("failed to save recommendation", "error", err)
		}
		return
	}

	err := s.stores.Activity.Log(ctx, models.ActivityLogEntry{
		UserID:    rec.UserID,
		Action:    models.ActionRecommended,
		CatalogID: rec.CatalogID,
		Details:   item.Title,
		CreatedAt: rec.CreatedAt,
	})
	if err != nil {
		log.Warn("failed to log activity", "error", err)
	}
}

func reasonText(reasons []string) string {
	if len(reasons) == 0 {
		return defaultReason
	}
	return strings.Join(reasons, ", ")
}
