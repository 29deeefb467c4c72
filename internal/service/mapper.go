package service

import (
	"math"
	"strings"
	"time"

	"movie-discovery-llm-recommender/internal/models"
)

var releaseDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01",
	"2006",
}

// toResponse maps a selected candidate and its recommendation row.
func toResponse(rec models.Recommendation, c models.ScoredCandidate) models.RecommendationResponse {
	resp := fromItem(rec, &c.Item)
	resp.MatchScore = matchScore(c.Score)
	resp.Repeat = c.Repeat
	return resp
}

func mapRecommendations(recs []models.Recommendation) []models.RecommendationResponse {
	out := make([]models.RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fromItem(rec, rec.Item))
	}
	return out
}

func fromItem(rec models.Recommendation, item *models.CatalogItem) models.RecommendationResponse {
	resp := models.RecommendationResponse{
		ID:        rec.ID,
		CatalogID: rec.CatalogID,
		Reason:    rec.Reason,
		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
	}
	if item == nil {
		return resp
	}
	resp.Title = item.Title
	resp.PosterURL = item.PosterURL
	resp.Overview = item.Overview
	resp.ReleaseDate = formatReleaseDate(item.ReleaseDate)
	resp.VoteAverage = item.VoteAverage
	resp.MediaType = item.MediaType
	resp.Popularity = item.Popularity
	resp.Platforms = item.Platforms
	resp.TrailerURL = item.TrailerURL
	return resp
}

func matchScore(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	return int(math.Max(0, math.Min(100, math.Round(score))))
}

// formatReleaseDate normalizes a release date to YYYY-MM-DD. Dates that do
// not parse map to nil.
func formatReleaseDate(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			s := t.Format("2006-01-02")
			return &s
		}
	}
	return nil
}
