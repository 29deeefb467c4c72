package prompt

import "movie-discovery-llm-recommender/internal/models"

// AverageRating returns the mean rating, or 0 when there are none.
func AverageRating(ratings []models.HistoryItem) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r.Rating
	}
	return sum / float64(len(ratings))
}

// PreferredMediaType returns the media type that outnumbers the other more
// than two to one among the favorites, or "" when neither does.
func PreferredMediaType(favorites []models.HistoryItem) models.MediaType {
	var movies, series int
	for _, f := range favorites {
		if f.Item == nil {
			continue
		}
		switch f.Item.MediaType {
		case models.MediaMovie:
			movies++
		case models.MediaSeries:
			series++
		}
	}
	switch {
	case movies > 2*series:
		return models.MediaMovie
	case series > 2*movies:
		return models.MediaSeries
	}
	return ""
}

func ratingStandard(avg float64) string {
	switch {
	case avg >= 4:
		return "high"
	case avg >= 3:
		return "moderate"
	default:
		return "mixed"
	}
}
