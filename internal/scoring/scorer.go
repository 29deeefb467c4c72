// Package scoring ranks resolved catalog items against a user's taste and
// picks a genre-diverse final selection.
package scoring

import (
	"math"

	"movie-discovery-llm-recommender/internal/models"
	"movie-discovery-llm-recommender/internal/vocab"
)

// Caps of the individual sub-scores.
const (
	MaxQuality    = 30
	MaxGenre      = 25
	MaxMediaType  = 15
	MaxPopularity = 15
	MaxSimilarity = 15
)

// Reason tags attached to a scored candidate.
const (
	ReasonHighQuality = "high quality"
	ReasonGenreMatch  = "genre match"
	ReasonMediaType   = "preferred media type"
	ReasonSimilar     = "similar to favorites"
	ReasonAgain       = "recommended again"
	ReasonTrending    = "trending"
)

const likedRatingFloor = 4.0

// Context is the user taste information a candidate is scored against.
type Context struct {
	FavoriteGenres     []string
	AvgUserRating      float64
	Favorites          []models.HistoryItem
	Ratings            []models.HistoryItem
	PreferredMediaType models.MediaType
}

// Scorer scores candidates against one Context. The genre lookups are
// resolved once in NewScorer.
type Scorer struct {
	ctx         Context
	favoriteIDs [][]int
	likedGenres map[int]struct{}
}

// NewScorer prepares a scorer for ctx.
func NewScorer(ctx Context) *Scorer {
	s := &Scorer{ctx: ctx, likedGenres: make(map[int]struct{})}
	for _, name := range ctx.FavoriteGenres {
		var ids []int
		if g, ok := vocab.LookupGenre(name); ok {
			ids = g.IDs
		}
		s.favoriteIDs = append(s.favoriteIDs, ids)
	}
	addGenres := func(h models.HistoryItem) {
		if h.Item == nil {
			return
		}
		for _, id := range h.Item.GenreIDs {
			s.likedGenres[id] = struct{}{}
		}
	}
	for _, f := range ctx.Favorites {
		addGenres(f)
	}
	for _, r := range ctx.Ratings {
		if r.Rating >= likedRatingFloor {
			addGenres(r)
		}
	}
	return s
}

// Score sums the sub-scores of item and tags the notable ones.
func (s *Scorer) Score(item models.CatalogItem) models.ScoredCandidate {
	quality := QualityScore(item.VoteAverage)
	genre := s.GenreScore(item)
	media := s.MediaTypeScore(item)
	popularity := PopularityScore(item.Popularity)
	similarity := s.SimilarityScore(item)

	var reasons []string
	if quality > 20 {
		reasons = append(reasons, ReasonHighQuality)
	}
	if genre > 15 {
		reasons = append(reasons, ReasonGenreMatch)
	}
	if media > 0 {
		reasons = append(reasons, ReasonMediaType)
	}
	if similarity > 10 {
		reasons = append(reasons, ReasonSimilar)
	}

	return models.ScoredCandidate{
		Item:    item,
		Score:   float64(quality + genre + media + popularity + similarity),
		Reasons: reasons,
	}
}

// QualityScore is a step function of the vote average (0-10 scale).
func QualityScore(vote float64) int {
	switch {
	case vote >= 8:
		return 30
	case vote >= 7.5:
		return 25
	case vote >= 7:
		return 20
	case vote >= 6.5:
		return 15
	case vote >= 6:
		return 10
	default:
		return 5
	}
}

// GenreScore is the share of the user's favorite genres present on the
// item, scaled to MaxGenre. Unknown genre names count as misses.
func (s *Scorer) GenreScore(item models.CatalogItem) int {
	if len(s.favoriteIDs) == 0 || len(item.GenreIDs) == 0 {
		return 0
	}
	itemGenres := make(map[int]struct{}, len(item.GenreIDs))
	for _, id := range item.GenreIDs {
		itemGenres[id] = struct{}{}
	}
	matched := 0
	for _, ids := range s.favoriteIDs {
		for _, id := range ids {
			if _, ok := itemGenres[id]; ok {
				matched++
				break
			}
		}
	}
	return int(math.Round(float64(matched) / float64(len(s.favoriteIDs)) * MaxGenre))
}

// MediaTypeScore is a flat bonus when the item has the preferred media type.
func (s *Scorer) MediaTypeScore(item models.CatalogItem) int {
	if s.ctx.PreferredMediaType != "" && item.MediaType == s.ctx.PreferredMediaType {
		return MaxMediaType
	}
	return 0
}

// PopularityScore peaks for moderately popular titles and tapers toward
// both blockbusters and obscure ones.
func PopularityScore(popularity float64) int {
	switch {
	case popularity > 200:
		return 8
	case popularity > 100:
		return 12
	case popularity >= 20:
		return 15
	case popularity >= 10:
		return 10
	default:
		return 5
	}
}

// SimilarityScore gives 5 points per item genre shared with the user's
// favorites and highly rated titles, capped at MaxSimilarity.
func (s *Scorer) SimilarityScore(item models.CatalogItem) int {
	seen := make(map[int]struct{}, len(item.GenreIDs))
	overlap := 0
	for _, id := range item.GenreIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := s.likedGenres[id]; ok {
			overlap++
		}
	}
	return min(overlap*5, MaxSimilarity)
}
