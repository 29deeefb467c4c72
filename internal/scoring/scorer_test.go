package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"movie-discovery-llm-recommender/internal/models"
)

func TestQualityScore(t *testing.T) {
	tests := []struct {
		vote float64
		want int
	}{
		{9.1, 30}, {8, 30}, {7.9, 25}, {7.5, 25}, {7.2, 20}, {7, 20},
		{6.5, 15}, {6.4, 10}, {6, 10}, {5.9, 5}, {0, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QualityScore(tt.vote), "vote %v", tt.vote)
	}
}

func TestQualityScore_Monotonic(t *testing.T) {
	prev := QualityScore(0)
	for v := 0.0; v <= 10; v += 0.05 {
		got := QualityScore(v)
		assert.GreaterOrEqual(t, got, prev, "vote %v", v)
		prev = got
	}
}

func TestPopularityScore(t *testing.T) {
	tests := []struct {
		popularity float64
		want       int
	}{
		{0, 5}, {9.9, 5}, {10, 10}, {19.9, 10}, {20, 15}, {55, 15}, {100, 15},
		{100.5, 12}, {200, 12}, {200.1, 8}, {5000, 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PopularityScore(tt.popularity), "popularity %v", tt.popularity)
	}
}

func TestScorer_GenreScore(t *testing.T) {
	s := NewScorer(Context{FavoriteGenres: []string{"Acción", "comedia", "no-such-genre", "Drama"}})

	assert.Equal(t, 13, s.GenreScore(models.CatalogItem{GenreIDs: []int{10759, 18}}), "2 of 4 favorites")
	assert.Equal(t, 6, s.GenreScore(models.CatalogItem{GenreIDs: []int{35}}), "1 of 4 favorites")
	assert.Equal(t, 0, s.GenreScore(models.CatalogItem{GenreIDs: []int{99}}))
	assert.Equal(t, 0, s.GenreScore(models.CatalogItem{}))

	all := NewScorer(Context{FavoriteGenres: []string{"terror"}})
	assert.Equal(t, MaxGenre, all.GenreScore(models.CatalogItem{GenreIDs: []int{27, 53}}))

	assert.Equal(t, 0, NewScorer(Context{}).GenreScore(models.CatalogItem{GenreIDs: []int{27}}))
}

func TestScorer_MediaTypeScore(t *testing.T) {
	s := NewScorer(Context{PreferredMediaType: models.MediaSeries})
	assert.Equal(t, MaxMediaType, s.MediaTypeScore(models.CatalogItem{MediaType: models.MediaSeries}))
	assert.Equal(t, 0, s.MediaTypeScore(models.CatalogItem{MediaType: models.MediaMovie}))
	assert.Equal(t, 0, NewScorer(Context{}).MediaTypeScore(models.CatalogItem{MediaType: models.MediaMovie}))
}

func TestScorer_SimilarityScore(t *testing.T) {
	s := NewScorer(Context{
		Favorites: []models.HistoryItem{
			{Item: &models.CatalogItem{GenreIDs: []int{28, 12}}},
			{CatalogID: 7},
		},
		Ratings: []models.HistoryItem{
			{Rating: 4.5, Item: &models.CatalogItem{GenreIDs: []int{878, 53}}},
			{Rating: 2, Item: &models.CatalogItem{GenreIDs: []int{35}}},
		},
	})

	assert.Equal(t, 0, s.SimilarityScore(models.CatalogItem{GenreIDs: []int{35}}), "low ratings do not count")
	assert.Equal(t, 5, s.SimilarityScore(models.CatalogItem{GenreIDs: []int{28, 28}}), "repeated ids count once")
	assert.Equal(t, 10, s.SimilarityScore(models.CatalogItem{GenreIDs: []int{28, 878}}))
	assert.Equal(t, MaxSimilarity, s.SimilarityScore(models.CatalogItem{GenreIDs: []int{28, 12, 878, 53}}))

	// More shared genres never score lower.
	prev := 0
	ids := []int{28, 12, 878, 53}
	for n := 0; n <= len(ids); n++ {
		got := s.SimilarityScore(models.CatalogItem{GenreIDs: ids[:n]})
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestScorer_Score(t *testing.T) {
	s := NewScorer(Context{
		FavoriteGenres:     []string{"ciencia ficción"},
		Favorites:          []models.HistoryItem{{Item: &models.CatalogItem{GenreIDs: []int{878, 12, 18}}}},
		PreferredMediaType: models.MediaMovie,
	})
	item := models.CatalogItem{ID: 1, Title: "Arrival", GenreIDs: []int{878, 12, 18}, VoteAverage: 7.6, Popularity: 45, MediaType: models.MediaMovie}

	got := s.Score(item)

	assert.Equal(t, item, got.Item)
	assert.Equal(t, float64(25+25+15+15+15), got.Score)
	assert.Equal(t, []string{ReasonHighQuality, ReasonGenreMatch, ReasonMediaType, ReasonSimilar}, got.Reasons)
	assert.False(t, got.Repeat)
}

func TestScorer_Score_NoNotableReasons(t *testing.T) {
	got := NewScorer(Context{}).Score(models.CatalogItem{VoteAverage: 7, Popularity: 3})

	assert.Equal(t, float64(20+5), got.Score)
	assert.Empty(t, got.Reasons)
}

func TestScorer_Score_Bounded(t *testing.T) {
	ctx := Context{
		FavoriteGenres:     []string{"accion", "drama", "terror"},
		Favorites:          []models.HistoryItem{{Item: &models.CatalogItem{GenreIDs: []int{28, 18, 27, 53, 80}}}},
		PreferredMediaType: models.MediaMovie,
	}
	s := NewScorer(ctx)

	votes := []float64{0, 5, 6.2, 7.1, 8.8, 10}
	pops := []float64{0, 15, 50, 150, 1000}
	genres := [][]int{nil, {28}, {28, 18}, {28, 18, 27, 53, 80}}
	for _, v := range votes {
		for _, p := range pops {
			for _, g := range genres {
				item := models.CatalogItem{VoteAverage: v, Popularity: p, GenreIDs: g, MediaType: models.MediaMovie}
				got := s.Score(item).Score
				assert.GreaterOrEqual(t, got, 0.0)
				assert.LessOrEqual(t, got, 100.0)
				assert.LessOrEqual(t, s.GenreScore(item), MaxGenre)
				assert.LessOrEqual(t, s.SimilarityScore(item), MaxSimilarity)
				assert.LessOrEqual(t, QualityScore(v), MaxQuality)
				assert.LessOrEqual(t, PopularityScore(p), MaxPopularity)
			}
		}
	}
}
