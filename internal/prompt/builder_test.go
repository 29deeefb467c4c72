package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"movie-discovery-llm-recommender/internal/models"
)

func item(id int, title string, media models.MediaType) *models.CatalogItem {
	return &models.CatalogItem{ID: id, Title: title, MediaType: media}
}

func history(prefix string, n int) []models.HistoryItem {
	out := make([]models.HistoryItem, n)
	for i := range out {
		out[i] = models.HistoryItem{CatalogID: 9000 + i, Item: item(9000+i, fmt.Sprintf("%s %d", prefix, i), models.MediaMovie)}
	}
	return out
}

func TestBuilder_Build_IsDeterministic(t *testing.T) {
	b := NewBuilder(nil)
	in := Input{
		Profile:   models.UserProfile{ID: "u1", FavoriteGenres: []string{"drama", "comedia"}},
		Seen:      history("Seen", 3),
		Favorites: history("Fav", 2),
		Feedback:  "algo de los 80",
		Count:     5,
	}

	assert.Equal(t, b.Build(in), b.Build(in))
}

func TestBuilder_Build_FeedbackConstraints(t *testing.T) {
	b := NewBuilder(nil)
	p := b.Build(Input{Feedback: "películas de terror de los 90", Count: 5})

	assert.Contains(t, p, `USER REQUEST (dominant constraint, overrides their usual taste): "películas de terror de los 90"`)
	assert.Contains(t, p, "MUST MATCH EXACTLY:")
	assert.Contains(t, p, "- Genre: horror")
	assert.Contains(t, p, "- Release period: 1990-1999")
	assert.Contains(t, p, "- Type: movies only")
	assert.Contains(t, p, "CANNOT SATISFY")
	assert.Contains(t, p, "- Only movies, as requested.")
	assert.NotContains(t, p, "Mix movies and series")
	assert.NotContains(t, p, "TASTE PROFILE")
}

func TestBuilder_Build_ObjectiveQuery(t *testing.T) {
	b := NewBuilder(nil)

	p := b.Build(Input{Feedback: "lo mejor de todos los tiempos", Count: 5})
	assert.Contains(t, p, "objective quality request")
	assert.NotContains(t, p, "MUST MATCH EXACTLY")

	// Constraints take precedence over the objective hint.
	p = b.Build(Input{Feedback: "las mejores comedias de todos los tiempos", Count: 5})
	assert.Contains(t, p, "- Genre: comedy")
	assert.NotContains(t, p, "objective quality request")
}

func TestBuilder_Build_TasteProfile(t *testing.T) {
	b := NewBuilder(nil)
	in := Input{
		Profile: models.UserProfile{FavoriteGenres: []string{"acción", "drama"}, FavoriteMedia: "thrillers lentos"},
		Favorites: []models.HistoryItem{
			{Item: item(1, "Heat", models.MediaMovie)},
			{Item: item(2, "Collateral", models.MediaMovie)},
			{Item: item(3, "Zodiac", models.MediaMovie)},
			{Item: item(4, "Mindhunter", models.MediaSeries)},
		},
		Ratings: []models.HistoryItem{
			{Item: item(5, "Se7en", models.MediaMovie), Rating: 5},
			{Item: item(6, "Prisoners", models.MediaMovie), Rating: 4},
		},
		Count: 5,
	}
	p := b.Build(in)

	assert.Contains(t, p, "- Favorite genres: acción, drama")
	assert.Contains(t, p, "- In their own words: thrillers lentos")
	assert.Contains(t, p, "- Rating standards: high (average 4.5/5)")
	assert.Contains(t, p, "- Media preference: leans toward movies")
	assert.Contains(t, p, "- Rated highly: Se7en (5/5), Prisoners (4/5)")
	assert.Contains(t, p, "- Mix movies and series.")
	assert.NotContains(t, p, "USER REQUEST")
}

func TestBuilder_Build_HistoryCapsAndTitlesOnly(t *testing.T) {
	b := NewBuilder(nil)
	recent := make([]models.Recommendation, 10)
	for i := range recent {
		recent[i] = models.Recommendation{CatalogID: 500 + i, Item: item(500+i, fmt.Sprintf("Rec %d", i), models.MediaMovie)}
	}
	in := Input{
		Seen:                  history("Seen", 10),
		Wishlist:              history("Wish", 7),
		Ratings:               []models.HistoryItem{{Item: item(1, "Cats", models.MediaMovie), Rating: 1.5}, {Item: item(2, "Meh", models.MediaMovie), Rating: 3.5}},
		RecentRecommendations: recent,
		Count:                 5,
	}
	p := b.Build(in)

	assert.NotContains(t, p, "Seen 0")
	assert.NotContains(t, p, "Seen 1,")
	assert.Contains(t, p, "Seen 2, ")
	assert.Contains(t, p, "Seen 9")
	assert.NotContains(t, p, "Wish 1,")
	assert.Contains(t, p, "Wish 2, Wish 3, Wish 4, Wish 5, Wish 6")
	assert.Contains(t, p, "Rec 0, ")
	assert.NotContains(t, p, "Rec 8")
	assert.Contains(t, p, "- Rated low, avoid similar: Cats (1.5/5)")
	assert.NotContains(t, p, "Meh")
	assert.NotContains(t, p, "9000")
	assert.NotContains(t, p, "500")
}

func TestBuilder_Build_LikedAndRejected(t *testing.T) {
	b := NewBuilder(nil)
	p := b.Build(Input{
		Liked:    item(10, "Arrival", models.MediaMovie),
		Rejected: []string{"Inception", "Dark"},
		Count:    5,
	})

	assert.Contains(t, p, `The user just liked "Arrival".`)
	assert.Contains(t, p, "REJECTED: these were all recommended to the user before: Inception, Dark.")
	assert.Contains(t, p, "Return exactly 5 distinct titles.")
	assert.Contains(t, p, "OUTPUT FORMAT: exactly 5 lines")
	assert.False(t, strings.HasSuffix(p, "\n"))
}

func TestBuilder_BuildRepick(t *testing.T) {
	b := NewBuilder(nil)
	p := b.BuildRepick(" algo de miedo ", []string{"It", "Hereditary"}, 3)

	assert.Contains(t, p, `The user asked for: "algo de miedo".`)
	assert.Contains(t, p, "pick up to 3")
	assert.Contains(t, p, "NONE")
	assert.True(t, strings.HasSuffix(p, "TITLES:\nIt\nHereditary"))
}

type stubDetector struct{ objective bool }

func (stubDetector) Detect(string) Constraints {
	return Constraints{Platforms: []string{"Filmin"}}
}

func (s stubDetector) IsObjectiveQuery(string) bool { return s.objective }

func TestNewBuilder_CustomDetector(t *testing.T) {
	b := NewBuilder(stubDetector{})
	p := b.Build(Input{Feedback: "whatever", Count: 5})

	assert.Contains(t, p, "- Available on: Filmin")
	assert.IsType(t, KeywordDetector{}, NewBuilder(nil).Detector())
}

func TestPreferredMediaType(t *testing.T) {
	fav := func(types ...models.MediaType) []models.HistoryItem {
		var out []models.HistoryItem
		for i, mt := range types {
			out = append(out, models.HistoryItem{Item: item(i, "t", mt)})
		}
		return out
	}

	assert.Equal(t, models.MediaMovie, PreferredMediaType(fav(models.MediaMovie, models.MediaMovie, models.MediaMovie, models.MediaSeries)))
	assert.Equal(t, models.MediaType(""), PreferredMediaType(fav(models.MediaMovie, models.MediaMovie, models.MediaSeries)))
	assert.Equal(t, models.MediaSeries, PreferredMediaType(fav(models.MediaSeries)))
	assert.Equal(t, models.MediaType(""), PreferredMediaType(nil))
	assert.Equal(t, models.MediaType(""), PreferredMediaType([]models.HistoryItem{{CatalogID: 3}}))
}

func TestAverageRating(t *testing.T) {
	assert.Zero(t, AverageRating(nil))
	assert.InDelta(t, 3.5, AverageRating([]models.HistoryItem{{Rating: 3}, {Rating: 4}}), 1e-9)
}
