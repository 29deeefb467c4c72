package service

import (
	"strings"

	"movie-discovery-llm-recommender/internal/models"
	"movie-discovery-llm-recommender/internal/prompt"
	"movie-discovery-llm-recommender/internal/scoring"
	"movie-discovery-llm-recommender/internal/vocab"
)

// run is the state of one generation run.
type run struct {
	userID   string
	feedback string
	input    prompt.Input
	history  []models.Recommendation // all-time, newest first
	scorer   *scoring.Scorer

	// recommended holds every catalog id ever recommended to the user;
	// excluded adds what they have seen, favorited, rated or wishlisted.
	recommended map[int]bool
	excluded    map[int]bool

	candidates []models.ScoredCandidate

	// Outcome of the primary generation, read by the retry stage.
	resolved   int
	duplicates int
	rejected   []string
}

func newRun(userID string, in prompt.Input, history []models.Recommendation) *run {
	r := &run{
		userID:      userID,
		feedback:    strings.TrimSpace(in.Feedback),
		input:       in,
		history:     history,
		recommended: make(map[int]bool, len(history)),
		excluded:    make(map[int]bool),
	}
	r.input.Feedback = r.feedback

	for _, rec := range history {
		r.recommended[rec.CatalogID] = true
		r.excluded[rec.CatalogID] = true
	}
	for _, list := range [][]models.HistoryItem{in.Seen, in.Favorites, in.Ratings, in.Wishlist} {
		for _, h := range list {
			r.excluded[h.CatalogID] = true
		}
	}

	r.scorer = scoring.NewScorer(scoring.Context{
		FavoriteGenres:     in.Profile.FavoriteGenres,
		AvgUserRating:      prompt.AverageRating(in.Ratings),
		Favorites:          in.Favorites,
		Ratings:            in.Ratings,
		PreferredMediaType: prompt.PreferredMediaType(in.Favorites),
	})
	return r
}

func (r *run) hasFeedback() bool { return r.feedback != "" }

// count is the number of distinct catalog ids collected so far.
func (r *run) count() int {
	seen := make(map[int]struct{}, len(r.candidates))
	for _, c := range r.candidates {
		seen[c.Item.ID] = struct{}{}
	}
	return len(seen)
}

func (r *run) has(id int) bool {
	for _, c := range r.candidates {
		if c.Item.ID == id {
			return true
		}
	}
	return false
}

func (r *run) belowTarget() bool { return r.count() < TargetCount }

// add scores item and appends it. Repeats are items already recommended
// to the user; extra reasons are prepended to the scorer's.
func (r *run) add(item models.CatalogItem, extra ...string) {
	c := r.scorer.Score(item)
	c.Repeat = r.recommended[item.ID]
	if len(extra) > 0 {
		c.Reasons = append(append([]string{}, extra...), c.Reasons...)
	}
	r.candidates = append(r.candidates, c)
}

// dedupe keeps one candidate per catalog id, the highest scored one, at the
// position where that id first appeared.
func (r *run) dedupe() {
	index := make(map[int]int, len(r.candidates))
	out := r.candidates[:0:0]
	for _, c := range r.candidates {
		i, ok := index[c.Item.ID]
		if !ok {
			index[c.Item.ID] = len(out)
			out = append(out, c)
			continue
		}
		if c.Score > out[i].Score {
			out[i] = c
		}
	}
	r.candidates = out
}

// historyTitles returns up to n distinct titles from the user's
// recommendation history, newest first, keyed by folded title.
func (r *run) historyTitles(n int) ([]string, map[string]models.CatalogItem) {
	var titles []string
	byTitle := make(map[string]models.CatalogItem)
	for _, rec := range r.history {
		if len(titles) == n {
			break
		}
		if rec.Item == nil || rec.Item.Title == "" || r.has(rec.CatalogID) {
			continue
		}
		key := vocab.NewText(rec.Item.Title).Normalized()
		if _, dup := byTitle[key]; dup {
			continue
		}
		item := *rec.Item
		item.ID = rec.CatalogID
		byTitle[key] = item
		titles = append(titles, rec.Item.Title)
	}
	return titles, byTitle
}
