package service

import (
	"context"
	"fmt"
	"log/slog"

	"movie-discovery-llm-recommender/internal/metrics"
	"movie-discovery-llm-recommender/internal/models"
	"movie-discovery-llm-recommender/internal/prompt"
	"movie-discovery-llm-recommender/internal/resilience"
	"movie-discovery-llm-recommender/internal/scoring"
	"movie-discovery-llm-recommender/internal/vocab"
)

const (
	maxThemeKeywords   = 3
	maxGenreSearches   = 2
	genreFallbackMin   = 3
	trendingOversample = 3

	// Share of resolved titles already recommended before that triggers
	// a retry with the rejected titles named.
	duplicateRetryRatio = 0.8
)

// stage is one step of the sourcing ladder.
type stage struct {
	name      string
	shouldRun func(r *run) bool
	run       func(ctx context.Context, r *run) error
}

// stages lists the sourcing ladder in execution order.
func (s *RecommendationService) stages() []stage {
	return []stage{
		{name: "generate", shouldRun: (*run).belowTarget, run: s.generateStage},
		{name: "duplicate_retry", shouldRun: (*run).needsRetry, run: s.retryStage},
		{name: "keyword", shouldRun: (*run).needsKeywords, run: s.keywordStage},
		{name: "genre", shouldRun: (*run).needsGenres, run: s.genreStage},
		{name: "trending", shouldRun: (*run).belowTarget, run: s.trendingStage},
		{name: "dedupe", shouldRun: (*run).hasDuplicates, run: dedupeStage},
		{name: "repick", shouldRun: (*run).needsRepick, run: s.repickStage},
		{name: "emergency_trending", shouldRun: (*run).needsEmergency, run: s.emergencyStage},
	}
}

func (r *run) needsRetry() bool {
	if !r.belowTarget() || r.resolved == 0 {
		return false
	}
	return r.count() == 0 || float64(r.duplicates) >= duplicateRetryRatio*float64(r.resolved)
}

func (r *run) needsKeywords() bool { return r.count() == 0 && r.hasFeedback() }

func (r *run) needsGenres() bool {
	return r.count() < genreFallbackMin && !r.hasFeedback() && len(r.input.Profile.FavoriteGenres) > 0
}

func (r *run) hasDuplicates() bool { return r.count() < len(r.candidates) }

func (r *run) needsRepick() bool { return r.belowTarget() && r.hasFeedback() }

func (r *run) needsEmergency() bool { return r.belowTarget() && !r.hasFeedback() }

// source runs the ladder. A failing stage is logged and the next one runs.
func (s *RecommendationService) source(ctx context.Context, r *run) {
	for _, st := range s.stages() {
		if ctx.Err() != nil {
			return
		}
		if !st.shouldRun(r) {
			continue
		}
		before := r.count()
		err := st.run(ctx, r)
		added := max(r.count()-before, 0)
		metrics.RecordStage(st.name, added)
		if resilience.IsOpen(err) {
			slog.Info("recommendation stage skipped, circuit open", "user_id", r.userID, "stage", st.name, "error", err)
			continue
		}
		if err != nil {
			slog.Warn("recommendation stage failed", "user_id", r.userID, "stage", st.name, "error", err)
			continue
		}
		slog.Debug("recommendation stage done", "user_id", r.userID, "stage", st.name, "added", added, "total", r.count())
	}
}

// generateStage asks the generator for titles and resolves them.
func (s *RecommendationService) generateStage(ctx context.Context, r *run) error {
	return s.generateAndResolve(ctx, r, s.builder.Build(r.input), true)
}

// retryStage asks again, naming the titles that were all repeats.
func (s *RecommendationService) retryStage(ctx context.Context, r *run) error {
	in := r.input
	in.Rejected = r.rejected
	return s.generateAndResolve(ctx, r, s.builder.Build(in), false)
}

func (s *RecommendationService) generateAndResolve(ctx context.Context, r *run, text string, primary bool) error {
	raw, err := s.generator.Generate(ctx, text)
	if err != nil {
		return fmt.Errorf("generate titles: %w", err)
	}
	titles := prompt.ParseTitles(raw)
	if len(titles) == 0 {
		slog.Warn("generator returned no usable titles", "user_id", r.userID)
		return nil
	}

	batch := make(map[int]bool)
	for _, c := range r.candidates {
		batch[c.Item.ID] = true
	}
	for _, title := range titles {
		item, ok := s.bestMatch(ctx, r, title)
		if !ok || batch[item.ID] {
			continue
		}
		batch[item.ID] = true
		if primary {
			r.resolved++
		}
		if r.recommended[item.ID] {
			if primary {
				r.duplicates++
				r.rejected = append(r.rejected, item.Title)
			}
			continue
		}
		if r.excluded[item.ID] {
			continue
		}
		r.add(item)
	}
	return nil
}

// keywordStage searches theme keywords derived from the feedback, or the
// feedback itself when no theme matches.
func (s *RecommendationService) keywordStage(ctx context.Context, r *run) error {
	keywords := vocab.ThemeKeywords(vocab.NewText(r.feedback), maxThemeKeywords)
	if len(keywords) == 0 {
		keywords = []string{r.feedback}
	}
	return s.searchAll(ctx, r, keywords)
}

// genreStage searches the user's top favorite genres.
func (s *RecommendationService) genreStage(ctx context.Context, r *run) error {
	genres := r.input.Profile.FavoriteGenres
	if len(genres) > maxGenreSearches {
		genres = genres[:maxGenreSearches]
	}
	terms := make([]string, 0, len(genres))
	for _, g := range genres {
		terms = append(terms, vocab.GenreSearchTerm(g))
	}
	return s.searchAll(ctx, r, terms)
}

// searchAll adds every non-excluded result of each query.
func (s *RecommendationService) searchAll(ctx context.Context, r *run, queries []string) error {
	var failures int
	batch := make(map[int]bool)
	for _, q := range queries {
		items, err := s.search.Search(ctx, q)
		if err != nil {
			failures++
			slog.Warn("catalog search failed", "user_id", r.userID, "query", q, "error", err)
			continue
		}
		for _, item := range items {
			if batch[item.ID] || r.excluded[item.ID] {
				continue
			}
			batch[item.ID] = true
			r.add(item)
		}
	}
	if failures == len(queries) && failures > 0 {
		return fmt.Errorf("all %d searches failed", failures)
	}
	return nil
}

func dedupeStage(_ context.Context, r *run) error {
	r.dedupe()
	return nil
}

// trendingStage fills the deficit from trending titles the user has not
// interacted with.
func (s *RecommendationService) trendingStage(ctx context.Context, r *run) error {
	deficit := TargetCount - r.count()
	trending, err := s.search.Trending(ctx, deficit*trendingOversample)
	if err != nil {
		return fmt.Errorf("trending: %w", err)
	}
	for _, t := range trending {
		if !r.belowTarget() {
			break
		}
		if r.excluded[t.ID] || r.has(t.ID) {
			continue
		}
		if item, ok := s.resolveTrending(ctx, r, t); ok {
			r.add(item, scoring.ReasonTrending)
		}
	}
	return nil
}

// repickStage lets the generator choose, among titles recommended before,
// the ones that match the feedback.
func (s *RecommendationService) repickStage(ctx context.Context, r *run) error {
	titles, byTitle := r.historyTitles(repickPoolSize)
	if len(titles) == 0 {
		return nil
	}
	raw, err := s.generator.Generate(ctx, s.builder.BuildRepick(r.feedback, titles, TargetCount-r.count()))
	if err != nil {
		return fmt.Errorf("repick titles: %w", err)
	}
	for _, title := range prompt.ParseTitles(raw) {
		if !r.belowTarget() {
			break
		}
		item, ok := byTitle[vocab.NewText(title).Normalized()]
		if !ok || r.has(item.ID) {
			continue
		}
		r.add(item, scoring.ReasonAgain)
	}
	return nil
}

// emergencyStage takes trending titles without any exclusion.
func (s *RecommendationService) emergencyStage(ctx context.Context, r *run) error {
	trending, err := s.search.Trending(ctx, TargetCount*trendingOversample)
	if err != nil {
		return fmt.Errorf("emergency trending: %w", err)
	}
	for _, t := range trending {
		if !r.belowTarget() {
			break
		}
		if r.has(t.ID) {
			continue
		}
		item, ok := s.resolveTrending(ctx, r, t)
		if !ok {
			continue
		}
		if r.recommended[item.ID] {
			r.add(item, scoring.ReasonAgain, scoring.ReasonTrending)
		} else {
			r.add(item, scoring.ReasonTrending)
		}
	}
	return nil
}

// bestMatch resolves a title to the first search result.
func (s *RecommendationService) bestMatch(ctx context.Context, r *run, title string) (models.CatalogItem, bool) {
	items, err := s.search.Search(ctx, title)
	if err != nil {
		slog.Warn("catalog search failed", "user_id", r.userID, "title", title, "error", err)
		return models.CatalogItem{}, false
	}
	if len(items) == 0 {
		slog.Warn("no catalog match", "user_id", r.userID, "title", title)
		return models.CatalogItem{}, false
	}
	return items[0], true
}

// resolveTrending re-resolves a trending entry through search to get its
// full metadata, preferring the result with the same id.
func (s *RecommendationService) resolveTrending(ctx context.Context, r *run, t models.TrendingItem) (models.CatalogItem, bool) {
	items, err := s.search.Search(ctx, t.Title)
	if err != nil {
		slog.Warn("failed to resolve trending title", "user_id", r.userID, "title", t.Title, "error", err)
		return models.CatalogItem{}, false
	}
	for _, item := range items {
		if item.ID == t.ID {
			return item, true
		}
	}
	slog.Warn("trending title not found by search", "user_id", r.userID, "title", t.Title, "tmdb_id", t.ID)
	return models.CatalogItem{}, false
}
