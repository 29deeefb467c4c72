package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"movie-discovery-llm-recommender/internal/models"
)

type fakeProfiles struct {
	profiles map[string]*models.UserProfile
}

func (f *fakeProfiles) FindByID(_ context.Context, userID string) (*models.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return p, nil
}

type fakeHistory struct {
	seen, favorites, ratings, wishlist []models.HistoryItem
	errs                               map[string]error
}

func (f *fakeHistory) GetSeenItems(context.Context, string) ([]models.HistoryItem, error) {
	return f.seen, f.errs["seen"]
}

func (f *fakeHistory) GetFavorites(context.Context, string) ([]models.HistoryItem, error) {
	return f.favorites, f.errs["favorites"]
}

func (f *fakeHistory) GetRatings(context.Context, string) ([]models.HistoryItem, error) {
	return f.ratings, f.errs["ratings"]
}

func (f *fakeHistory) GetWishlist(context.Context, string) ([]models.HistoryItem, error) {
	return f.wishlist, f.errs["wishlist"]
}

type fakeRecommendations struct {
	mu      sync.Mutex
	history []models.Recommendation // newest first
	saved   []models.Recommendation
	saveErr map[int]error
}

func (f *fakeRecommendations) FindLatestByUser(_ context.Context, _ string, limit int) ([]models.Recommendation, error) {
	if len(f.history) > limit {
		return f.history[:limit], nil
	}
	return f.history, nil
}

func (f *fakeRecommendations) FindAllByUser(context.Context, string) ([]models.Recommendation, error) {
	return f.history, nil
}

func (f *fakeRecommendations) FindPageByUser(_ context.Context, _ string, page, pageSize int) ([]models.Recommendation, int, error) {
	start := min((page-1)*pageSize, len(f.history))
	end := min(start+pageSize, len(f.history))
	return f.history[start:end], len(f.history), nil
}

func (f *fakeRecommendations) Save(_ context.Context, rec *models.Recommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.saveErr[rec.CatalogID]; err != nil {
		return err
	}
	f.saved = append(f.saved, *rec)
	return nil
}

func (f *fakeRecommendations) savedIDs() []int {
	var ids []int
	for _, r := range f.saved {
		ids = append(ids, r.CatalogID)
	}
	return ids
}

type fakeCatalogCache struct {
	items map[int]models.CatalogItem
	saved []models.CatalogItem
}

func (f *fakeCatalogCache) Save(_ context.Context, item models.CatalogItem) error {
	f.saved = append(f.saved, item)
	return nil
}

func (f *fakeCatalogCache) FindByID(_ context.Context, id int) (*models.CatalogItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &item, nil
}

type fakeActivity struct {
	entries []models.ActivityLogEntry
	err     error
}

func (f *fakeActivity) Log(_ context.Context, entry models.ActivityLogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

// fakeGenerator answers prompts with replies in order, then with "".
type fakeGenerator struct {
	replies []string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.prompts) > len(f.replies) {
		return "", nil
	}
	return f.replies[len(f.prompts)-1], nil
}

type fakeSearch struct {
	results  map[string][]models.CatalogItem
	trending []models.TrendingItem
	failing  map[string]bool
	queries  []string
}

func (f *fakeSearch) Search(_ context.Context, query string) ([]models.CatalogItem, error) {
	key := strings.ToLower(query)
	f.queries = append(f.queries, key)
	if f.failing[key] {
		return nil, errors.New("search timeout")
	}
	return f.results[key], nil
}

func (f *fakeSearch) Trending(_ context.Context, count int) ([]models.TrendingItem, error) {
	if len(f.trending) > count {
		return f.trending[:count], nil
	}
	return f.trending, nil
}

// index registers items so searching their title finds them.
func (f *fakeSearch) index(items ...models.CatalogItem) {
	if f.results == nil {
		f.results = make(map[string][]models.CatalogItem)
	}
	for _, it := range items {
		key := strings.ToLower(it.Title)
		f.results[key] = append(f.results[key], it)
	}
}

type fixture struct {
	profiles  *fakeProfiles
	history   *fakeHistory
	recs      *fakeRecommendations
	catalog   *fakeCatalogCache
	activity  *fakeActivity
	generator *fakeGenerator
	search    *fakeSearch
	svc       *RecommendationService
}

func newFixture(profile models.UserProfile) *fixture {
	f := &fixture{
		profiles:  &fakeProfiles{profiles: map[string]*models.UserProfile{profile.ID: &profile}},
		history:   &fakeHistory{},
		recs:      &fakeRecommendations{},
		catalog:   &fakeCatalogCache{},
		activity:  &fakeActivity{},
		generator: &fakeGenerator{},
		search:    &fakeSearch{},
	}
	f.svc = NewRecommendationService(Stores{
		Profiles:        f.profiles,
		History:         f.history,
		Recommendations: f.recs,
		Catalog:         f.catalog,
		Activity:        f.activity,
	}, f.generator, f.search, nil)

	var n int
	f.svc.newID = func() string {
		n++
		return "rec-" + string(rune('a'+n-1))
	}
	f.svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func title(id int, name string, genre int) models.CatalogItem {
	return models.CatalogItem{
		ID:          id,
		Title:       name,
		GenreIDs:    []int{genre},
		VoteAverage: 7,
		Popularity:  50,
		MediaType:   models.MediaMovie,
		ReleaseDate: "2010-07-15",
	}
}

func recommended(items ...models.CatalogItem) []models.Recommendation {
	out := make([]models.Recommendation, len(items))
	for i, it := range items {
		it := it
		out[i] = models.Recommendation{ID: "old", UserID: "u1", CatalogID: it.ID, Reason: "old", Item: &it}
	}
	return out
}

func lines(items ...models.CatalogItem) string {
	var sb strings.Builder
	for i, it := range items {
		sb.WriteString(string(rune('1'+i)) + ". " + it.Title + "\n")
	}
	return sb.String()
}

func responseIDs(list []models.RecommendationResponse) []int {
	out := make([]int, len(list))
	for i, r := range list {
		out[i] = r.CatalogID
	}
	return out
}
