// Package tmdb adapts The Movie Database API to the catalog search the
// recommendation pipeline consumes.
package tmdb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"movie-discovery-llm-recommender/internal/config"
	"movie-discovery-llm-recommender/internal/metrics"
	"movie-discovery-llm-recommender/internal/models"
	"movie-discovery-llm-recommender/internal/resilience"
	"movie-discovery-llm-recommender/internal/vocab"
)

const trendingCacheTTL = time.Hour

// Catalog searches TMDB through a Redis cache, an outbound rate limiter
// and a circuit breaker. The best match of every search is enriched with
// its trailer and streaming platforms.
type Catalog struct {
	client   *Client
	redis    *redis.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker[any]
	cacheTTL time.Duration
	timeout  time.Duration
	language string
}

// NewCatalog creates a Catalog. rdb may be nil, in which case nothing is cached.
func NewCatalog(client *Client, rdb *redis.Client, cfg config.TMDBConfig) *Catalog {
	limit := rate.Inf
	if cfg.RequestRate > 0 {
		limit = rate.Limit(cfg.RequestRate)
	}
	return &Catalog{
		client:   client,
		redis:    rdb,
		limiter:  rate.NewLimiter(limit, max(cfg.Burst, 1)),
		breaker:  resilience.NewBreaker[any]("tmdb", resilience.BreakerSettings{}),
		cacheTTL: cfg.CacheTTL,
		timeout:  cfg.Timeout,
		language: cfg.Language,
	}
}

// Search returns catalog items matching query, best match first.
func (c *Catalog) Search(ctx context.Context, query string) ([]models.CatalogItem, error) {
	key := fmt.Sprintf("tmdb:search:%s:%s", c.language, vocab.NewText(query).Normalized())

	var items []models.CatalogItem
	if c.getCached(ctx, key, &items) {
		metrics.CatalogCacheHits.Inc()
		return items, nil
	}
	metrics.CatalogCacheMisses.Inc()

	items, err := call(ctx, c, "search", func(ctx context.Context) ([]models.CatalogItem, error) {
		return c.client.Search(ctx, query)
	})
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		c.enrich(ctx, &items[0])
	}
	c.setCache(ctx, key, items, c.cacheTTL)
	return items, nil
}

// Trending returns up to count trending titles.
func (c *Catalog) Trending(ctx context.Context, count int) ([]models.TrendingItem, error) {
	key := "tmdb:trending:" + c.language

	var items []models.TrendingItem
	if !c.getCached(ctx, key, &items) {
		var err error
		items, err = call(ctx, c, "trending", func(ctx context.Context) ([]models.TrendingItem, error) {
			return c.client.Trending(ctx)
		})
		if err != nil {
			return nil, err
		}
		c.setCache(ctx, key, items, trendingCacheTTL)
	}

	if count >= 0 && len(items) > count {
		items = items[:count]
	}
	return items, nil
}

// enrich adds trailer and platforms to item. Failures leave it unchanged.
func (c *Catalog) enrich(ctx context.Context, item *models.CatalogItem) {
	details, err := call(ctx, c, "details", func(ctx context.Context) (*Details, error) {
		return c.client.Details(ctx, item.ID, item.MediaType)
	})
	if err != nil {
		slog.Warn("failed to fetch TMDB details", "tmdb_id", item.ID, "error", err)
		return
	}
	item.TrailerURL = details.TrailerURL
	item.Platforms = details.Platforms
}

// call paces, times out and circuit-breaks one TMDB request.
func call[T any](ctx context.Context, c *Catalog, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := c.limiter.Wait(ctx); err != nil {
		return zero, fmt.Errorf("tmdb %s: %w", op, err)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return fn(ctx)
	})
	metrics.RecordCatalogRequest(op, err)
	if err != nil {
		return zero, fmt.Errorf("tmdb %s: %w", op, err)
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("tmdb %s: unexpected result type %T", op, result)
	}
	return typed, nil
}

// ---- Redis Helpers ----

func (c *Catalog) getCached(ctx context.Context, key string, dest any) bool {
	if c.redis == nil {
		return false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("failed to read cache", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		slog.Warn("discarding unreadable cache entry", "key", key, "error", err)
		return false
	}
	slog.Debug("cache hit", "key", key)
	return true
}

func (c *Catalog) setCache(ctx context.Context, key string, value any, ttl time.Duration) {
	if c.redis == nil || ttl <= 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}
