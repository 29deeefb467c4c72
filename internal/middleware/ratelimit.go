package middleware

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"

	"movie-discovery-llm-recommender/internal/config"
	"movie-discovery-llm-recommender/internal/metrics"
)

// RateLimiter provides Redis-backed fixed window rate limiting per user.
type RateLimiter struct {
	rdb     *redis.Client
	maxReqs int
	window  time.Duration
}

// NewRateLimiter creates a rate limiter. A nil client disables limiting.
func NewRateLimiter(rdb *redis.Client, cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		rdb:     rdb,
		maxReqs: cfg.Max,
		window:  time.Duration(cfg.WindowSeconds) * time.Second,
	}
}

// Handler returns a Fiber middleware handler for rate limiting. Requests are
// keyed by the :id route param, falling back to the client IP.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		if rl.rdb == nil || rl.maxReqs <= 0 {
			return c.Next()
		}

		subject := c.Params("id")
		if subject == "" {
			subject = c.IP()
		}
		key := fmt.Sprintf("ratelimit:%s:%s", c.Route().Path, subject)
		ctx := c.Context()

		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			// fail open
			slog.Warn("rate limiter unavailable", "key", key, "error", err)
			return c.Next()
		}
		if count == 1 {
			rl.rdb.Expire(ctx, key, rl.window)
		}

		ttl, _ := rl.rdb.TTL(ctx, key).Result()
		if ttl < 0 {
			ttl = rl.window
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.maxReqs))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(rl.maxReqs)-count), 10))
		c.Set("X-RateLimit-Reset", strconv.Itoa(int(ttl.Seconds())))

		if int(count) > rl.maxReqs {
			metrics.RateLimited.Inc()
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "rate limit exceeded",
				"retry_after": int(ttl.Seconds()),
			})
		}

		return c.Next()
	}
}
