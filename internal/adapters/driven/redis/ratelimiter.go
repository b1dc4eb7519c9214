// Package redis provides Redis-backed adapters for cross-instance state:
// the request rate limiter and the revoked-token denylist.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RateLimiter = (*RateLimiter)(nil)

const rateLimitPrefix = "ratelimit:"

// RateLimiter implements a fixed-window limiter on Redis. The window key
// carries the Redis TTL, so counters expire without any sweeper.
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a Redis-backed RateLimiter
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow records a hit for key and reports whether it fits the window budget.
func (l *RateLimiter) Allow(ctx context.Context, key string, window time.Duration, max int) (bool, error) {
	redisKey := rateLimitPrefix + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	// NX keeps the window anchored at the first hit.
	pipe.ExpireNX(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}

	return incr.Val() <= int64(max), nil
}
