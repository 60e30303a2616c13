// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"todo_backend/internal/config"
	"todo_backend/internal/shared/ratelimiter"
)

// NewRateLimiter creates a Limiter for the unauthenticated auth endpoints.
// If Redis is available, it returns a Redis-backed limiter shared by all instances.
// Otherwise, it falls back to an in-process limiter.
func NewRateLimiter(rdb *redis.Client, cfg config.RateLimitConfig) ratelimiter.Limiter {
	if rdb != nil {
		return ratelimiter.NewRedisLimiter(rdb, cfg.Requests, cfg.Window, "ratelimit")
	}
	return ratelimiter.NewMemoryLimiter(cfg.Requests, cfg.Window)
}
