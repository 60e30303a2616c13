package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"todo_backend/internal/feature/auth/usecase"
	"todo_backend/internal/platform/cache"
)

// NewIdentityUserFinder creates the user lookup used to resolve bearer tokens.
// If Redis is available, lookups are cached. Otherwise, users are read from the database.
func NewIdentityUserFinder(rdb *redis.Client, users usecase.UserFinder, ttl time.Duration) usecase.UserFinder {
	if rdb != nil {
		return cache.NewCachingUserRepository(rdb, ttl, users, "identity")
	}
	return users
}
