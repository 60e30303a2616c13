// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/auth/usecase"
)

// CachingUserRepository decorates a UserFinder with Redis caching.
// Only the public projection is cached; the password hash never reaches Redis.
// Lookup failures, including ErrUserNotFound, are never cached.
type CachingUserRepository struct {
	inner     usecase.UserFinder
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.UserFinder = (*CachingUserRepository)(nil)

// cachedUser is the JSON form stored in Redis.
type cachedUser struct {
	ID        uint      `json:"id"`
	Name      *string   `json:"name,omitempty"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCachingUserRepository decorates a UserFinder with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "identity".
// A nil rdb disables caching and every call goes to inner.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserFinder, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "identity"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByEmail retrieves a user, checking cache first then falling back to the database.
func (c *CachingUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByEmail(ctx, email)
	}

	email = usecase.NormalizeEmail(email)
	key := c.cacheKey(email)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var cu cachedUser
		if err := json.Unmarshal(b, &cu); err == nil {
			// A hit for a different address is treated as a miss and overwritten below.
			if cu.Email == email {
				return cu.toEntity(), nil
			}
		} else {
			// Delete corrupted cache entry
			_ = c.rdb.Del(ctx, key).Err()
		}
	}

	// 2) Fallback to database
	user, err := c.inner.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(fromEntity(user)); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return user.Public(), nil
}

// cacheKey generates a cache key for an email.
// The address is used verbatim after the namespace so distinct addresses never share a key.
func (c *CachingUserRepository) cacheKey(email string) string {
	return fmt.Sprintf("%s:%s", c.namespace, email)
}

func fromEntity(u *entity.User) cachedUser {
	return cachedUser{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func (cu cachedUser) toEntity() *entity.User {
	return &entity.User{ID: cu.ID, Name: cu.Name, Email: cu.Email, CreatedAt: cu.CreatedAt, UpdatedAt: cu.UpdatedAt}
}
