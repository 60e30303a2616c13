package di

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"todo_backend/internal/app/router"
	"todo_backend/internal/config"
	authadapters "todo_backend/internal/feature/auth/adapters"
	authhandler "todo_backend/internal/feature/auth/transport/handler"
	authusecase "todo_backend/internal/feature/auth/usecase"
	todoadapters "todo_backend/internal/feature/todos/adapters"
	todohandler "todo_backend/internal/feature/todos/transport/handler"
	todousecase "todo_backend/internal/feature/todos/usecase"
	healthhandler "todo_backend/internal/platform/http/handler"
	jwtmw "todo_backend/internal/platform/jwt"
	"todo_backend/internal/platform/password"
)

// NewApp wires repositories, usecases and handlers into a gin engine.
// rdb may be nil, in which case caching and rate limiting stay in-process.
func NewApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *slog.Logger) (*gin.Engine, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	taskRepo := todoadapters.NewTaskRepository(db)

	// Platform
	tokens := jwtmw.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	identityUsers := NewIdentityUserFinder(rdb, userRepo, cfg.Redis.IdentityCacheTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, tokens)
	resolver := authusecase.NewIdentityResolver(tokens, identityUsers)
	taskUC := todousecase.NewTaskUsecase(taskRepo, cfg.Todos.MaxLimit)

	// Handler
	engine, err := router.NewRouter(router.Deps{
		Auth:            authhandler.NewAuthHandler(authUC),
		Tasks:           todohandler.NewTaskHandler(taskUC),
		Health:          healthhandler.Health(sqlDB),
		Resolver:        resolver,
		Limiter:         NewRateLimiter(rdb, cfg.RateLimit),
		RateLimitWindow: cfg.RateLimit.Window,
		TrustedProxies:  cfg.RateLimit.TrustedProxies,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}
	return engine, nil
}
