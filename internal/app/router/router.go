package router

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"todo_backend/internal/api"
	authhandler "todo_backend/internal/feature/auth/transport/handler"
	todohandler "todo_backend/internal/feature/todos/transport/handler"
	"todo_backend/internal/platform/http/middleware"
	jwtmw "todo_backend/internal/platform/jwt"
	"todo_backend/internal/shared/ratelimiter"
)

// Deps はルーターが必要とするハンドラーとミドルウェアの依存関係です。
type Deps struct {
	Auth     *authhandler.AuthHandler
	Tasks    *todohandler.TaskHandler
	Health   gin.HandlerFunc
	Resolver jwtmw.UserResolver

	Limiter         ratelimiter.Limiter
	RateLimitWindow time.Duration
	// TrustedProxies が空の場合、X-Forwarded-Forは無視されます。
	TrustedProxies  []string

	// AllowedOrigins に"*"が含まれる場合はすべてのオリジンを許可します。
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter はルートとミドルウェアを登録したgin.Engineを生成します。
func NewRouter(d Deps) (*gin.Engine, error) {
	api.RegisterValidators()

	r := gin.New()
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(d.Logger))
	r.Use(cors.New(corsConfig(d.AllowedOrigins)))

	// 認証不要
	// 導通確認用
	r.GET("/", d.Health)
	r.HEAD("/", d.Health)
	r.GET("/healthz", d.Health)
	r.HEAD("/healthz", d.Health)

	limited := ratelimiter.Middleware(d.Limiter, d.RateLimitWindow)
	// 新規ユーザー登録
	r.POST("/users/register", limited, d.Auth.Register)
	// ログイン（JWT 発行）
	r.POST("/login", limited, d.Auth.Login)
	r.GET("/users/:id", d.Auth.GetUser)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	todos := r.Group("/todos")
	todos.Use(jwtmw.AuthRequired(d.Resolver))
	{
		todos.GET("", d.Tasks.List)
		todos.POST("", d.Tasks.Create)
		todos.GET("/:id", d.Tasks.Get)
		todos.PUT("/:id", d.Tasks.Update)
		todos.DELETE("/:id", d.Tasks.Delete)
	}

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID}
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID}

	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
		if o != "" {
			allowed = append(allowed, o)
		}
	}
	if len(allowed) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = allowed
	return cfg
}
