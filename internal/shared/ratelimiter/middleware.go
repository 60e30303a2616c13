package ratelimiter

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/api"
)

// Middleware はクライアントIPとルートごとにリクエストを制限するGinミドルウェアを返します。
// 上限を超えた場合は429を返します。リミッターの障害時はリクエストを通します。
func Middleware(l Limiter, retryAfter time.Duration) gin.HandlerFunc {
	retrySeconds := strconv.Itoa(int(math.Ceil(retryAfter.Seconds())))

	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()

		allowed, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if !allowed {
			slog.Warn("rate limit exceeded", "remote_addr", c.ClientIP(), "path", c.FullPath())
			c.Header("Retry-After", retrySeconds)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}
