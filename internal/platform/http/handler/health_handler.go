// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/api"
)

// pingTimeout はヘルスチェック時のDB疎通確認のタイムアウトです。
const pingTimeout = 2 * time.Second

// Pinger はストアの疎通確認を行います。*sql.DBが満たします。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health は / と /healthz のヘルスチェックを処理するハンドラーを返します。
// DBに到達できない場合は503を返します。キャッシュは常に禁止します。
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			slog.Error("health check failed", "error", err)
			if c.Request.Method == http.MethodHead {
				c.Status(http.StatusServiceUnavailable)
				return
			}
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "database unavailable"})
			return
		}

		if c.Request.Method == http.MethodHead {
			c.Status(http.StatusOK)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
