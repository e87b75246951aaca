// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fin_backend/internal/api"
)

// readyTimeout は依存先1つあたりの確認時間の上限です。
const readyTimeout = 2 * time.Second

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, api.StatusResponse{Status: "ok"})
	}
}

// Check は依存先（DB・Redisなど）の疎通を確認する関数です。
type Check func(ctx context.Context) error

// Ready は登録された全チェックが成功した場合に200を返す /readyz ハンドラーを生成します。
// 任意の依存先が失敗した場合は503と失敗した依存先名を返します。
func Ready(checks map[string]Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		for name, check := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
			err := check(ctx)
			cancel()
			if err != nil {
				slog.Warn("readiness check failed", "dependency", name, "error", err)
				c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: name + " unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, api.StatusResponse{Status: "ready"})
	}
}
