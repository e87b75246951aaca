// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"fin_backend/internal/api"
	snapentity "fin_backend/internal/feature/snapshot/domain/entity"
	snapdto "fin_backend/internal/feature/snapshot/transport/http/dto"
	"fin_backend/internal/feature/watchlist/transport/http/dto"
	jwtmw "fin_backend/internal/platform/jwt"
	"fin_backend/internal/shared/symbol"

	"github.com/gin-gonic/gin"
)

// WatchlistUsecase はウォッチリスト操作のユースケースインターフェースです。
type WatchlistUsecase interface {
	Add(ctx context.Context, userID uint, raw string) (string, int, error)
	Remove(ctx context.Context, userID uint, raw string) (string, int, error)
	ListWithSnapshots(ctx context.Context, userID uint) ([]snapentity.Snapshot, error)
}

// WatchlistHandler はウォッチリストのHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler はWatchlistHandlerを生成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// List はウォッチリストの各銘柄のスナップショットを返します。
//
// エンドポイント例:
// GET /watchlist
func (h *WatchlistHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	snaps, err := h.uc.ListWithSnapshots(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]snapdto.SnapshotResponse, 0, len(snaps))
	for _, s := range snaps {
		items = append(items, snapdto.FromEntity(s))
	}
	c.JSON(http.StatusOK, dto.ListResponse{Items: items})
}

// Add は銘柄をウォッチリストに追加します。
//
// エンドポイント例:
// POST /watchlist {"symbol": "AAPL"}
func (h *WatchlistHandler) Add(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	sym, n, err := h.uc.Add(c.Request.Context(), userID, req.Symbol)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MutationResponse{OK: true, Symbol: sym, Count: n})
}

// Remove は銘柄をウォッチリストから削除します。存在しない銘柄でも成功します。
//
// エンドポイント例:
// DELETE /watchlist/:symbol
func (h *WatchlistHandler) Remove(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	sym, n, err := h.uc.Remove(c.Request.Context(), userID, c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MutationResponse{OK: true, Symbol: sym, Count: n})
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, symbol.ErrInvalidSymbol) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Symbol required"})
		return
	}
	slog.Error("watchlist request failed", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
}
