// Package handler はsnapshotフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"fin_backend/internal/api"
	"fin_backend/internal/feature/snapshot/domain/entity"
	"fin_backend/internal/feature/snapshot/transport/http/dto"
	"fin_backend/internal/shared/symbol"

	"github.com/gin-gonic/gin"
)

// SnapshotUsecase はスナップショット取得のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SnapshotUsecase interface {
	GetSnapshot(ctx context.Context, raw string) (entity.Snapshot, error)
}

// PriceSource は価格取得のインターフェースです。
type PriceSource interface {
	GetPrice(ctx context.Context, raw string) (float64, error)
}

// SnapshotHandler はスナップショットと価格のHTTPリクエストを処理します。
type SnapshotHandler struct {
	uc     SnapshotUsecase
	prices PriceSource
}

// NewSnapshotHandler はSnapshotHandlerを生成します。
func NewSnapshotHandler(uc SnapshotUsecase, prices PriceSource) *SnapshotHandler {
	return &SnapshotHandler{uc: uc, prices: prices}
}

// GetSnapshot は銘柄のスナップショットをJSONで返します。
//
// エンドポイント例:
// GET /stocks/:symbol/snapshot
func (h *SnapshotHandler) GetSnapshot(c *gin.Context) {
	snap, err := h.uc.GetSnapshot(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(snap))
}

// GetPrice は銘柄の現在価格をJSONで返します。
//
// エンドポイント例:
// GET /stocks/:symbol/price
func (h *SnapshotHandler) GetPrice(c *gin.Context) {
	raw := c.Param("symbol")
	price, err := h.prices.GetPrice(c.Request.Context(), raw)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PriceResponse{Symbol: symbol.Normalize(raw), Price: price})
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, symbol.ErrInvalidSymbol) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Symbol required"})
		return
	}
	slog.Error("snapshot request failed", "error", err, "symbol", c.Param("symbol"))
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
}
