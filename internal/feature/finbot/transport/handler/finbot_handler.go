// Package handler はfinbotフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"fin_backend/internal/api"
	"fin_backend/internal/feature/finbot/transport/http/dto"
	"fin_backend/internal/feature/finbot/usecase"

	"github.com/gin-gonic/gin"
)

// FinBotUsecase はチャット応答のユースケースインターフェースです。
type FinBotUsecase interface {
	Reply(ctx context.Context, message string) (string, error)
}

// FinBotHandler はチャットのHTTPリクエストを処理します。
type FinBotHandler struct {
	uc FinBotUsecase
}

// NewFinBotHandler はFinBotHandlerを生成します。
func NewFinBotHandler(uc FinBotUsecase) *FinBotHandler {
	return &FinBotHandler{uc: uc}
}

// Chat はメッセージへの応答を {"message": "..."} で返します。
//
// エンドポイント例:
// POST /finbot/chat {"message": "how should I budget?"}
func (h *FinBotHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	reply, err := h.uc.Reply(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyMessage) || errors.Is(err, usecase.ErrMessageTooLong) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("finbot reply failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.ChatResponse{Message: reply})
}
