// Package handler はcreditフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"fin_backend/internal/api"
	"fin_backend/internal/feature/credit/domain/entity"
	"fin_backend/internal/feature/credit/transport/http/dto"
	"fin_backend/internal/feature/credit/usecase"

	"github.com/gin-gonic/gin"
)

// CreditUsecase はスコア計算のユースケースインターフェースです。
type CreditUsecase interface {
	CalculateScore(f entity.Features) (int, error)
}

// CreditHandler はクレジットスコアのHTTPリクエストを処理します。
type CreditHandler struct {
	uc CreditUsecase
}

// NewCreditHandler はCreditHandlerを生成します。
func NewCreditHandler(uc CreditUsecase) *CreditHandler {
	return &CreditHandler{uc: uc}
}

// SimpleScore は5つの入力から300〜850のスコアを返します。
//
// エンドポイント例:
// POST /credit/simple_score
func (h *CreditHandler) SimpleScore(c *gin.Context) {
	var req dto.SimpleScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	score, err := h.uc.CalculateScore(entity.Features{
		PaymentHistory:       *req.PaymentHistory,
		CreditUtilization:    *req.CreditUtilization,
		CreditAgeYears:       *req.CreditAgeYears,
		CreditTypesCount:     *req.CreditTypesCount,
		RecentInquiriesCount: *req.RecentInquiriesCount,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidFeatures) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("credit score failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.ScoreResponse{Score: score})
}
