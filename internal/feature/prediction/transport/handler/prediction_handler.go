// Package handler はpredictionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"math"
	"net/http"

	"fin_backend/internal/feature/prediction/domain/entity"
	"fin_backend/internal/feature/prediction/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// Predictor は予測器のインターフェースです。
type Predictor interface {
	PredictNext(ctx context.Context) entity.Prediction
}

// PredictionHandler は予測APIのHTTPリクエストを処理します。
type PredictionHandler struct {
	p Predictor
}

// NewPredictionHandler はPredictionHandlerを生成します。
func NewPredictionHandler(p Predictor) *PredictionHandler {
	return &PredictionHandler{p: p}
}

// GetPrediction は次期リターンの予測を返します。
//
// エンドポイント例:
// GET /prediction
func (h *PredictionHandler) GetPrediction(c *gin.Context) {
	pred := h.p.PredictNext(c.Request.Context())
	c.JSON(http.StatusOK, dto.PredictionResponse{
		Model:      pred.Model,
		NextReturn: math.Round(pred.NextReturn*10000) / 10000,
	})
}
