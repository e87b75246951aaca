// Package handler はdashboardフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"fin_backend/internal/api"
	"fin_backend/internal/feature/dashboard/domain/entity"
	"fin_backend/internal/feature/dashboard/transport/http/dto"
	"fin_backend/internal/feature/dashboard/usecase"

	"github.com/gin-gonic/gin"
)

// DashboardUsecase はダッシュボードのユースケースインターフェースです。
type DashboardUsecase interface {
	PortfolioSeries(ctx context.Context, days int) ([]entity.Point, error)
	KPIs(ctx context.Context) entity.KPIs
}

// DashboardHandler はダッシュボードのHTTPリクエストを処理します。
type DashboardHandler struct {
	uc DashboardUsecase
}

// NewDashboardHandler はDashboardHandlerを生成します。
func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// PortfolioSeries は直近の終値推移を返します。
//
// エンドポイント例:
// GET /portfolio_series?days=30
func (h *DashboardHandler) PortfolioSeries(c *gin.Context) {
	days := usecase.DefaultDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "days must be an integer"})
			return
		}
		days = n
	}

	points, err := h.uc.PortfolioSeries(c.Request.Context(), days)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidDays) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("portfolio series failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Series unavailable"})
		return
	}

	res := dto.SeriesResponse{Series: make([]dto.SeriesPoint, len(points))}
	for i, p := range points {
		res.Series[i] = dto.SeriesPoint{Date: p.Date.Format("2006-01-02"), Value: p.Value}
	}
	c.JSON(http.StatusOK, res)
}

// KPIs はダッシュボードの指標を返します。
//
// エンドポイント例:
// GET /kpis
func (h *DashboardHandler) KPIs(c *gin.Context) {
	k := h.uc.KPIs(c.Request.Context())
	c.JSON(http.StatusOK, dto.KPIResponse{
		Savings:      k.Savings,
		CreditScore:  k.CreditScore,
		Returns:      k.Returns,
		TaxLiability: k.TaxLiability,
	})
}
