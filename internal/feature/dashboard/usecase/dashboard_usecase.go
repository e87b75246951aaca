// Package usecase はダッシュボードの系列とKPIを組み立てます。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"fin_backend/internal/feature/dashboard/domain/entity"
)

const (
	// DefaultDays は days 未指定時に返す点数です。
	DefaultDays = 30
	// MaxDays は1回で返す点数の上限です。
	MaxDays = 365
)

// KPIの既定値。取引履歴を持たないので固定値を返す。
const (
	baselineSavings = 100000.0
	baselineCredit  = 740
	baselineReturns = 0.06
	baselineTaxOwed = 25000.0
)

var (
	// ErrSeriesUnavailable は系列ファイルが未設定か読めないことを示します。
	ErrSeriesUnavailable = errors.New("portfolio series unavailable")
	// ErrInvalidDays は days が範囲外であることを示します。
	ErrInvalidDays = fmt.Errorf("days must be between 1 and %d", MaxDays)
)

// SeriesSource は日付付きの終値を古い順で返します。
type SeriesSource interface {
	LoadPoints(ctx context.Context) ([]entity.Point, error)
}

// DashboardUsecase はダッシュボード用のデータを提供します。
type DashboardUsecase struct {
	src SeriesSource
}

// NewDashboardUsecase はDashboardUsecaseを生成します。srcがnilなら系列は常に利用不可です。
func NewDashboardUsecase(src SeriesSource) *DashboardUsecase {
	return &DashboardUsecase{src: src}
}

// PortfolioSeries は直近 days 件の終値を小数2桁に丸めて古い順で返します。
func (u *DashboardUsecase) PortfolioSeries(ctx context.Context, days int) ([]entity.Point, error) {
	if days < 1 || days > MaxDays {
		return nil, ErrInvalidDays
	}
	points, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(points) > days {
		points = points[len(points)-days:]
	}

	out := make([]entity.Point, len(points))
	for i, p := range points {
		out[i] = entity.Point{Date: p.Date, Value: math.Round(p.Value*100) / 100}
	}
	return out, nil
}

// KPIs は指標を返します。Returns は直近 DefaultDays 件の騰落率で、系列が無ければ既定値です。
func (u *DashboardUsecase) KPIs(ctx context.Context) entity.KPIs {
	k := entity.KPIs{
		Savings:      baselineSavings,
		CreditScore:  baselineCredit,
		Returns:      baselineReturns,
		TaxLiability: baselineTaxOwed,
	}

	points, err := u.load(ctx)
	if err != nil {
		slog.Debug("kpis use baseline returns", "error", err)
		return k
	}
	if len(points) > DefaultDays {
		points = points[len(points)-DefaultDays:]
	}
	first, last := points[0].Value, points[len(points)-1].Value
	if len(points) >= 2 && first > 0 {
		k.Returns = math.Round((last/first-1)*10000) / 10000
	}
	return k
}

func (u *DashboardUsecase) load(ctx context.Context) ([]entity.Point, error) {
	if u.src == nil {
		return nil, ErrSeriesUnavailable
	}
	points, err := u.src.LoadPoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSeriesUnavailable, err)
	}
	if len(points) == 0 {
		return nil, ErrSeriesUnavailable
	}
	return points, nil
}
