// Package csvportfolio はHistoricalData CSVをダッシュボードの系列として読み込みます。
package csvportfolio

import (
	"context"

	"fin_backend/internal/feature/dashboard/domain/entity"
	"fin_backend/internal/feature/dashboard/usecase"
	"fin_backend/internal/feature/prediction/adapters/csvseries"
)

// Source は csvseries.Loader を SeriesSource に合わせます。
type Source struct {
	loader *csvseries.Loader
}

var _ usecase.SeriesSource = (*Source)(nil)

// NewSource は path のCSVを読むSourceを生成します。
func NewSource(path string) *Source {
	return &Source{loader: csvseries.NewLoader(path)}
}

// LoadPoints はファイルを毎回読み直し、日付と終値を古い順で返します。
func (s *Source) LoadPoints(ctx context.Context) ([]entity.Point, error) {
	raw, err := s.loader.LoadPoints(ctx)
	if err != nil {
		return nil, err
	}
	points := make([]entity.Point, len(raw))
	for i, p := range raw {
		points[i] = entity.Point{Date: p.Date, Value: p.Close}
	}
	return points, nil
}
