// Package usecase は次期リターン予測のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"

	"fin_backend/internal/feature/prediction/domain/entity"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// RSIPeriod は特徴量に使うRSIの期間です。
	RSIPeriod = 14
	// MinCloses は学習に必要な最小の終値数です。
	MinCloses = 30
	// NaiveSigma はナイーブモデルの標準偏差です。
	NaiveSigma = 0.01
)

// ErrInsufficientData は学習データが足りないことを示します。
var ErrInsufficientData = errors.New("insufficient price history")

// SeriesLoader は学習用の終値系列（古い順）を読み込みます。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SeriesLoader interface {
	LoadCloses(ctx context.Context) ([]float64, error)
}

// Predictor は起動時に一度だけ学習し、その結果を返し続ける予測器です。
// 学習に失敗した場合はN(0, 0.01)から毎回サンプルするナイーブモデルになります。
type Predictor struct {
	trained *entity.Prediction

	mu    sync.Mutex
	naive distuv.Normal
}

// Option はPredictorの設定を変更します。
type Option func(*Predictor)

// WithSource はナイーブモデルの乱数源を差し替えます。テスト用です。
func WithSource(src rand.Source) Option {
	return func(p *Predictor) {
		p.naive.Src = src
	}
}

// NewPredictor はloaderから系列を読み込んで学習したPredictorを生成します。
// loaderがnilの場合や学習に失敗した場合はナイーブモデルを使います。エラーは返しません。
func NewPredictor(ctx context.Context, loader SeriesLoader, opts ...Option) *Predictor {
	p := &Predictor{naive: distuv.Normal{Mu: 0, Sigma: NaiveSigma}}
	for _, opt := range opts {
		opt(p)
	}

	if loader == nil {
		slog.Info("predictor: no price history configured, using naive model")
		return p
	}

	closes, err := loader.LoadCloses(ctx)
	if err != nil {
		slog.Warn("predictor: failed to load price history, using naive model", "error", err)
		return p
	}

	next, err := Train(closes)
	if err != nil {
		slog.Warn("predictor: training failed, using naive model", "error", err, "points", len(closes))
		return p
	}

	p.trained = &entity.Prediction{Model: entity.ModelOLSRSI, NextReturn: next}
	slog.Info("predictor: trained", "model", entity.ModelOLSRSI, "points", len(closes), "next_return", next)
	return p
}

// PredictNext は次期リターンの予測を返します。ブロックせず、失敗もしません。
func (p *Predictor) PredictNext(ctx context.Context) entity.Prediction {
	if p.trained != nil {
		return *p.trained
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return entity.Prediction{Model: entity.ModelNaive, NextReturn: p.naive.Rand()}
}

// Train は正規化したRSI(14)に対する翌期リターンの最小二乗回帰を行い、
// 最新のRSIから次期リターンを予測します。
func Train(closes []float64) (float64, error) {
	if len(closes) < MinCloses {
		return 0, fmt.Errorf("%w: need %d closes, got %d", ErrInsufficientData, MinCloses, len(closes))
	}
	for i, c := range closes {
		if c <= 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return 0, fmt.Errorf("invalid close %v at index %d", c, i)
		}
	}

	rsi := talib.Rsi(closes, RSIPeriod)

	// RSIはRSIPeriod番目以降で有効。最後の点は翌期リターンがないので特徴量のみ。
	xs := make([]float64, 0, len(closes)-RSIPeriod-1)
	ys := make([]float64, 0, len(closes)-RSIPeriod-1)
	for t := RSIPeriod; t < len(closes)-1; t++ {
		xs = append(xs, rsi[t]/100)
		ys = append(ys, (closes[t+1]-closes[t])/closes[t])
	}

	if stat.Variance(xs, nil) == 0 {
		return 0, errors.New("rsi feature has zero variance")
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	next := alpha + beta*rsi[len(rsi)-1]/100
	if math.IsNaN(next) || math.IsInf(next, 0) {
		return 0, fmt.Errorf("non-finite prediction %v", next)
	}
	return next, nil
}
