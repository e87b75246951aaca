// Package usecase は株価スナップショットの組み立てとフォールバックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	predentity "fin_backend/internal/feature/prediction/domain/entity"
	"fin_backend/internal/feature/snapshot/domain/entity"
	"fin_backend/internal/shared/symbol"
)

const (
	// DefaultCallTimeout は外部API呼び出し1回あたりの上限時間です。
	DefaultCallTimeout = 12 * time.Second
	// SMAPeriod は移動平均の期間です。
	SMAPeriod = 20
	// RSIPeriod はRSIの期間です。
	RSIPeriod = 14
)

// errZeroPrevClose は前回終値が0で変化率を計算できないことを示します。
var errZeroPrevClose = errors.New("previous close is zero")

// errNonFinite は外部データにNaNまたは無限大が含まれていたことを示します。
var errNonFinite = errors.New("non-finite value from market data")

// MarketData はスナップショットに必要な外部データを取得します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketData interface {
	// IntradayCloses は5分足の終値を新しい順で返します。
	IntradayCloses(ctx context.Context, symbol string) ([]float64, error)
	// SMA は日足SMAの最新値を返します。データがない場合はnilです。
	SMA(ctx context.Context, symbol string, period int) (*float64, error)
	// RSI は日足RSIの最新値を返します。データがない場合はnilです。
	RSI(ctx context.Context, symbol string, period int) (*float64, error)
}

// Predictor は次期リターンの予測器です。
type Predictor interface {
	PredictNext(ctx context.Context) predentity.Prediction
}

// SnapshotCache はスナップショットのTTLキャッシュです。
type SnapshotCache interface {
	GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (entity.Snapshot, error)) (entity.Snapshot, error)
}

// SnapshotUsecase は銘柄のスナップショットを返します。
type SnapshotUsecase struct {
	market      MarketData // nil の場合はライブ経路を使わない
	prices      *PriceSource
	mock        *MockGenerator
	predictor   Predictor
	cache       SnapshotCache
	callTimeout time.Duration
}

// NewSnapshotUsecase はSnapshotUsecaseを生成します。
// marketがnilの場合は常に疑似データを返します。callTimeoutが0以下の場合はDefaultCallTimeoutを使います。
func NewSnapshotUsecase(market MarketData, prices *PriceSource, mock *MockGenerator, predictor Predictor, cache SnapshotCache, callTimeout time.Duration) *SnapshotUsecase {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	return &SnapshotUsecase{
		market:      market,
		prices:      prices,
		mock:        mock,
		predictor:   predictor,
		cache:       cache,
		callTimeout: callTimeout,
	}
}

// GetSnapshot は銘柄のスナップショットを返します。
// 空の銘柄はsymbol.ErrInvalidSymbolを返します。外部APIの失敗は疑似データで置き換えられ、呼び出し元には返りません。
func (u *SnapshotUsecase) GetSnapshot(ctx context.Context, raw string) (entity.Snapshot, error) {
	sym, err := symbol.Parse(raw)
	if err != nil {
		return entity.Snapshot{}, err
	}
	return u.cache.GetOrCompute(ctx, sym, func(ctx context.Context) (entity.Snapshot, error) {
		return u.build(ctx, sym), nil
	})
}

func (u *SnapshotUsecase) build(ctx context.Context, sym string) entity.Snapshot {
	if u.market != nil {
		snap, err := u.live(ctx, sym)
		if err == nil {
			return snap
		}
		slog.Warn("live snapshot failed, falling back to mock", "symbol", sym, "error", err)
	}
	return u.mockSnapshot(ctx, sym)
}

// live は外部APIからスナップショットを組み立てます。途中のどのエラーでも全体を中止します。
func (u *SnapshotUsecase) live(ctx context.Context, sym string) (entity.Snapshot, error) {
	closes, err := withTimeout(ctx, u.callTimeout, func(ctx context.Context) ([]float64, error) {
		return u.market.IntradayCloses(ctx, sym)
	})
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("intraday: %w", err)
	}

	var price, pct float64
	if len(closes) >= 2 {
		last, prev := closes[0], closes[1]
		if prev == 0 {
			return entity.Snapshot{}, errZeroPrevClose
		}
		price = last
		pct = (last - prev) / prev * 100
	} else {
		// 2点未満の場合は単体の価格取得を使い、変化率は0とする
		price, err = u.prices.GetPrice(ctx, sym)
		if err != nil {
			return entity.Snapshot{}, fmt.Errorf("price: %w", err)
		}
	}

	sma, err := withTimeout(ctx, u.callTimeout, func(ctx context.Context) (*float64, error) {
		return u.market.SMA(ctx, sym, SMAPeriod)
	})
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("sma: %w", err)
	}

	rsi, err := withTimeout(ctx, u.callTimeout, func(ctx context.Context) (*float64, error) {
		return u.market.RSI(ctx, sym, RSIPeriod)
	})
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("rsi: %w", err)
	}

	if !finite(price) || !finite(pct) || (sma != nil && !finite(*sma)) || (rsi != nil && !finite(*rsi)) {
		return entity.Snapshot{}, errNonFinite
	}

	pred := u.predictor.PredictNext(ctx)
	return assemble(sym, price, pct, sma, rsi, pred, entity.SourceLive), nil
}

// mockSnapshot は疑似データでスナップショットを組み立てます。失敗しません。
func (u *SnapshotUsecase) mockSnapshot(ctx context.Context, sym string) entity.Snapshot {
	price := u.mock.Price(sym)
	m := u.mock.Metrics(sym, price)
	pred := u.predictor.PredictNext(ctx)
	return assemble(sym, price, m.PercentChange, &m.SMA20, &m.RSI14, pred, entity.SourceMock)
}

// assemble は丸めを適用してスナップショットを作ります（価格・変化率・指標は2桁、予測は4桁）。
func assemble(sym string, price, pct float64, sma, rsi *float64, pred predentity.Prediction, source string) entity.Snapshot {
	return entity.Snapshot{
		Symbol:        sym,
		Price:         round(price, 2),
		PercentChange: round(pct, 2),
		SMA20:         roundPtr(sma, 2),
		RSI14:         roundPtr(rsi, 2),
		PredReturn:    round(pred.NextReturn, 4),
		PredModel:     pred.Model,
		Source:        source,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func roundPtr(v *float64, places int) *float64 {
	if v == nil {
		return nil
	}
	r := round(*v, places)
	return &r
}
