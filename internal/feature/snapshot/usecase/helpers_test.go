package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	predentity "fin_backend/internal/feature/prediction/domain/entity"
	"fin_backend/internal/feature/snapshot/domain/entity"
	"fin_backend/internal/feature/snapshot/usecase"
	"fin_backend/internal/platform/cache"
)

// ErrUpstream はモックと期待値の間で共有されるセンチネルエラーです。
var ErrUpstream = errors.New("upstream error")

// fixedNow はテスト全体で使う固定時刻です（Unix秒の下1桁が0になる）。
var fixedNow = time.Unix(1736935200, 0)

func fixedClock() time.Time { return fixedNow }

// mockMarket はMarketDataインターフェースのモック実装です。
type mockMarket struct {
	IntradayFunc func(ctx context.Context, symbol string) ([]float64, error)
	SMAFunc      func(ctx context.Context, symbol string, period int) (*float64, error)
	RSIFunc      func(ctx context.Context, symbol string, period int) (*float64, error)

	IntradayCalls atomic.Int32
	SMACalls      atomic.Int32
	RSICalls      atomic.Int32
}

func (m *mockMarket) IntradayCloses(ctx context.Context, symbol string) ([]float64, error) {
	m.IntradayCalls.Add(1)
	if m.IntradayFunc != nil {
		return m.IntradayFunc(ctx, symbol)
	}
	return nil, errors.New("IntradayFunc is not implemented")
}

func (m *mockMarket) SMA(ctx context.Context, symbol string, period int) (*float64, error) {
	m.SMACalls.Add(1)
	if m.SMAFunc != nil {
		return m.SMAFunc(ctx, symbol, period)
	}
	return nil, errors.New("SMAFunc is not implemented")
}

func (m *mockMarket) RSI(ctx context.Context, symbol string, period int) (*float64, error) {
	m.RSICalls.Add(1)
	if m.RSIFunc != nil {
		return m.RSIFunc(ctx, symbol, period)
	}
	return nil, errors.New("RSIFunc is not implemented")
}

// mockQuotes はQuoteFetcherインターフェースのモック実装です。
type mockQuotes struct {
	price float64
	err   error
	calls atomic.Int32
}

func (m *mockQuotes) GlobalQuote(ctx context.Context, symbol string) (float64, error) {
	m.calls.Add(1)
	return m.price, m.err
}

// stubPredictor は固定の予測を返すPredictorです。
type stubPredictor struct {
	pred predentity.Prediction
}

func (s stubPredictor) PredictNext(ctx context.Context) predentity.Prediction {
	return s.pred
}

var naivePred = stubPredictor{pred: predentity.Prediction{Model: predentity.ModelNaive, NextReturn: 0.00123456}}

func ptr(v float64) *float64 { return &v }

// healthyMarket は全ての呼び出しが成功するMarketDataを返します。
func healthyMarket() *mockMarket {
	return &mockMarket{
		IntradayFunc: func(ctx context.Context, symbol string) ([]float64, error) {
			return []float64{102, 100, 99}, nil
		},
		SMAFunc: func(ctx context.Context, symbol string, period int) (*float64, error) {
			return ptr(150.12345), nil
		},
		RSIFunc: func(ctx context.Context, symbol string, period int) (*float64, error) {
			return ptr(55.5551), nil
		},
	}
}

// newUsecase はテスト用のSnapshotUsecaseを組み立てます。marketがnilの場合はライブ経路なしです。
func newUsecase(market usecase.MarketData, quotes usecase.QuoteFetcher, callTimeout time.Duration) *usecase.SnapshotUsecase {
	mock := usecase.NewMockGenerator(fixedClock)
	prices := usecase.NewPriceSource(quotes, mock, cache.NewTTLCache[float64](time.Minute, 16, cache.WithClock(fixedClock)), 0)
	snapCache := cache.NewTTLCache[entity.Snapshot](time.Minute, 16, cache.WithClock(fixedClock))
	return usecase.NewSnapshotUsecase(market, prices, mock, naivePred, snapCache, callTimeout)
}
