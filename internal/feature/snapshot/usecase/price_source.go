package usecase

import (
	"context"
	"log/slog"
	"time"

	"fin_backend/internal/shared/symbol"
)

// DefaultQuoteTimeout は単一の株価取得の上限時間です。
const DefaultQuoteTimeout = 10 * time.Second

// QuoteFetcher は外部APIから最新の株価を取得します。
type QuoteFetcher interface {
	GlobalQuote(ctx context.Context, symbol string) (float64, error)
}

// PriceCache は価格のTTLキャッシュです。
type PriceCache interface {
	GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (float64, error)) (float64, error)
}

// PriceSource は銘柄の現在価格を返します。
// 外部APIが設定されていればそれを使い、失敗した場合は疑似価格を返します。
type PriceSource struct {
	quotes  QuoteFetcher // nil の場合は常に疑似価格
	mock    *MockGenerator
	cache   PriceCache
	timeout time.Duration
}

// NewPriceSource はPriceSourceを生成します。timeoutが0以下の場合はDefaultQuoteTimeoutを使います。
func NewPriceSource(quotes QuoteFetcher, mock *MockGenerator, cache PriceCache, timeout time.Duration) *PriceSource {
	if timeout <= 0 {
		timeout = DefaultQuoteTimeout
	}
	return &PriceSource{quotes: quotes, mock: mock, cache: cache, timeout: timeout}
}

// GetPrice は正規化した銘柄の価格を返します。
// 空の銘柄はsymbol.ErrInvalidSymbolを返し、それ以外のエラーは返しません。
func (p *PriceSource) GetPrice(ctx context.Context, raw string) (float64, error) {
	sym, err := symbol.Parse(raw)
	if err != nil {
		return 0, err
	}
	return p.cache.GetOrCompute(ctx, sym, func(ctx context.Context) (float64, error) {
		return p.fetch(ctx, sym), nil
	})
}

func (p *PriceSource) fetch(ctx context.Context, sym string) float64 {
	if p.quotes != nil {
		price, err := withTimeout(ctx, p.timeout, func(ctx context.Context) (float64, error) {
			return p.quotes.GlobalQuote(ctx, sym)
		})
		if err == nil {
			return round(price, 2)
		}
		slog.Debug("live quote failed, using mock price", "symbol", sym, "error", err)
	}
	return p.mock.Price(sym)
}

// withTimeout はfnを期限付きのコンテキストで実行します。
func withTimeout[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(ctx)
}
