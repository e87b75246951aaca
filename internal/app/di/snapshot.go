package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"fin_backend/internal/feature/prediction/adapters/csvseries"
	predusecase "fin_backend/internal/feature/prediction/usecase"
	"fin_backend/internal/feature/snapshot/domain/entity"
	"fin_backend/internal/feature/snapshot/usecase"
	"fin_backend/internal/platform/cache"
	"fin_backend/internal/platform/config"
)

// NewPredictor trains the predictor from the configured series file.
// Without a series path it uses the naive model.
func NewPredictor(ctx context.Context, cfg *config.Config) *predusecase.Predictor {
	var loader predusecase.SeriesLoader
	if cfg.Predictor.SeriesPath != "" {
		loader = csvseries.NewLoader(cfg.Predictor.SeriesPath)
	}
	p := predusecase.NewPredictor(ctx, loader)
	slog.Info("predictor ready", "model", p.PredictNext(ctx).Model)
	return p
}

// NewSnapshotCache creates the snapshot cache. If Redis is available, the
// in-process LRU is backed by a shared Redis tier.
func NewSnapshotCache(cfg *config.Config, rdb *redis.Client) usecase.SnapshotCache {
	front := cache.NewTTLCache[entity.Snapshot](cfg.Cache.SnapshotTTL, cfg.Cache.Capacity)
	if rdb == nil {
		return front
	}
	back := cache.NewRedisCache[entity.Snapshot](rdb, cfg.Cache.SnapshotTTL, "snapshot")
	return cache.NewTiered[entity.Snapshot](front, back)
}

// NewSnapshotPipeline wires the price source and snapshot builder around an
// optional live market.
func NewSnapshotPipeline(cfg *config.Config, market Market, predictor usecase.Predictor, rdb *redis.Client, now func() time.Time) (*usecase.SnapshotUsecase, *usecase.PriceSource) {
	mock := usecase.NewMockGenerator(now)
	priceCache := cache.NewTTLCache[float64](cfg.Cache.PriceTTL, cfg.Cache.Capacity)

	var (
		md     usecase.MarketData
		quotes usecase.QuoteFetcher
	)
	if market != nil {
		md, quotes = market, market
	}

	prices := usecase.NewPriceSource(quotes, mock, priceCache, cfg.AlphaVantage.Timeout)
	snaps := usecase.NewSnapshotUsecase(md, prices, mock, predictor, NewSnapshotCache(cfg, rdb), cfg.AlphaVantage.CallTimeout)

	slog.Info("snapshot pipeline ready", "live", market != nil, "redis", rdb != nil,
		"snapshot_ttl", cfg.Cache.SnapshotTTL, "capacity", cfg.Cache.Capacity)
	return snaps, prices
}
