// Package di provides dependency injection factories for creating application components.
package di

import (
	"fin_backend/internal/feature/snapshot/usecase"
	"fin_backend/internal/platform/config"
	"fin_backend/internal/platform/externalapi/alphavantage"
	infrahttp "fin_backend/internal/platform/http"
)

// Market is the live data source used by the snapshot pipeline.
type Market interface {
	usecase.MarketData
	usecase.QuoteFetcher
}

// NewMarket creates an Alpha Vantage client with its own HTTP client.
// It returns a nil interface when no API key is configured so callers fall
// back to mock data.
func NewMarket(cfg *config.Config) Market {
	avCfg := alphavantage.Config{
		APIKey:            cfg.AlphaVantage.APIKey,
		BaseURL:           cfg.AlphaVantage.BaseURL,
		Timeout:           cfg.AlphaVantage.Timeout,
		RequestsPerMinute: cfg.AlphaVantage.RequestsPerMinute,
	}
	if !avCfg.Enabled() {
		return nil
	}
	return alphavantage.NewClient(avCfg, infrahttp.NewHTTPClient(avCfg.Timeout), nil)
}
