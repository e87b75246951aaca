// Package entity defines the domain models for the snapshot feature.
package entity

// Snapshot sources.
const (
	SourceLive = "live"
	SourceMock = "mock"
)

// Snapshot is a point-in-time view of a symbol: price, daily move,
// two technical indicators and a next-period return forecast.
type Snapshot struct {
	Symbol        string   // normalized ticker (e.g., "AAPL")
	Price         float64  // last price, 2 decimals
	PercentChange float64  // change vs previous close in percent, 2 decimals
	SMA20         *float64 // 20-day simple moving average; nil when the provider has none
	RSI14         *float64 // 14-day relative strength index; nil when the provider has none
	PredReturn    float64  // predicted next-period return, 4 decimals
	PredModel     string   // model that produced PredReturn
	Source        string   // "live" or "mock"
}
