// Package alphavantage provides a client for the Alpha Vantage market data API.
package alphavantage

import "time"

// DefaultBaseURL is the public Alpha Vantage endpoint.
const DefaultBaseURL = "https://www.alphavantage.co"

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey            string        // API key for authentication; empty disables the live path
	BaseURL           string        // Base URL for the API (e.g., "https://www.alphavantage.co")
	Timeout           time.Duration // HTTP request timeout
	RequestsPerMinute int           // client-side quota; 0 means unlimited
}

// Enabled reports whether a live credential is configured.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
