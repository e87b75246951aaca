// Package dto defines data transfer objects for the Alpha Vantage API responses.
package dto

import (
	"errors"
	"fmt"
)

// ErrThrottled is returned when Alpha Vantage answers with a quota notice
// instead of data.
var ErrThrottled = errors.New("alphavantage: throttled")

// Status carries the informational fields Alpha Vantage returns with HTTP 200
// when a request is rejected.
type Status struct {
	Note         string `json:"Note,omitempty"`
	ErrorMessage string `json:"Error Message,omitempty"`
	Information  string `json:"Information,omitempty"`
}

// Err converts a rejection notice into an error. It returns nil for a normal payload.
func (s Status) Err() error {
	switch {
	case s.ErrorMessage != "":
		return fmt.Errorf("alphavantage: %s", s.ErrorMessage)
	case s.Note != "":
		return fmt.Errorf("%w: %s", ErrThrottled, s.Note)
	case s.Information != "":
		return fmt.Errorf("%w: %s", ErrThrottled, s.Information)
	}
	return nil
}

// IntradayBar is one bar of TIME_SERIES_INTRADAY. Only the close is used.
type IntradayBar struct {
	Close string `json:"4. close"`
}

// IntradayResponse represents the JSON response of TIME_SERIES_INTRADAY with interval=5min.
type IntradayResponse struct {
	Status
	TimeSeries map[string]IntradayBar `json:"Time Series (5min)"`
}

// SMAResponse represents the JSON response of the SMA technical indicator.
type SMAResponse struct {
	Status
	Values map[string]struct {
		SMA string `json:"SMA"`
	} `json:"Technical Analysis: SMA"`
}

// RSIResponse represents the JSON response of the RSI technical indicator.
type RSIResponse struct {
	Status
	Values map[string]struct {
		RSI string `json:"RSI"`
	} `json:"Technical Analysis: RSI"`
}

// GlobalQuoteResponse represents the JSON response of GLOBAL_QUOTE.
type GlobalQuoteResponse struct {
	Status
	Quote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}
