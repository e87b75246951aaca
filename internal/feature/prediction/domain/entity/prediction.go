// Package entity defines the domain models for the prediction feature.
package entity

const (
	// ModelOLSRSI is the regression of next-period return on normalized RSI(14).
	ModelOLSRSI = "ols-rsi14"
	// ModelNaive is the zero-mean Gaussian fallback.
	ModelNaive = "naive"
)

// Prediction is a next-period return forecast together with the model that produced it.
type Prediction struct {
	Model      string  // "ols-rsi14" or "naive"
	NextReturn float64 // fractional return, e.g. 0.0012 = +0.12%
}
