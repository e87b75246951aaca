// Package dto defines the HTTP bodies of the dashboard feature.
package dto

// SeriesPoint は系列の1点です。date は YYYY-MM-DD 形式です。
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// SeriesResponse はポートフォリオ推移のレスポンスDTOです。
type SeriesResponse struct {
	Series []SeriesPoint `json:"series"`
}

// KPIResponse はKPIのレスポンスDTOです。
type KPIResponse struct {
	Savings      float64 `json:"savings"`
	CreditScore  int     `json:"credit_score"`
	Returns      float64 `json:"returns"`
	TaxLiability float64 `json:"tax_liability"`
}
