package dto

// PredictionResponse は次期リターン予測のレスポンスDTOです。
type PredictionResponse struct {
	Model      string  `json:"model"`       // "ols-rsi14" または "naive"
	NextReturn float64 `json:"next_return"` // 小数表記のリターン
}
