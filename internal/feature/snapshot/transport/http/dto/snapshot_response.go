// Package dto defines the HTTP bodies of the snapshot feature.
package dto

import "fin_backend/internal/feature/snapshot/domain/entity"

// SnapshotResponse はスナップショットのレスポンスDTOです。
type SnapshotResponse struct {
	Symbol        string   `json:"symbol"`
	Price         float64  `json:"price"`
	PercentChange float64  `json:"percent_change"`
	SMA20         *float64 `json:"sma20"` // 指標がない場合はnull
	RSI14         *float64 `json:"rsi14"` // 指標がない場合はnull
	PredReturn    float64  `json:"pred_return"`
	PredModel     string   `json:"pred_model"`
	Source        string   `json:"source"` // "live" または "mock"
}

// PriceResponse は価格のみのレスポンスDTOです。
type PriceResponse struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// FromEntity はエンティティをレスポンスDTOに変換します。
func FromEntity(s entity.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		Symbol:        s.Symbol,
		Price:         s.Price,
		PercentChange: s.PercentChange,
		SMA20:         s.SMA20,
		RSI14:         s.RSI14,
		PredReturn:    s.PredReturn,
		PredModel:     s.PredModel,
		Source:        s.Source,
	}
}
