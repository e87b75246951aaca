// Package dto defines the HTTP bodies of the watchlist feature.
package dto

import snapdto "fin_backend/internal/feature/snapshot/transport/http/dto"

// AddRequest はウォッチリスト追加のリクエストDTOです。
type AddRequest struct {
	Symbol string `json:"symbol"`
}

// MutationResponse は追加・削除のレスポンスDTOです。
type MutationResponse struct {
	OK     bool   `json:"ok"`
	Symbol string `json:"symbol"`
	Count  int    `json:"count"` // 操作後の件数
}

// ListResponse は一覧のレスポンスDTOです。
type ListResponse struct {
	Items []snapdto.SnapshotResponse `json:"items"`
}
