// Package dto defines the HTTP bodies of the finbot feature.
package dto

// ChatRequest はチャットのリクエストDTOです。
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse はチャットのレスポンスDTOです。
type ChatResponse struct {
	Message string `json:"message"`
}
