// Package dto defines the HTTP bodies of the credit feature.
package dto

// SimpleScoreRequest は簡易スコアのリクエストDTOです。
type SimpleScoreRequest struct {
	PaymentHistory       *float64 `json:"payment_history" binding:"required"`        // 0-100
	CreditUtilization    *float64 `json:"credit_utilization" binding:"required"`     // 0-100
	CreditAgeYears       *float64 `json:"credit_age_years" binding:"required"`       // 0-30
	CreditTypesCount     *float64 `json:"credit_types_count" binding:"required"`     // 1-10
	RecentInquiriesCount *float64 `json:"recent_inquiries_count" binding:"required"` // 0-10
}

// ScoreResponse は簡易スコアのレスポンスDTOです。
type ScoreResponse struct {
	Score int `json:"score"`
}
