// Package dto defines the HTTP bodies of the budget feature.
package dto

// ItemRequest は収入・支出の1行です。typeを省略した場合はexpenseです。
type ItemRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
}

// CategorizedItem は分類結果の1行です。
type CategorizedItem struct {
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Type         string  `json:"type"`
	CategoryPred string  `json:"category_pred"`
}

// CategorizeResponse は分類のレスポンスDTOです。
type CategorizeResponse struct {
	Items []CategorizedItem `json:"items"`
}

// Suggested は予算配分です。
type Suggested struct {
	Essentials float64 `json:"essentials"`
	Wants      float64 `json:"wants"`
	Savings    float64 `json:"savings"`
}

// RecommendResponse は予算提案のレスポンスDTOです。
type RecommendResponse struct {
	MonthlyIncome float64   `json:"monthly_income"`
	Suggested     Suggested `json:"suggested"`
}
