// Package handler はbudgetフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"fin_backend/internal/api"
	"fin_backend/internal/feature/budget/domain/entity"
	"fin_backend/internal/feature/budget/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// BudgetUsecase は家計機能のユースケースインターフェースです。
type BudgetUsecase interface {
	Categorize(items []entity.Item) []entity.CategorizedItem
	Recommend(history []entity.Item) entity.Recommendation
}

// BudgetHandler は家計機能のHTTPリクエストを処理します。
type BudgetHandler struct {
	uc BudgetUsecase
}

// NewBudgetHandler はBudgetHandlerを生成します。
func NewBudgetHandler(uc BudgetUsecase) *BudgetHandler {
	return &BudgetHandler{uc: uc}
}

// Categorize は支出をカテゴリ分類します。
//
// エンドポイント例:
// POST /budget/categorize [{"description": "Uber", "amount": 12.5}]
func (h *BudgetHandler) Categorize(c *gin.Context) {
	items, ok := bindItems(c)
	if !ok {
		return
	}

	res := h.uc.Categorize(items)
	out := make([]dto.CategorizedItem, 0, len(res))
	for _, r := range res {
		out = append(out, dto.CategorizedItem{
			Description:  r.Description,
			Amount:       r.Amount,
			Type:         r.Type,
			CategoryPred: r.Category,
		})
	}
	c.JSON(http.StatusOK, dto.CategorizeResponse{Items: out})
}

// Recommend は収入履歴から50/30/20の予算を提案します。
//
// エンドポイント例:
// POST /budget/recommend [{"description": "Salary", "amount": 5000, "type": "income"}]
func (h *BudgetHandler) Recommend(c *gin.Context) {
	items, ok := bindItems(c)
	if !ok {
		return
	}

	r := h.uc.Recommend(items)
	c.JSON(http.StatusOK, dto.RecommendResponse{
		MonthlyIncome: r.MonthlyIncome,
		Suggested: dto.Suggested{
			Essentials: r.Essentials,
			Wants:      r.Wants,
			Savings:    r.Savings,
		},
	})
}

func bindItems(c *gin.Context) ([]entity.Item, bool) {
	var req []dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return nil, false
	}
	items := make([]entity.Item, 0, len(req))
	for _, r := range req {
		items = append(items, entity.Item{Description: r.Description, Amount: r.Amount, Type: r.Type})
	}
	return items, true
}
