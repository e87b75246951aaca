// Package usecase は簡易クレジットスコアの計算を実装します。
package usecase

import (
	"errors"
	"fmt"
	"math"

	"fin_backend/internal/feature/credit/domain/entity"
)

// ErrInvalidFeatures は入力が許容範囲外であることを示します。
var ErrInvalidFeatures = errors.New("invalid credit features")

// 各要素の重み（合計1.0）
const (
	weightPayment     = 0.35
	weightUtilization = 0.30
	weightAge         = 0.15
	weightTypes       = 0.10
	weightInquiries   = 0.10

	maxAgeYears = 30
)

// CreditUsecase はクレジットスコアを計算します。
type CreditUsecase struct{}

// NewCreditUsecase はCreditUsecaseを生成します。
func NewCreditUsecase() *CreditUsecase {
	return &CreditUsecase{}
}

// CalculateScore は入力を0〜1に正規化して重み付けし、300〜850のスコアに写像します。
// 利用率と照会件数は低いほど高評価です。
func (u *CreditUsecase) CalculateScore(f entity.Features) (int, error) {
	if err := validate(f); err != nil {
		return 0, err
	}

	payment := f.PaymentHistory / 100
	utilization := 1 - f.CreditUtilization/100
	age := math.Min(f.CreditAgeYears, maxAgeYears) / maxAgeYears
	types := (f.CreditTypesCount - 1) / 9
	inquiries := 1 - f.RecentInquiriesCount/10

	weighted := weightPayment*payment +
		weightUtilization*utilization +
		weightAge*age +
		weightTypes*types +
		weightInquiries*inquiries

	score := entity.MinScore + int(math.Round(weighted*(entity.MaxScore-entity.MinScore)))
	return max(entity.MinScore, min(entity.MaxScore, score)), nil
}

func validate(f entity.Features) error {
	checks := []struct {
		name     string
		v        float64
		min, max float64
	}{
		{"payment_history", f.PaymentHistory, 0, 100},
		{"credit_utilization", f.CreditUtilization, 0, 100},
		{"credit_age_years", f.CreditAgeYears, 0, math.MaxFloat64},
		{"credit_types_count", f.CreditTypesCount, 1, 10},
		{"recent_inquiries_count", f.RecentInquiriesCount, 0, 10},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || c.v < c.min || c.v > c.max {
			return fmt.Errorf("%w: %s=%v", ErrInvalidFeatures, c.name, c.v)
		}
	}
	return nil
}
