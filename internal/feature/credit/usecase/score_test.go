package usecase_test

import (
	"math"
	"testing"

	"fin_backend/internal/feature/credit/domain/entity"
	"fin_backend/internal/feature/credit/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func features(payment, utilization, age, types, inquiries float64) entity.Features {
	return entity.Features{
		PaymentHistory:       payment,
		CreditUtilization:    utilization,
		CreditAgeYears:       age,
		CreditTypesCount:     types,
		RecentInquiriesCount: inquiries,
	}
}

// TestCreditUsecase_CalculateScore は代表的な入力に対するスコアを検証します。
func TestCreditUsecase_CalculateScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		features entity.Features
		expected int
	}{
		{"best profile", features(100, 0, 30, 10, 0), 850},
		{"worst profile", features(0, 100, 0, 1, 10), 300},
		{"age beyond cap", features(100, 0, 45, 10, 0), 850},
		// 0.35*0.9 + 0.30*0.7 + 0.15*(10/30) + 0.10*(2/9) + 0.10*0.8 = 0.6772...
		{"typical profile", features(90, 30, 10, 3, 2), 672},
	}

	uc := usecase.NewCreditUsecase()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := uc.CalculateScore(tt.features)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestCreditUsecase_Monotonic は支払履歴が良いほど、利用率が低いほどスコアが上がることを検証します。
func TestCreditUsecase_Monotonic(t *testing.T) {
	t.Parallel()

	uc := usecase.NewCreditUsecase()
	base := entity.Features{PaymentHistory: 80, CreditUtilization: 40, CreditAgeYears: 5, CreditTypesCount: 3, RecentInquiriesCount: 2}

	s0, err := uc.CalculateScore(base)
	require.NoError(t, err)

	better := base
	better.PaymentHistory = 95
	s1, err := uc.CalculateScore(better)
	require.NoError(t, err)
	assert.Greater(t, s1, s0)

	lowerUtil := base
	lowerUtil.CreditUtilization = 10
	s2, err := uc.CalculateScore(lowerUtil)
	require.NoError(t, err)
	assert.Greater(t, s2, s0)
}

// TestCreditUsecase_InvalidFeatures は範囲外の入力がエラーになることを検証します。
func TestCreditUsecase_InvalidFeatures(t *testing.T) {
	t.Parallel()

	valid := entity.Features{PaymentHistory: 80, CreditUtilization: 40, CreditAgeYears: 5, CreditTypesCount: 3, RecentInquiriesCount: 2}

	tests := []struct {
		name   string
		mutate func(f *entity.Features)
	}{
		{"payment above 100", func(f *entity.Features) { f.PaymentHistory = 101 }},
		{"negative utilization", func(f *entity.Features) { f.CreditUtilization = -1 }},
		{"negative age", func(f *entity.Features) { f.CreditAgeYears = -0.5 }},
		{"zero credit types", func(f *entity.Features) { f.CreditTypesCount = 0 }},
		{"too many inquiries", func(f *entity.Features) { f.RecentInquiriesCount = 11 }},
		{"NaN payment", func(f *entity.Features) { f.PaymentHistory = math.NaN() }},
	}

	uc := usecase.NewCreditUsecase()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := valid
			tt.mutate(&f)
			_, err := uc.CalculateScore(f)
			assert.ErrorIs(t, err, usecase.ErrInvalidFeatures)
		})
	}
}
