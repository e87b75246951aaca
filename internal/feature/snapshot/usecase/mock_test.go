package usecase_test

import (
	"testing"
	"time"

	"fin_backend/internal/feature/snapshot/usecase"

	"github.com/stretchr/testify/assert"
)

// TestMockGenerator_Deterministic は同じ銘柄・同じ時刻で同じ値になることを検証します。
func TestMockGenerator_Deterministic(t *testing.T) {
	t.Parallel()

	a := usecase.NewMockGenerator(fixedClock)
	b := usecase.NewMockGenerator(fixedClock)

	assert.Equal(t, a.Price("AAPL"), b.Price("AAPL"))
	assert.Equal(t, a.Metrics("AAPL", 100), b.Metrics("AAPL", 100))
	assert.NotEqual(t, a.Price("AAPL"), a.Price("TSLA"))
}

// TestMockGenerator_Oscillation は10秒周期の揺らぎが±2%の範囲に収まることを検証します。
func TestMockGenerator_Oscillation(t *testing.T) {
	t.Parallel()

	at := func(sec int64) *usecase.MockGenerator {
		return usecase.NewMockGenerator(func() time.Time { return fixedNow.Add(time.Duration(sec) * time.Second) })
	}

	low := at(0).Price("AAPL")  // osc = 0.0 -> base*0.98
	mid := at(5).Price("AAPL")  // osc = 0.5 -> base*1.00
	high := at(9).Price("AAPL") // osc = 0.9 -> base*1.016

	assert.InDelta(t, mid*0.98, low, 0.02)
	assert.InDelta(t, mid*1.016, high, 0.02)
	assert.Equal(t, low, at(10).Price("AAPL"))
}

// TestMockGenerator_MetricsRanges は疑似指標の値域を検証します。
func TestMockGenerator_MetricsRanges(t *testing.T) {
	t.Parallel()

	g := usecase.NewMockGenerator(fixedClock)
	for _, sym := range []string{"A", "AAPL", "BRK.B", "ZZZZ", "SPY"} {
		m := g.Metrics(sym, 200)
		assert.GreaterOrEqual(t, m.PercentChange, -2.5)
		assert.LessOrEqual(t, m.PercentChange, 2.5)
		assert.GreaterOrEqual(t, m.SMA20, 180.0)
		assert.LessOrEqual(t, m.SMA20, 220.0)
		assert.GreaterOrEqual(t, m.RSI14, 30.0)
		assert.LessOrEqual(t, m.RSI14, 70.0)
	}
}
