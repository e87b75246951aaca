package usecase

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"
)

// MockMetrics are the synthetic indicators of a mock snapshot.
type MockMetrics struct {
	PercentChange float64
	SMA20         float64
	RSI14         float64
}

// MockGenerator は外部APIが使えない場合の決定的な疑似データを生成します。
// 乱数は銘柄ごとに毎回同じシードから作り直すため、価格は時刻による揺らぎ以外は安定します。
type MockGenerator struct {
	now func() time.Time
}

// NewMockGenerator はMockGeneratorを生成します。nowがnilの場合はtime.Nowを使います。
func NewMockGenerator(now func() time.Time) *MockGenerator {
	if now == nil {
		now = time.Now
	}
	return &MockGenerator{now: now}
}

// Price は銘柄の基準価格 [10, 500) に10秒周期の揺らぎ（±2%）を掛けた価格を返します。
func (g *MockGenerator) Price(sym string) float64 {
	r := rand.New(rand.NewPCG(seed(sym), 0))
	base := 10 + r.Float64()*490
	osc := float64(g.now().Unix()%10) / 10
	price := base * (0.98 + 0.04*osc)
	return round(math.Max(0.01, price), 2)
}

// Metrics は価格に対する疑似指標を返します。
func (g *MockGenerator) Metrics(sym string, price float64) MockMetrics {
	r := rand.New(rand.NewPCG(seed(sym), 1))
	return MockMetrics{
		PercentChange: -2.5 + 5*r.Float64(),
		SMA20:         price * (0.9 + 0.2*r.Float64()),
		RSI14:         30 + 40*r.Float64(),
	}
}

// seed は銘柄文字列の安定したハッシュ（FNV-1a）です。プロセスをまたいでも変わりません。
func seed(sym string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(sym))
	return h.Sum64()
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
