// Package ratelimiter は外部API呼び出しの頻度を制限する固定ウィンドウ型リミッターを提供します。
package ratelimiter

import (
	"sync"
	"time"
)

// Limiter は操作を許可するかどうかを判定するインターフェースです。
type Limiter interface {
	Allow() bool
}

// RateLimiter は interval ごとに limit 回までの呼び出しを許可します。
// 上限に達した場合は待機せずに false を返します（呼び出し側がフォールバックを選択します）。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // ウィンドウあたりの上限
	interval  time.Duration // どの単位でリセットするか
	count     int
	lastReset time.Time
	now       func() time.Time
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limit が0以下の場合は制限なしとして扱います。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// Allow は現在のウィンドウに空きがあれば呼び出し回数を消費して true を返します。
func (rl *RateLimiter) Allow() bool {
	if rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// interval を過ぎたらカウントリセット
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}
	if rl.count >= rl.limit {
		return false
	}
	rl.count++
	return true
}
