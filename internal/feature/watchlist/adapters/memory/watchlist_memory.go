// Package memory はプロセス内メモリに保持するウォッチリストのリポジトリ実装です。
package memory

import (
	"context"
	"slices"
	"sync"

	"fin_backend/internal/feature/watchlist/usecase"
)

// WatchlistMemory はユーザーごとの銘柄リストをメモリ上に保持します。再起動で消えます。
type WatchlistMemory struct {
	mu    sync.RWMutex
	lists map[uint][]string
}

var _ usecase.WatchlistRepository = (*WatchlistMemory)(nil)

// NewWatchlistMemory はWatchlistMemoryを生成します。
func NewWatchlistMemory() *WatchlistMemory {
	return &WatchlistMemory{lists: make(map[uint][]string)}
}

// Add は銘柄を末尾に追加します。既に存在する場合は何もしません。
func (m *WatchlistMemory) Add(ctx context.Context, userID uint, sym string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if slices.Contains(m.lists[userID], sym) {
		return nil
	}
	m.lists[userID] = append(m.lists[userID], sym)
	return nil
}

// Remove は銘柄を削除します。
func (m *WatchlistMemory) Remove(ctx context.Context, userID uint, sym string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lists[userID] = slices.DeleteFunc(m.lists[userID], func(s string) bool { return s == sym })
	return nil
}

// List は追加順に銘柄のコピーを返します。
func (m *WatchlistMemory) List(ctx context.Context, userID uint) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.lists[userID]), nil
}
