// Package usecase はウォッチリスト操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	snapentity "fin_backend/internal/feature/snapshot/domain/entity"
	"fin_backend/internal/shared/symbol"
)

// WatchlistRepository はユーザーごとのウォッチリストの永続化を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type WatchlistRepository interface {
	// Add は銘柄を末尾に追加します。既に存在する場合は何もしません。
	Add(ctx context.Context, userID uint, sym string) error
	// Remove は銘柄を削除します。存在しない場合は何もしません。
	Remove(ctx context.Context, userID uint, sym string) error
	// List は追加順に銘柄を返します。
	List(ctx context.Context, userID uint) ([]string, error)
}

// SnapshotProvider は銘柄のスナップショットを返します。
type SnapshotProvider interface {
	GetSnapshot(ctx context.Context, raw string) (snapentity.Snapshot, error)
}

// WatchlistUsecase はウォッチリストの追加・削除・一覧を提供します。
type WatchlistUsecase struct {
	repo  WatchlistRepository
	snaps SnapshotProvider
}

// NewWatchlistUsecase はWatchlistUsecaseを生成します。
func NewWatchlistUsecase(repo WatchlistRepository, snaps SnapshotProvider) *WatchlistUsecase {
	return &WatchlistUsecase{repo: repo, snaps: snaps}
}

// Add は正規化した銘柄を追加し、銘柄と追加後の件数を返します。
// 空の銘柄はsymbol.ErrInvalidSymbolを返します。
func (u *WatchlistUsecase) Add(ctx context.Context, userID uint, raw string) (string, int, error) {
	sym, err := symbol.Parse(raw)
	if err != nil {
		return "", 0, err
	}
	if err := u.repo.Add(ctx, userID, sym); err != nil {
		return "", 0, fmt.Errorf("add %s: %w", sym, err)
	}
	n, err := u.count(ctx, userID)
	if err != nil {
		return "", 0, err
	}
	return sym, n, nil
}

// Remove は正規化した銘柄を削除し、銘柄と削除後の件数を返します。冪等です。
func (u *WatchlistUsecase) Remove(ctx context.Context, userID uint, raw string) (string, int, error) {
	sym, err := symbol.Parse(raw)
	if err != nil {
		return "", 0, err
	}
	if err := u.repo.Remove(ctx, userID, sym); err != nil {
		return "", 0, fmt.Errorf("remove %s: %w", sym, err)
	}
	n, err := u.count(ctx, userID)
	if err != nil {
		return "", 0, err
	}
	return sym, n, nil
}

// ListWithSnapshots は追加順に各銘柄のスナップショットを返します。
func (u *WatchlistUsecase) ListWithSnapshots(ctx context.Context, userID uint) ([]snapentity.Snapshot, error) {
	syms, err := u.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	out := make([]snapentity.Snapshot, 0, len(syms))
	for _, s := range syms {
		snap, err := u.snaps.GetSnapshot(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", s, err)
		}
		out = append(out, snap)
	}
	return out, nil
}

func (u *WatchlistUsecase) count(ctx context.Context, userID uint) (int, error) {
	syms, err := u.repo.List(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list watchlist: %w", err)
	}
	return len(syms), nil
}
