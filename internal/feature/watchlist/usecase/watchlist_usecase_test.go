package usecase_test

import (
	"context"
	"errors"
	"testing"

	snapentity "fin_backend/internal/feature/snapshot/domain/entity"
	"fin_backend/internal/feature/watchlist/adapters/memory"
	"fin_backend/internal/feature/watchlist/usecase"
	"fin_backend/internal/shared/symbol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ErrDB はモックと期待値の間で共有されるセンチネルエラーです。
var ErrDB = errors.New("database error")

// stubSnapshots は銘柄名だけを詰めたスナップショットを返すSnapshotProviderです。
type stubSnapshots struct {
	calls []string
}

func (s *stubSnapshots) GetSnapshot(ctx context.Context, raw string) (snapentity.Snapshot, error) {
	s.calls = append(s.calls, raw)
	return snapentity.Snapshot{Symbol: raw, Price: 1, Source: snapentity.SourceMock}, nil
}

// failingRepo は全操作でエラーを返すWatchlistRepositoryです。
type failingRepo struct{}

func (failingRepo) Add(ctx context.Context, userID uint, sym string) error    { return ErrDB }
func (failingRepo) Remove(ctx context.Context, userID uint, sym string) error { return ErrDB }
func (failingRepo) List(ctx context.Context, userID uint) ([]string, error)   { return nil, ErrDB }

func newUsecase() (*usecase.WatchlistUsecase, *stubSnapshots) {
	snaps := &stubSnapshots{}
	return usecase.NewWatchlistUsecase(memory.NewWatchlistMemory(), snaps), snaps
}

// TestWatchlistUsecase_Add は正規化、重複無視、件数を検証します。
func TestWatchlistUsecase_Add(t *testing.T) {
	t.Parallel()

	uc, _ := newUsecase()
	ctx := context.Background()

	sym, n, err := uc.Add(ctx, 1, " aapl ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", sym)
	assert.Equal(t, 1, n)

	sym, n, err = uc.Add(ctx, 1, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", sym)
	assert.Equal(t, 1, n, "duplicate add must be a no-op")

	_, n, err = uc.Add(ctx, 1, "tsla")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// 別ユーザーのリストは独立
	_, n, err = uc.Add(ctx, 2, "msft")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// TestWatchlistUsecase_Add_InvalidSymbol は空の銘柄を拒否することを検証します。
func TestWatchlistUsecase_Add_InvalidSymbol(t *testing.T) {
	t.Parallel()

	uc, _ := newUsecase()
	_, _, err := uc.Add(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, symbol.ErrInvalidSymbol)
}

// TestWatchlistUsecase_Remove は削除が冪等であることを検証します。
func TestWatchlistUsecase_Remove(t *testing.T) {
	t.Parallel()

	uc, _ := newUsecase()
	ctx := context.Background()

	_, _, err := uc.Add(ctx, 1, "AAPL")
	require.NoError(t, err)
	_, _, err = uc.Add(ctx, 1, "TSLA")
	require.NoError(t, err)

	sym, n, err := uc.Remove(ctx, 1, "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", sym)
	assert.Equal(t, 1, n)

	sym, n, err = uc.Remove(ctx, 1, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", sym)
	assert.Equal(t, 1, n)

	_, _, err = uc.Remove(ctx, 1, "")
	assert.ErrorIs(t, err, symbol.ErrInvalidSymbol)
}

// TestWatchlistUsecase_ListWithSnapshots は追加順にスナップショットが返されることを検証します。
func TestWatchlistUsecase_ListWithSnapshots(t *testing.T) {
	t.Parallel()

	uc, snaps := newUsecase()
	ctx := context.Background()

	for _, s := range []string{"TSLA", "AAPL", "MSFT"} {
		_, _, err := uc.Add(ctx, 1, s)
		require.NoError(t, err)
	}

	got, err := uc.ListWithSnapshots(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"TSLA", "AAPL", "MSFT"}, []string{got[0].Symbol, got[1].Symbol, got[2].Symbol})
	assert.Equal(t, []string{"TSLA", "AAPL", "MSFT"}, snaps.calls)

	empty, err := uc.ListWithSnapshots(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// TestWatchlistUsecase_RepositoryError はリポジトリのエラーが伝播されることを検証します。
func TestWatchlistUsecase_RepositoryError(t *testing.T) {
	t.Parallel()

	uc := usecase.NewWatchlistUsecase(failingRepo{}, &stubSnapshots{})
	ctx := context.Background()

	_, _, err := uc.Add(ctx, 1, "AAPL")
	assert.ErrorIs(t, err, ErrDB)
	_, _, err = uc.Remove(ctx, 1, "AAPL")
	assert.ErrorIs(t, err, ErrDB)
	_, err = uc.ListWithSnapshots(ctx, 1)
	assert.ErrorIs(t, err, ErrDB)
}
