// Package gormrepo はGORMを使ったウォッチリストのリポジトリ実装です。
package gormrepo

import (
	"context"

	"fin_backend/internal/feature/watchlist/domain/entity"
	"fin_backend/internal/feature/watchlist/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// watchlistGorm はWatchlistRepositoryのデータベース実装です。
type watchlistGorm struct {
	db *gorm.DB
}

// watchlistGormがWatchlistRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistGorm は指定されたgorm.DB接続でwatchlistGormを生成します。
func NewWatchlistGorm(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

// Add は銘柄を追加します。(user_id, symbol) のユニーク制約に当たった場合は何もしません。
func (r *watchlistGorm) Add(ctx context.Context, userID uint, sym string) error {
	item := entity.Item{UserID: userID, Symbol: sym}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "symbol"}},
			DoNothing: true,
		}).
		Create(&item).Error
}

// Remove は銘柄を削除します。対象がなくてもエラーにしません。
func (r *watchlistGorm) Remove(ctx context.Context, userID uint, sym string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, sym).
		Delete(&entity.Item{}).Error
}

// List は追加順（ID昇順）に銘柄を返します。
func (r *watchlistGorm) List(ctx context.Context, userID uint) ([]string, error) {
	var syms []string
	err := r.db.WithContext(ctx).
		Model(&entity.Item{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("symbol", &syms).Error
	if err != nil {
		return nil, err
	}
	return syms, nil
}
