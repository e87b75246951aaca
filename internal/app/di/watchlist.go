package di

import (
	"gorm.io/gorm"

	"fin_backend/internal/feature/watchlist/adapters/gormrepo"
	"fin_backend/internal/feature/watchlist/adapters/memory"
	"fin_backend/internal/feature/watchlist/usecase"
)

// NewWatchlistRepository creates a WatchlistRepository implementation.
// If a database is available, it returns a GORM-backed implementation.
// Otherwise, it falls back to process memory.
func NewWatchlistRepository(db *gorm.DB) usecase.WatchlistRepository {
	if db != nil {
		return gormrepo.NewWatchlistGorm(db)
	}
	return memory.NewWatchlistMemory()
}
