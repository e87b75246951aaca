// Package db はGORM接続の生成・リトライ・マイグレーションを提供します。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "fin_backend/internal/feature/auth/domain/entity"
	watchlistentity "fin_backend/internal/feature/watchlist/domain/entity"
	"fin_backend/internal/platform/config"
)

// retryInterval は接続リトライの間隔です。
const retryInterval = 3 * time.Second

// ErrUnsupportedDriver は未対応のドライバ名が指定された場合に返されます。
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// gormConfig は全ドライバ共通の設定です。
// TranslateErrorにより一意制約違反がgorm.ErrDuplicatedKeyとして返ります。
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// OpenSQLite はSQLiteデータベースを開きます。
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}
	// SQLiteは書き込みが直列なので接続を1本に固定する
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// OpenPostgres はpgxドライバ経由でPostgreSQLに接続します。
func OpenPostgres(dsn string) (*gorm.DB, error) {
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	sqlDB := stdlib.OpenDB(*connCfg)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig())
}

// OpenerFor はドライバ名に対応するOpenerを返します。
func OpenerFor(driver string) (Opener, error) {
	switch driver {
	case config.DriverSQLite:
		return OpenSQLite, nil
	case config.DriverPostgres:
		return OpenPostgres, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// ConnectWithRetry はtimeoutまでretryIntervalごとに接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Migrate はアプリケーションのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authentity.User{},
		&watchlistentity.Item{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Open は設定に従ってDBへ接続し、必要に応じてマイグレーションを実行します。
func Open(cfg *config.Config, timeout time.Duration) (*gorm.DB, error) {
	opener, err := OpenerFor(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(cfg.Database.DSN, timeout, opener)
	if err != nil {
		return nil, err
	}
	if cfg.Database.Migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	slog.Info("database connected", "driver", cfg.Database.Driver, "migrated", cfg.Database.Migrate)
	return db, nil
}
