package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fin_backend/internal/app/di"
	"fin_backend/internal/app/router"
	"fin_backend/internal/platform/config"
	infradb "fin_backend/internal/platform/db"
	infraredis "fin_backend/internal/platform/redis"
)

// dbConnectTimeout はDB接続リトライの上限時間です。
const dbConnectTimeout = 60 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var infra di.Infra

	// db（任意）
	if cfg.Database.Driver != "" {
		db, err := infradb.Open(cfg, dbConnectTimeout)
		if err != nil {
			slog.Error("database unavailable", "error", err)
			os.Exit(1)
		}
		infra.DB = db
		defer func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}()
	}

	// Redis（任意）
	if cfg.Redis.Enabled {
		rdb, err := infraredis.NewRedisClient(ctx, cfg)
		if err != nil {
			slog.Warn("Redis unavailable. Running without shared cache.")
		} else {
			infra.Redis = rdb
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWT.Secret == "" {
		slog.Warn("JWT_SECRET is not set. Authenticated routes will return 500.")
	}
	if cfg.AlphaVantage.APIKey == "" {
		slog.Info("ALPHAVANTAGE_API_KEY is not set. Serving mock market data.")
	}

	handlers := di.NewHandlers(ctx, cfg, infra)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.NewRouter(handlers, cfg.JWT.Secret),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func setupLogger(cfg *config.Config) {
	level, _ := config.ParseLevel(cfg.Server.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if strings.EqualFold(cfg.Server.LogFormat, "text") {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
