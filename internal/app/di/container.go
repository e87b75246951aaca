package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authadapters "fin_backend/internal/feature/auth/adapters"
	authhandler "fin_backend/internal/feature/auth/transport/handler"
	authusecase "fin_backend/internal/feature/auth/usecase"
	budgethandler "fin_backend/internal/feature/budget/transport/handler"
	budgetusecase "fin_backend/internal/feature/budget/usecase"
	credithandler "fin_backend/internal/feature/credit/transport/handler"
	"fin_backend/internal/feature/dashboard/adapters/csvportfolio"
	dashboardhandler "fin_backend/internal/feature/dashboard/transport/handler"
	dashboardusecase "fin_backend/internal/feature/dashboard/usecase"
	creditusecase "fin_backend/internal/feature/credit/usecase"
	"fin_backend/internal/feature/finbot/adapters/gemini"
	finbothandler "fin_backend/internal/feature/finbot/transport/handler"
	finbotusecase "fin_backend/internal/feature/finbot/usecase"
	predictionhandler "fin_backend/internal/feature/prediction/transport/handler"
	snapshothandler "fin_backend/internal/feature/snapshot/transport/handler"
	snapshotusecase "fin_backend/internal/feature/snapshot/usecase"
	watchlisthandler "fin_backend/internal/feature/watchlist/transport/handler"
	watchlistusecase "fin_backend/internal/feature/watchlist/usecase"
	"fin_backend/internal/platform/config"
	healthhandler "fin_backend/internal/platform/http/handler"
	jwtmw "fin_backend/internal/platform/jwt"
)

// Infra holds the optional shared infrastructure. Nil fields mean "not configured".
type Infra struct {
	DB    *gorm.DB
	Redis *redis.Client
	Now   func() time.Time
}

// Handlers is the set of HTTP handlers the router mounts.
type Handlers struct {
	Auth       *authhandler.AuthHandler
	Snapshot   *snapshothandler.SnapshotHandler
	Prediction *predictionhandler.PredictionHandler
	Watchlist  *watchlisthandler.WatchlistHandler
	Credit     *credithandler.CreditHandler
	Budget     *budgethandler.BudgetHandler
	FinBot     *finbothandler.FinBotHandler
	Dashboard  *dashboardhandler.DashboardHandler
	Ready      map[string]healthhandler.Check
}

// NewSnapshotService builds only the snapshot pipeline, for binaries that do not serve HTTP.
func NewSnapshotService(ctx context.Context, cfg *config.Config, infra Infra) *snapshotusecase.SnapshotUsecase {
	snaps, _ := NewSnapshotPipeline(cfg, NewMarket(cfg), NewPredictor(ctx, cfg), infra.Redis, infra.Now)
	return snaps
}

// NewHandlers wires every feature from config and infrastructure.
func NewHandlers(ctx context.Context, cfg *config.Config, infra Infra) *Handlers {
	predictor := NewPredictor(ctx, cfg)
	snaps, prices := NewSnapshotPipeline(cfg, NewMarket(cfg), predictor, infra.Redis, infra.Now)

	h := &Handlers{
		Snapshot:   snapshothandler.NewSnapshotHandler(snaps, prices),
		Prediction: predictionhandler.NewPredictionHandler(predictor),
		Watchlist:  watchlisthandler.NewWatchlistHandler(watchlistusecase.NewWatchlistUsecase(NewWatchlistRepository(infra.DB), snaps)),
		Credit:     credithandler.NewCreditHandler(creditusecase.NewCreditUsecase()),
		Budget:     budgethandler.NewBudgetHandler(budgetusecase.NewBudgetUsecase()),
		FinBot:     finbothandler.NewFinBotHandler(finbotusecase.NewFinBotUsecase(newResponder(ctx, cfg), cfg.LLM.Timeout)),
		Dashboard:  dashboardhandler.NewDashboardHandler(dashboardusecase.NewDashboardUsecase(newSeriesSource(cfg))),
		Ready:      map[string]healthhandler.Check{},
	}

	if infra.DB != nil {
		users := authadapters.NewUserGorm(infra.DB)
		auth := authusecase.NewAuthUsecase(users, jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.Expiration), bcrypt.DefaultCost)
		h.Auth = authhandler.NewAuthHandler(auth)
		h.Ready["database"] = func(ctx context.Context) error {
			sqlDB, err := infra.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	} else {
		slog.Warn("no database configured; signup and login are disabled")
	}
	if infra.Redis != nil {
		h.Ready["redis"] = func(ctx context.Context) error {
			return infra.Redis.Ping(ctx).Err()
		}
	}
	return h
}

// newSeriesSource returns the CSV-backed dashboard series, or a nil interface without a series path.
func newSeriesSource(cfg *config.Config) dashboardusecase.SeriesSource {
	if cfg.Predictor.SeriesPath == "" {
		return nil
	}
	return csvportfolio.NewSource(cfg.Predictor.SeriesPath)
}

// newResponder returns the Gemini responder, or a nil interface when the LLM is off.
func newResponder(ctx context.Context, cfg *config.Config) finbotusecase.Responder {
	if !cfg.LLMEnabled() {
		return nil
	}
	r, err := gemini.NewGeminiResponder(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
	if err != nil {
		slog.Warn("LLM unavailable; finbot uses canned replies only", "error", err)
		return nil
	}
	slog.Info("finbot LLM enabled", "model", cfg.LLM.Model)
	return r
}
