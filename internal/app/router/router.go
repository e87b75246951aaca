package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fin_backend/internal/api"
	"fin_backend/internal/app/di"
	healthhandler "fin_backend/internal/platform/http/handler"
	jwtmw "fin_backend/internal/platform/jwt"
)

func NewRouter(h *di.Handlers, jwtSecret string) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", healthhandler.Health)
	r.HEAD("/healthz", healthhandler.Health)
	r.OPTIONS("/healthz", healthhandler.Health)
	r.GET("/readyz", healthhandler.Ready(h.Ready))

	if h.Auth != nil {
		// 新規ユーザー登録
		r.POST("/signup", h.Auth.Signup)
		// ログイン（JWT 発行）
		r.POST("/login", h.Auth.Login)
	} else {
		// DB未設定時はユーザーストアがない
		r.POST("/signup", authUnavailable)
		r.POST("/login", authUnavailable)
	}

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(jwtSecret))
	{
		auth.GET("/watchlist", h.Watchlist.List)
		auth.POST("/watchlist", h.Watchlist.Add)
		auth.DELETE("/watchlist/:symbol", h.Watchlist.Remove)

		auth.GET("/stocks/:symbol/snapshot", h.Snapshot.GetSnapshot)
		auth.GET("/stocks/:symbol/price", h.Snapshot.GetPrice)
		auth.GET("/prediction", h.Prediction.GetPrediction)

		auth.POST("/credit/simple_score", h.Credit.SimpleScore)
		auth.POST("/budget/categorize", h.Budget.Categorize)
		auth.POST("/budget/recommend", h.Budget.Recommend)
		auth.POST("/finbot/chat", h.FinBot.Chat)

		auth.GET("/portfolio_series", h.Dashboard.PortfolioSeries)
		auth.GET("/kpis", h.Dashboard.KPIs)
	}

	return r
}

func authUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "authentication is not configured"})
}
