package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fin_backend/internal/app/di"
	"fin_backend/internal/platform/config"
	"fin_backend/internal/platform/db"
)

const testSecret = "router-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	// 外部APIを使わずモック経路で動かす
	cfg.AlphaVantage.APIKey = ""
	cfg.LLM.Enabled = false
	cfg.Predictor.SeriesPath = ""
	cfg.JWT.Secret = testSecret
	return cfg
}

func newTestRouter(t *testing.T, withDB bool) *gin.Engine {
	t.Helper()

	var infra di.Infra
	if withDB {
		gdb, err := db.OpenSQLite(":memory:")
		require.NoError(t, err)
		require.NoError(t, db.Migrate(gdb))
		infra.DB = gdb
	}
	return NewRouter(di.NewHandlers(context.Background(), testConfig(t), infra), testSecret)
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()

	creds := gin.H{"email": "user@example.com", "password": "password123"}
	w := do(t, r, http.MethodPost, "/signup", "", creds)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/login", "", creds)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode[map[string]string](t, w)["token"]
	require.NotEmpty(t, token)
	return token
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, false)

	w := do(t, r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])

	w = do(t, r, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, false)
	for _, path := range []string{"/watchlist", "/stocks/AAPL/snapshot", "/stocks/AAPL/price", "/prediction", "/portfolio_series", "/kpis"} {
		w := do(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRouter_AuthUnavailableWithoutDB(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, false)
	w := do(t, r, http.MethodPost, "/signup", "", gin.H{"email": "a@example.com", "password": "password123"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// TestRouter_SnapshotWithoutCredential はAPIキーなしでモックのスナップショットが返ることを検証します。
func TestRouter_SnapshotWithoutCredential(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, true)
	token := login(t, r)

	w := do(t, r, http.MethodGet, "/stocks/tsla/snapshot", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	snap := decode[map[string]any](t, w)
	assert.Equal(t, "TSLA", snap["symbol"])
	assert.Greater(t, snap["price"].(float64), 0.0)
	assert.Equal(t, "naive", snap["pred_model"])
	assert.Equal(t, "mock", snap["source"])
	for _, k := range []string{"percent_change", "sma20", "rsi14", "pred_return"} {
		assert.Contains(t, snap, k)
	}

	w = do(t, r, http.MethodGet, "/stocks/TSLA/price", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	price := decode[map[string]any](t, w)
	assert.Equal(t, "TSLA", price["symbol"])
	assert.Greater(t, price["price"].(float64), 0.0)
}

func TestRouter_WatchlistFlow(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, true)
	token := login(t, r)

	w := do(t, r, http.MethodPost, "/watchlist", token, gin.H{"symbol": " aapl "})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"ok":true,"symbol":"AAPL","count":1}`, w.Body.String())

	// 重複追加は件数を変えない
	w = do(t, r, http.MethodPost, "/watchlist", token, gin.H{"symbol": "AAPL"})
	assert.JSONEq(t, `{"ok":true,"symbol":"AAPL","count":1}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/watchlist", token, gin.H{"symbol": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Symbol required"}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/watchlist", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Items []map[string]any `json:"items"`
	}](t, w)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "AAPL", list.Items[0]["symbol"])

	w = do(t, r, http.MethodDelete, "/watchlist/aapl", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"symbol":"AAPL","count":0}`, w.Body.String())
}

func TestRouter_AuxiliaryEndpoints(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, true)
	token := login(t, r)

	w := do(t, r, http.MethodGet, "/prediction", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "naive", decode[map[string]any](t, w)["model"])

	w = do(t, r, http.MethodPost, "/credit/simple_score", token, gin.H{
		"payment_history": 90, "credit_utilization": 30, "credit_age_years": 10,
		"credit_types_count": 3, "recent_inquiries_count": 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"score":672}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/finbot/chat", token, gin.H{"message": "How should I start budgeting?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decode[map[string]string](t, w)["message"])
}

// TestRouter_Dashboard は系列ファイルの有無でダッシュボードの応答が変わることを検証します。
func TestRouter_Dashboard(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, true)
	token := login(t, r)

	w := do(t, r, http.MethodGet, "/portfolio_series", token, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(t, r, http.MethodGet, "/kpis", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"savings":100000,"credit_score":740,"returns":0.06,"tax_liability":25000}`, w.Body.String())

	path := filepath.Join(t.TempDir(), "HistoricalData.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,Close/Last\n01/02/2025,$110.00\n01/01/2025,$100.00\n"), 0o600))
	cfg := testConfig(t)
	cfg.Predictor.SeriesPath = path
	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	r = NewRouter(di.NewHandlers(context.Background(), cfg, di.Infra{DB: gdb}), testSecret)
	token = login(t, r)

	w = do(t, r, http.MethodGet, "/portfolio_series", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"series":[{"date":"2025-01-01","value":100},{"date":"2025-01-02","value":110}]}`, w.Body.String())
}
