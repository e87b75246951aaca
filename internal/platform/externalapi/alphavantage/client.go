package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"fin_backend/internal/platform/externalapi/alphavantage/dto"
	"fin_backend/internal/shared/ratelimiter"
)

var (
	// ErrRateLimited はクライアント側のクォータを超えたリクエストを拒否したことを示します。
	ErrRateLimited = errors.New("alphavantage: client rate limit exceeded")
	// ErrNoData はレスポンスに必要なフィールドが含まれていないことを示します。
	ErrNoData = errors.New("alphavantage: no data")
)

// Client はAlpha Vantage APIから株価と指標を取得するクライアントです。
// 1回の呼び出しにつき1リクエストのみ送信し、リトライは行いません。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
// limiterがnilの場合はcfg.RequestsPerMinuteから1分間の固定ウィンドウを作成します。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if limiter == nil {
		limiter = ratelimiter.NewRateLimiter(cfg.RequestsPerMinute, time.Minute)
	}
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// IntradayCloses は5分足の終値を新しい順で返します。
func (c *Client) IntradayCloses(ctx context.Context, symbol string) ([]float64, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_INTRADAY")
	q.Set("symbol", symbol)
	q.Set("interval", "5min")

	var body dto.IntradayResponse
	if err := c.get(ctx, q, &body); err != nil {
		return nil, err
	}
	if err := body.Err(); err != nil {
		return nil, err
	}

	keys := newestFirst(body.TimeSeries)
	closes := make([]float64, 0, len(keys))
	for _, k := range keys {
		v, err := parseFinite(body.TimeSeries[k].Close)
		if err != nil {
			return nil, fmt.Errorf("close at %s: %w", k, err)
		}
		closes = append(closes, v)
	}
	return closes, nil
}

// SMA は日足終値の単純移動平均の最新値を返します。データが空の場合はnilを返します。
func (c *Client) SMA(ctx context.Context, symbol string, period int) (*float64, error) {
	q := indicatorQuery("SMA", symbol, period)

	var body dto.SMAResponse
	if err := c.get(ctx, q, &body); err != nil {
		return nil, err
	}
	if err := body.Err(); err != nil {
		return nil, err
	}

	keys := newestFirst(body.Values)
	if len(keys) == 0 {
		return nil, nil
	}
	return parseOptional(body.Values[keys[0]].SMA)
}

// RSI は日足終値のRSIの最新値を返します。データが空の場合はnilを返します。
func (c *Client) RSI(ctx context.Context, symbol string, period int) (*float64, error) {
	q := indicatorQuery("RSI", symbol, period)

	var body dto.RSIResponse
	if err := c.get(ctx, q, &body); err != nil {
		return nil, err
	}
	if err := body.Err(); err != nil {
		return nil, err
	}

	keys := newestFirst(body.Values)
	if len(keys) == 0 {
		return nil, nil
	}
	return parseOptional(body.Values[keys[0]].RSI)
}

// GlobalQuote は最新の取引価格を返します。
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (float64, error) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)

	var body dto.GlobalQuoteResponse
	if err := c.get(ctx, q, &body); err != nil {
		return 0, err
	}
	if err := body.Err(); err != nil {
		return 0, err
	}

	raw := strings.TrimSpace(body.Quote.Price)
	if raw == "" {
		return 0, ErrNoData
	}
	p, err := parseFinite(raw)
	if err != nil {
		return 0, fmt.Errorf("price: %w", err)
	}
	if p <= 0 {
		return 0, fmt.Errorf("%w: non-positive price %v", ErrNoData, p)
	}
	return p, nil
}

// get はクエリを送信し、レスポンスボディをoutにデコードします。
func (c *Client) get(ctx context.Context, q url.Values, out any) error {
	if !c.limiter.Allow() {
		return ErrRateLimited
	}

	q.Set("apikey", c.cfg.APIKey)
	u := fmt.Sprintf("%s/query?%s", strings.TrimRight(c.cfg.BaseURL, "/"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("alphavantage http %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", q.Get("function"), err)
	}
	return nil
}

func indicatorQuery(function, symbol string, period int) url.Values {
	q := url.Values{}
	q.Set("function", function)
	q.Set("symbol", symbol)
	q.Set("interval", "daily")
	q.Set("time_period", strconv.Itoa(period))
	q.Set("series_type", "close")
	return q
}

// newestFirst はタイムスタンプキーを新しい順に並べます。
// "2006-01-02" と "2006-01-02 15:04:05" はどちらも辞書順で時系列順になります。
func newestFirst[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

func parseOptional(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := parseFinite(raw)
	if err != nil {
		return nil, fmt.Errorf("indicator: %w", err)
	}
	return &v, nil
}

// parseFinite は文字列の数値を解析します。ParseFloatが受け付ける "NaN" や "Inf" はErrNoDataとして拒否します。
func parseFinite(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: non-finite value %q", ErrNoData, raw)
	}
	return v, nil
}
