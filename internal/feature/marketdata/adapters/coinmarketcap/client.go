// Package coinmarketcap provides a candle adapter for the CoinMarketCap API.
package coinmarketcap

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fynix_backend/internal/feature/marketdata/domain"
	"fynix_backend/internal/feature/marketdata/domain/entity"
	httpx "fynix_backend/internal/platform/http"
)

// Config holds the CoinMarketCap API settings.
type Config struct {
	APIKey  string
	BaseURL string // e.g. "https://pro-api.coinmarketcap.com"
}

// Client fetches historical crypto OHLCV data from CoinMarketCap.
type Client struct {
	cfg  Config
	http *httpx.Client
}

// intervals maps canonical timeframes to CMC historical interval strings.
// 1m has no native equivalent on the historical endpoint.
var intervals = map[domain.Timeframe]string{
	domain.Timeframe5m:  "5m",
	domain.Timeframe15m: "15m",
	domain.Timeframe1h:  "1h",
	domain.Timeframe4h:  "4h",
	domain.Timeframe1d:  "daily",
}

// NewClient creates a CoinMarketCap adapter using the shared retrying HTTP client.
func NewClient(cfg Config, http *httpx.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://pro-api.coinmarketcap.com"
	}
	return &Client{cfg: cfg, http: http}
}

// Name returns the provider identifier used in logs and chain ordering.
func (c *Client) Name() string { return "coinmarketcap" }

// FetchCandles retrieves up to limit ascending OHLCV bars for symbol.
// CMC takes bare coin symbols, so a trailing "USD"/"USDT" quote (and any
// separator) is stripped: "BTC-USD" becomes "BTC".
func (c *Client) FetchCandles(ctx context.Context, symbol string, tf domain.Timeframe, limit int) ([]entity.Candle, error) {
	if c.cfg.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}
	interval, ok := intervals[tf]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedInterval, tf)
	}

	q := url.Values{}
	q.Set("symbol", baseSymbol(symbol))
	q.Set("interval", interval)
	q.Set("time_period", interval)
	q.Set("count", strconv.Itoa(limit))
	q.Set("convert", "USD")

	header := http.Header{}
	header.Set("X-CMC_PRO_API_KEY", c.cfg.APIKey)
	header.Set("Accept", "application/json")

	var body ohlcvHistoricalResponse
	u := c.cfg.BaseURL + "/v2/cryptocurrency/ohlcv/historical"
	if err := c.http.GetJSON(ctx, u, q, header, &body); err != nil {
		return nil, err
	}
	if body.Status.ErrorCode != 0 {
		return nil, fmt.Errorf("coinmarketcap error %d: %s", body.Status.ErrorCode, body.Status.ErrorMessage)
	}

	candles := make([]entity.Candle, 0, len(body.Data.Quotes))
	for _, quote := range body.Data.Quotes {
		usd, ok := quote.Quote["USD"]
		if !ok {
			return nil, fmt.Errorf("coinmarketcap: quote missing USD conversion")
		}
		tm, err := time.Parse(time.RFC3339, quote.TimeOpen)
		if err != nil {
			return nil, fmt.Errorf("coinmarketcap: parse time %q: %w", quote.TimeOpen, err)
		}
		candles = append(candles, entity.Candle{
			Timestamp: tm.UnixMilli(),
			Open:      usd.Open,
			High:      usd.High,
			Low:       usd.Low,
			Close:     usd.Close,
			Volume:    usd.Volume,
		})
	}
	if len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return candles, nil
}

// baseSymbol strips separators and a trailing USD/USDT quote currency.
func baseSymbol(symbol string) string {
	s := strings.ToUpper(strings.NewReplacer("-", "", ".", "", ":", "").Replace(symbol))
	for _, suffix := range []string{"USDT", "USD"} {
		if strings.HasSuffix(s, suffix) && len(s) > len(suffix) {
			return strings.TrimSuffix(s, suffix)
		}
	}
	return s
}
