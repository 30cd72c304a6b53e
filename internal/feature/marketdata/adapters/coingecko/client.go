// Package coingecko provides a candle adapter for the CoinGecko API.
package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fynix_backend/internal/feature/marketdata/domain"
	"fynix_backend/internal/feature/marketdata/domain/entity"
	httpx "fynix_backend/internal/platform/http"
)

// Config holds the CoinGecko API settings.
type Config struct {
	APIKey  string
	BaseURL string // e.g. "https://api.coingecko.com"
}

// Client fetches crypto OHLC data from CoinGecko.
type Client struct {
	cfg  Config
	http *httpx.Client
}

// coinIDs maps common ticker symbols to CoinGecko coin ids. Symbols outside
// the table fall back to the lowercased base symbol, which matches ids for
// many smaller coins.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"ADA":   "cardano",
	"XRP":   "ripple",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"LTC":   "litecoin",
	"BNB":   "binancecoin",
	"LINK":  "chainlink",
	"AVAX":  "avalanche-2",
	"MATIC": "matic-network",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
}

// ohlcDays are the windows the /ohlc endpoint accepts, ascending.
var ohlcDays = []int{1, 7, 14, 30, 90, 180, 365}

// NewClient creates a CoinGecko adapter using the shared retrying HTTP client.
func NewClient(cfg Config, http *httpx.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.coingecko.com"
	}
	return &Client{cfg: cfg, http: http}
}

// Name returns the provider identifier used in logs and chain ordering.
func (c *Client) Name() string { return "coingecko" }

// FetchCandles retrieves up to limit ascending OHLC bars for symbol.
// CoinGecko reports no volume on its OHLC endpoint; Volume is 0.
func (c *Client) FetchCandles(ctx context.Context, symbol string, tf domain.Timeframe, limit int) ([]entity.Candle, error) {
	if c.cfg.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	id := coinID(symbol)
	u := fmt.Sprintf("%s/api/v3/coins/%s/ohlc", c.cfg.BaseURL, url.PathEscape(id))

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", strconv.Itoa(daysFor(tf, limit)))

	header := http.Header{}
	header.Set("x-cg-demo-api-key", c.cfg.APIKey)

	// Body is an array of [ts_ms, open, high, low, close] rows.
	var rows [][]float64
	if err := c.http.GetJSON(ctx, u, q, header, &rows); err != nil {
		return nil, err
	}

	candles := make([]entity.Candle, 0, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			return nil, fmt.Errorf("coingecko: malformed ohlc row of length %d", len(row))
		}
		candles = append(candles, entity.Candle{
			Timestamp: int64(row[0]),
			Open:      row[1],
			High:      row[2],
			Low:       row[3],
			Close:     row[4],
		})
	}
	if len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return candles, nil
}

// coinID resolves a ticker like "BTC-USD" or "ETHUSD" to a CoinGecko coin id.
func coinID(symbol string) string {
	base := strings.ToUpper(strings.ReplaceAll(symbol, "-", ""))
	for _, suffix := range []string{"USDT", "USD"} {
		if strings.HasSuffix(base, suffix) && len(base) > len(suffix) {
			base = strings.TrimSuffix(base, suffix)
			break
		}
	}
	if id, ok := coinIDs[base]; ok {
		return id
	}
	return strings.ToLower(base)
}

// daysFor picks the smallest accepted window covering limit bars of tf.
func daysFor(tf domain.Timeframe, limit int) int {
	need := (limit*tf.Seconds() + 86399) / 86400
	for _, d := range ohlcDays {
		if d >= need {
			return d
		}
	}
	return ohlcDays[len(ohlcDays)-1]
}
