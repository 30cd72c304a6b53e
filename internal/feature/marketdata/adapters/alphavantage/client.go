// Package alphavantage provides a candle adapter for the Alpha Vantage API.
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"fynix_backend/internal/feature/marketdata/domain"
	"fynix_backend/internal/feature/marketdata/domain/entity"
	httpx "fynix_backend/internal/platform/http"
)

// Config holds the Alpha Vantage API settings.
type Config struct {
	APIKey  string
	BaseURL string // e.g. "https://www.alphavantage.co"
}

// Client fetches time series data from Alpha Vantage.
type Client struct {
	cfg  Config
	http *httpx.Client
}

// intervals maps canonical timeframes to Alpha Vantage intraday intervals.
// 4h has no native equivalent and 1d goes through TIME_SERIES_DAILY instead.
var intervals = map[domain.Timeframe]string{
	domain.Timeframe1m:  "1min",
	domain.Timeframe5m:  "5min",
	domain.Timeframe15m: "15min",
	domain.Timeframe1h:  "60min",
}

// NewClient creates an Alpha Vantage adapter using the shared retrying HTTP client.
func NewClient(cfg Config, http *httpx.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.alphavantage.co"
	}
	return &Client{cfg: cfg, http: http}
}

// Name returns the provider identifier used in logs and chain ordering.
func (c *Client) Name() string { return "alphavantage" }

// FetchCandles retrieves up to limit ascending OHLC bars for symbol.
func (c *Client) FetchCandles(ctx context.Context, symbol string, tf domain.Timeframe, limit int) ([]entity.Candle, error) {
	if c.cfg.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("apikey", c.cfg.APIKey)
	q.Set("outputsize", "compact")

	switch {
	case tf == domain.Timeframe1d:
		q.Set("function", "TIME_SERIES_DAILY")
	default:
		interval, ok := intervals[tf]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedInterval, tf)
		}
		q.Set("function", "TIME_SERIES_INTRADAY")
		q.Set("interval", interval)
	}

	var body map[string]json.RawMessage
	if err := c.http.GetJSON(ctx, c.cfg.BaseURL+"/query", q, nil, &body); err != nil {
		return nil, err
	}
	if msg, ok := body["Error Message"]; ok {
		return nil, fmt.Errorf("alphavantage: %s", rawString(msg))
	}
	if msg, ok := body["Note"]; ok {
		// Throttle notes arrive with HTTP 200; treat them as a provider failure.
		return nil, fmt.Errorf("alphavantage: %s", rawString(msg))
	}

	series, err := findSeries(body)
	if err != nil {
		return nil, err
	}

	candles := make([]entity.Candle, 0, len(series))
	for datetime, bar := range series {
		tm, err := parseDatetime(datetime)
		if err != nil {
			return nil, err
		}
		candle, err := bar.toCandle(tm)
		if err != nil {
			return nil, err
		}
		candles = append(candles, candle)
	}

	// Series arrive as an unordered object keyed by datetime.
	sort.Slice(candles, func(i, j int) bool { return candles[i].Timestamp < candles[j].Timestamp })
	if len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return candles, nil
}

// findSeries locates the "Time Series (...)" object in the response body.
func findSeries(body map[string]json.RawMessage) (map[string]seriesBar, error) {
	for key, raw := range body {
		if !strings.HasPrefix(key, "Time Series") {
			continue
		}
		var series map[string]seriesBar
		if err := json.Unmarshal(raw, &series); err != nil {
			return nil, fmt.Errorf("alphavantage: decode series: %w", err)
		}
		return series, nil
	}
	// No series key at all means no data for the query.
	return map[string]seriesBar{}, nil
}

func parseDatetime(s string) (time.Time, error) {
	tm, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		tm, err = time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("alphavantage: parse time %q: %w", s, err)
		}
	}
	return tm, nil
}

func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return string(raw)
	}
	return s
}

// toCandle parses the string-typed OHLCV fields into a domain candle.
func (b seriesBar) toCandle(tm time.Time) (entity.Candle, error) {
	o, err := strconv.ParseFloat(b.Open, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("alphavantage: parse open %q: %w", b.Open, err)
	}
	h, err := strconv.ParseFloat(b.High, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("alphavantage: parse high %q: %w", b.High, err)
	}
	l, err := strconv.ParseFloat(b.Low, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("alphavantage: parse low %q: %w", b.Low, err)
	}
	cl, err := strconv.ParseFloat(b.Close, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("alphavantage: parse close %q: %w", b.Close, err)
	}
	v, err := strconv.ParseFloat(b.Volume, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("alphavantage: parse volume %q: %w", b.Volume, err)
	}
	return entity.Candle{
		Timestamp: tm.UnixMilli(),
		Open:      o,
		High:      h,
		Low:       l,
		Close:     cl,
		Volume:    v,
	}, nil
}
