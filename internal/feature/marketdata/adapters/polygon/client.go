// Package polygon provides a candle adapter for the Polygon.io aggregates API.
package polygon

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"fynix_backend/internal/feature/marketdata/domain"
	"fynix_backend/internal/feature/marketdata/domain/entity"
	httpx "fynix_backend/internal/platform/http"
)

// Config holds the Polygon API settings.
type Config struct {
	APIKey  string
	BaseURL string // e.g. "https://api.polygon.io"
}

// Client fetches OHLC aggregates from Polygon.
type Client struct {
	cfg  Config
	http *httpx.Client
}

// timespans maps canonical timeframes to Polygon (multiplier, timespan) pairs.
var timespans = map[domain.Timeframe]struct {
	multiplier int
	timespan   string
}{
	domain.Timeframe1m:  {1, "minute"},
	domain.Timeframe5m:  {5, "minute"},
	domain.Timeframe15m: {15, "minute"},
	domain.Timeframe1h:  {1, "hour"},
	domain.Timeframe4h:  {4, "hour"},
	domain.Timeframe1d:  {1, "day"},
}

// NewClient creates a Polygon adapter using the shared retrying HTTP client.
func NewClient(cfg Config, http *httpx.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.polygon.io"
	}
	return &Client{cfg: cfg, http: http}
}

// Name returns the provider identifier used in logs and chain ordering.
func (c *Client) Name() string { return "polygon" }

// FetchCandles retrieves up to limit ascending OHLC bars for symbol.
// An empty slice with nil error means Polygon has no data for the query.
func (c *Client) FetchCandles(ctx context.Context, symbol string, tf domain.Timeframe, limit int) ([]entity.Candle, error) {
	if c.cfg.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}
	span, ok := timespans[tf]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedInterval, tf)
	}

	// Window sized to limit bars with headroom for closed-market gaps.
	to := time.Now().UTC()
	from := to.Add(-time.Duration(limit*tf.Seconds()) * time.Second * 3)

	u := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/%d/%s/%d/%d",
		c.cfg.BaseURL, url.PathEscape(symbol), span.multiplier, span.timespan,
		from.UnixMilli(), to.UnixMilli())

	q := url.Values{}
	q.Set("adjusted", "true")
	q.Set("sort", "asc")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("apiKey", c.cfg.APIKey)

	var body aggsResponse
	if err := c.http.GetJSON(ctx, u, q, nil, &body); err != nil {
		return nil, err
	}
	if body.Status == "ERROR" {
		return nil, fmt.Errorf("polygon: %s", body.Error)
	}

	candles := make([]entity.Candle, 0, len(body.Results))
	for _, r := range body.Results {
		candles = append(candles, entity.Candle{
			Timestamp: r.Timestamp,
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    r.Volume,
		})
	}
	if len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return candles, nil
}
