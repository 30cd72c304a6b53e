// Package finnhub provides a candle adapter for the Finnhub stock API.
package finnhub

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

// Config holds the Finnhub API settings.
type Config struct {
	APIKey  string
	BaseURL string // e.g. "https://finnhub.io"
}

// Client fetches stock candles from Finnhub.
type Client struct {
	cfg  Config
	http *httpx.Client
}

// resolutions maps canonical timeframes to Finnhub resolution strings.
var resolutions = map[domain.Timeframe]string{
	domain.Timeframe1m:  "1",
	domain.Timeframe5m:  "5",
	domain.Timeframe15m: "15",
	domain.Timeframe1h:  "60",
	domain.Timeframe4h:  "240",
	domain.Timeframe1d:  "D",
}

// NewClient creates a Finnhub adapter using the shared retrying HTTP client.
func NewClient(cfg Config, http *httpx.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://finnhub.io"
	}
	return &Client{cfg: cfg, http: http}
}

// Name returns the provider identifier used in logs and chain ordering.
func (c *Client) Name() string { return "finnhub" }

// FetchCandles retrieves up to limit ascending OHLC bars for symbol.
// A "no_data" response maps to an empty slice with nil error.
func (c *Client) FetchCandles(ctx context.Context, symbol string, tf domain.Timeframe, limit int) ([]entity.Candle, error) {
	if c.cfg.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}
	res, ok := resolutions[tf]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedInterval, tf)
	}

	to := time.Now().UTC()
	from := to.Add(-time.Duration(limit*tf.Seconds()) * time.Second * 3)

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("resolution", res)
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(to.Unix(), 10))
	q.Set("token", c.cfg.APIKey)

	var body candleResponse
	if err := c.http.GetJSON(ctx, c.cfg.BaseURL+"/api/v1/stock/candle", q, nil, &body); err != nil {
		return nil, err
	}

	switch body.Status {
	case "ok":
	case "no_data":
		return []entity.Candle{}, nil
	default:
		return nil, fmt.Errorf("finnhub status %q", body.Status)
	}
	// Columnar arrays must line up bar for bar.
	n := len(body.Timestamps)
	if len(body.Opens) != n || len(body.Highs) != n || len(body.Lows) != n ||
		len(body.Closes) != n || len(body.Volumes) != n {
		return nil, fmt.Errorf("finnhub: mismatched series lengths")
	}

	candles := make([]entity.Candle, 0, n)
	for i := 0; i < n; i++ {
		candles = append(candles, entity.Candle{
			Timestamp: body.Timestamps[i] * 1000, // epoch s -> ms
			Open:      body.Opens[i],
			High:      body.Highs[i],
			Low:       body.Lows[i],
			Close:     body.Closes[i],
			Volume:    body.Volumes[i],
		})
	}
	if len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return candles, nil
}
