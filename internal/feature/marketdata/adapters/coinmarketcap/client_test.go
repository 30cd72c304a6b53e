package coinmarketcap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fynix_backend/internal/feature/marketdata/domain"
	httpx "fynix_backend/internal/platform/http"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := Config{APIKey: "test-key", BaseURL: server.URL}
	return NewClient(cfg, httpx.NewClient(server.Client(), time.Second))
}

func TestClient_FetchCandles_Success(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/cryptocurrency/ohlcv/historical" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		// BTC-USD must reach CMC as the bare base symbol.
		if r.URL.Query().Get("symbol") != "BTC" {
			t.Errorf("expected symbol BTC, got %s", r.URL.Query().Get("symbol"))
		}
		if r.Header.Get("X-CMC_PRO_API_KEY") != "test-key" {
			t.Errorf("expected api key header, got %q", r.Header.Get("X-CMC_PRO_API_KEY"))
		}
		_, _ = w.Write([]byte(`{
			"status": {"error_code": 0},
			"data": {
				"symbol": "BTC",
				"quotes": [
					{"time_open": "2023-11-14T22:00:00Z", "quote": {"USD": {"open": 42000, "high": 42500, "low": 41800, "close": 42300, "volume": 12345.6}}},
					{"time_open": "2023-11-14T23:00:00Z", "quote": {"USD": {"open": 42300, "high": 42600, "low": 42100, "close": 42550, "volume": 10000.1}}}
				]
			}
		}`))
	})

	candles, err := client.FetchCandles(context.Background(), "BTC-USD", domain.Timeframe1h, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(candles))
	}
	if candles[0].Volume != 12345.6 {
		t.Errorf("expected volume 12345.6, got %f", candles[0].Volume)
	}
	if candles[0].Timestamp >= candles[1].Timestamp {
		t.Error("expected ascending candles")
	}
}

func TestClient_FetchCandles_ProviderError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": {"error_code": 1001, "error_message": "invalid key"}}`))
	})

	_, err := client.FetchCandles(context.Background(), "BTC-USD", domain.Timeframe1h, 10)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "invalid key") {
		t.Errorf("expected provider error message, got %v", err)
	}
}

func TestClient_FetchCandles_1mUnsupported(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{APIKey: "k"}, httpx.NewClient(http.DefaultClient, time.Second))

	_, err := client.FetchCandles(context.Background(), "BTC-USD", domain.Timeframe1m, 10)
	if !errors.Is(err, domain.ErrUnsupportedInterval) {
		t.Errorf("expected ErrUnsupportedInterval, got %v", err)
	}
}

func TestClient_FetchCandles_MissingAPIKey(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{}, httpx.NewClient(http.DefaultClient, time.Second))

	_, err := client.FetchCandles(context.Background(), "BTC-USD", domain.Timeframe1h, 10)
	if !errors.Is(err, domain.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestBaseSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		symbol   string
		expected string
	}{
		{"BTC-USD", "BTC"},
		{"BTCUSD", "BTC"},
		{"eth-usdt", "ETH"},
		{"sol", "SOL"},
		{"BTC:USD", "BTC"},
		{"USD", "USD"},
	}

	for _, tt := range tests {
		if got := baseSymbol(tt.symbol); got != tt.expected {
			t.Errorf("baseSymbol(%q) = %q, expected %q", tt.symbol, got, tt.expected)
		}
	}
}
