package fmp

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

func TestClient_FetchNews_Success(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/stock_news" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("tickers") != "AAPL" {
			t.Errorf("expected tickers AAPL, got %s", r.URL.Query().Get("tickers"))
		}
		_, _ = w.Write([]byte(`[
			{"title": "Apple earnings", "text": "Beat estimates.", "url": "https://example.com/e", "site": "example", "publishedDate": "2025-01-15 10:00:00"}
		]`))
	})

	items, err := client.FetchNews(context.Background(), "AAPL", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Summary != "Beat estimates." {
		t.Errorf("unexpected summary %q", items[0].Summary)
	}
}

func TestClient_FetchNews_TruncatesToLimit(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"title": "a", "url": "https://example.com/a", "site": "x", "publishedDate": "2025-01-15 10:00:00"},
			{"title": "b", "url": "https://example.com/b", "site": "x", "publishedDate": "2025-01-15 09:00:00"},
			{"title": "c", "url": "https://example.com/c", "site": "x", "publishedDate": "2025-01-15 08:00:00"}
		]`))
	})

	items, err := client.FetchNews(context.Background(), "AAPL", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestClient_FetchNews_BadDate(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"title": "a", "url": "https://example.com/a", "site": "x", "publishedDate": "not-a-date"}]`))
	})

	_, err := client.FetchNews(context.Background(), "AAPL", 5)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "publishedDate") {
		t.Errorf("expected date parse error, got %v", err)
	}
}

func TestClient_FetchNews_MissingAPIKey(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{}, httpx.NewClient(http.DefaultClient, time.Second))

	_, err := client.FetchNews(context.Background(), "AAPL", 5)
	if !errors.Is(err, domain.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}
