package newsapi

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
		if r.URL.Path != "/v2/everything" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "TSLA" {
			t.Errorf("expected q TSLA, got %s", r.URL.Query().Get("q"))
		}
		if r.URL.Query().Get("pageSize") != "3" {
			t.Errorf("expected pageSize 3, got %s", r.URL.Query().Get("pageSize"))
		}
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"title": "Tesla update", "description": "Deliveries up.", "url": "https://example.com/t", "source": {"name": "Example"}, "publishedAt": "2025-01-15T10:00:00Z"}
			]
		}`))
	})

	items, err := client.FetchNews(context.Background(), "TSLA", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Source != "Example" {
		t.Errorf("expected source Example, got %q", items[0].Source)
	}
}

func TestClient_FetchNews_ErrorStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid", "message": "Your API key is invalid."}`))
	})

	_, err := client.FetchNews(context.Background(), "TSLA", 3)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "apiKeyInvalid") {
		t.Errorf("expected provider error, got %v", err)
	}
}

func TestClient_FetchNews_MissingAPIKey(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{}, httpx.NewClient(http.DefaultClient, time.Second))

	_, err := client.FetchNews(context.Background(), "TSLA", 3)
	if !errors.Is(err, domain.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}
