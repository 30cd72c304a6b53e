package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

func TestClient_GetJSON_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", r.URL.Query().Get("symbol"))
		}
		if r.Header.Get("X-Api-Key") != "secret" {
			t.Errorf("expected api key header, got %q", r.Header.Get("X-Api-Key"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), time.Second)

	params := url.Values{}
	params.Set("symbol", "AAPL")
	header := http.Header{}
	header.Set("X-Api-Key", "secret")

	var out struct {
		Status string `json:"status"`
	}
	if err := client.GetJSON(context.Background(), server.URL, params, header, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != "ok" {
		t.Errorf("expected status ok, got %q", out.Status)
	}
}

func TestClient_GetJSON_RetriesRateLimit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), 10*time.Second)

	var out struct {
		Status string `json:"status"`
	}
	if err := client.GetJSON(context.Background(), server.URL, nil, nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestClient_GetJSON_RateLimitBudgetExhausted(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	// Budget too small for even one backoff sleep.
	client := NewClient(server.Client(), 100*time.Millisecond)

	err := client.GetJSON(context.Background(), server.URL, nil, nil, nil)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestClient_GetJSON_TerminalStatusNotRetried(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"bad request", http.StatusBadRequest},
		{"unauthorized", http.StatusUnauthorized},
		{"not found", http.StatusNotFound},
		{"internal server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			client := NewClient(server.Client(), 10*time.Second)

			err := client.GetJSON(context.Background(), server.URL, nil, nil, nil)

			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("expected StatusError, got %v", err)
			}
			if se.StatusCode != tt.statusCode {
				t.Errorf("expected status %d, got %d", tt.statusCode, se.StatusCode)
			}
			if got := calls.Load(); got != 1 {
				t.Errorf("expected 1 attempt, got %d", got)
			}
		})
	}
}

func TestClient_GetJSON_DecodeErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{invalid json`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), 10*time.Second)

	var out map[string]any
	err := client.GetJSON(context.Background(), server.URL, nil, nil, &out)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 attempt, got %d", got)
	}
}

func TestClient_GetJSON_ContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.Client(), 10*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := client.GetJSON(ctx, server.URL, nil, nil, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context deadline error, got %v", err)
	}
}

func TestClient_GetJSON_RetriesTransportError(t *testing.T) {
	t.Parallel()

	// Nothing listens on this address; every attempt fails at the dial.
	client := NewClient(NewHTTPClient(time.Second), 300*time.Millisecond)

	start := time.Now()
	err := client.GetJSON(context.Background(), "http://127.0.0.1:1", nil, nil, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("retry loop exceeded its budget")
	}
}
