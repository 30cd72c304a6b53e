// Package newsapi provides a news adapter for the NewsAPI.org API.
package newsapi

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

// Config holds the NewsAPI settings.
type Config struct {
	APIKey  string
	BaseURL string // e.g. "https://newsapi.org"
}

// Client fetches general news from NewsAPI.
type Client struct {
	cfg  Config
	http *httpx.Client
}

// everythingResponse represents the JSON response from /v2/everything.
type everythingResponse struct {
	Status   string `json:"status"` // "ok" | "error"
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// NewClient creates a NewsAPI adapter using the shared retrying HTTP client.
func NewClient(cfg Config, http *httpx.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://newsapi.org"
	}
	return &Client{cfg: cfg, http: http}
}

// Name returns the provider identifier used in logs and chain ordering.
func (c *Client) Name() string { return "newsapi" }

// FetchNews retrieves up to limit news articles mentioning symbol.
func (c *Client) FetchNews(ctx context.Context, symbol string, limit int) ([]entity.NewsItem, error) {
	if c.cfg.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("q", symbol)
	q.Set("pageSize", strconv.Itoa(limit))
	q.Set("sortBy", "publishedAt")
	q.Set("apiKey", c.cfg.APIKey)

	var body everythingResponse
	if err := c.http.GetJSON(ctx, c.cfg.BaseURL+"/v2/everything", q, nil, &body); err != nil {
		return nil, err
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("newsapi %s: %s", body.Code, body.Message)
	}

	items := make([]entity.NewsItem, 0, len(body.Articles))
	for _, a := range body.Articles {
		published, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("newsapi: parse publishedAt %q: %w", a.PublishedAt, err)
		}
		items = append(items, entity.NewsItem{
			Title:       a.Title,
			Summary:     a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: published,
		})
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
