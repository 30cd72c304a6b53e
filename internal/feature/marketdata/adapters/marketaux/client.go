// Package marketaux provides a news adapter for the Marketaux API.
package marketaux

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

// Config holds the Marketaux API settings.
type Config struct {
	APIKey  string
	BaseURL string // e.g. "https://api.marketaux.com"
}

// Client fetches financial news from Marketaux.
type Client struct {
	cfg  Config
	http *httpx.Client
}

// newsResponse represents the JSON response from /v1/news/all.
type newsResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Data []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Source      string `json:"source"`
		PublishedAt string `json:"published_at"`
	} `json:"data"`
}

// NewClient creates a Marketaux adapter using the shared retrying HTTP client.
func NewClient(cfg Config, http *httpx.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.marketaux.com"
	}
	return &Client{cfg: cfg, http: http}
}

// Name returns the provider identifier used in logs and chain ordering.
func (c *Client) Name() string { return "marketaux" }

// FetchNews retrieves up to limit news items mentioning symbol.
func (c *Client) FetchNews(ctx context.Context, symbol string, limit int) ([]entity.NewsItem, error) {
	if c.cfg.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("symbols", symbol)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("api_token", c.cfg.APIKey)

	var body newsResponse
	if err := c.http.GetJSON(ctx, c.cfg.BaseURL+"/v1/news/all", q, nil, &body); err != nil {
		return nil, err
	}
	if body.Error != nil {
		return nil, fmt.Errorf("marketaux %s: %s", body.Error.Code, body.Error.Message)
	}

	items := make([]entity.NewsItem, 0, len(body.Data))
	for _, d := range body.Data {
		published, err := time.Parse(time.RFC3339, d.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("marketaux: parse published_at %q: %w", d.PublishedAt, err)
		}
		items = append(items, entity.NewsItem{
			Title:       d.Title,
			Summary:     d.Description,
			URL:         d.URL,
			Source:      d.Source,
			PublishedAt: published,
		})
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
