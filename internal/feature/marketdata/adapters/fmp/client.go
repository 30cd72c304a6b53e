// Package fmp provides a news adapter for the Financial Modeling Prep API.
package fmp

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

// Config holds the FMP API settings.
type Config struct {
	APIKey  string
	BaseURL string // e.g. "https://financialmodelingprep.com"
}

// Client fetches stock news from Financial Modeling Prep.
type Client struct {
	cfg  Config
	http *httpx.Client
}

// newsArticle represents one entry of the /api/v3/stock_news array response.
type newsArticle struct {
	Title         string `json:"title"`
	Text          string `json:"text"`
	URL           string `json:"url"`
	Site          string `json:"site"`
	PublishedDate string `json:"publishedDate"` // "2006-01-02 15:04:05"
}

// NewClient creates an FMP adapter using the shared retrying HTTP client.
func NewClient(cfg Config, http *httpx.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://financialmodelingprep.com"
	}
	return &Client{cfg: cfg, http: http}
}

// Name returns the provider identifier used in logs and chain ordering.
func (c *Client) Name() string { return "fmp" }

// FetchNews retrieves up to limit stock news articles for symbol.
func (c *Client) FetchNews(ctx context.Context, symbol string, limit int) ([]entity.NewsItem, error) {
	if c.cfg.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("tickers", symbol)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("apikey", c.cfg.APIKey)

	var body []newsArticle
	if err := c.http.GetJSON(ctx, c.cfg.BaseURL+"/api/v3/stock_news", q, nil, &body); err != nil {
		return nil, err
	}

	items := make([]entity.NewsItem, 0, len(body))
	for _, a := range body {
		published, err := time.Parse("2006-01-02 15:04:05", a.PublishedDate)
		if err != nil {
			return nil, fmt.Errorf("fmp: parse publishedDate %q: %w", a.PublishedDate, err)
		}
		items = append(items, entity.NewsItem{
			Title:       a.Title,
			Summary:     a.Text,
			URL:         a.URL,
			Source:      a.Site,
			PublishedAt: published,
		})
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
