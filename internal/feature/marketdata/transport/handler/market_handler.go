// Package handler provides the HTTP handlers for the marketdata feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fynix_backend/internal/api"
	"fynix_backend/internal/feature/marketdata/domain"
	"fynix_backend/internal/feature/marketdata/domain/entity"
	"fynix_backend/internal/feature/marketdata/usecase"
)

// OHLCService is the candle capability consumed by the handler. Following Go
// convention, the interface is defined on the consumer (handler) side.
type OHLCService interface {
	GetOHLC(ctx context.Context, symbol string, tf domain.Timeframe, limit int) ([]entity.Candle, error)
}

// NewsService is the news capability consumed by the handler.
type NewsService interface {
	GetNews(ctx context.Context, symbol string, limit int) ([]entity.NewsItem, error)
}

// MarketHandler serves market-data HTTP requests.
type MarketHandler struct {
	ohlc OHLCService
	news NewsService
}

// NewMarketHandler creates a MarketHandler with the injected services.
func NewMarketHandler(ohlc OHLCService, news NewsService) *MarketHandler {
	return &MarketHandler{ohlc: ohlc, news: news}
}

// GetOHLC handles GET /ohlc?symbol=&timeframe=&limit=.
//
// Responses:
//   - 400 for a missing symbol or unsupported timeframe
//   - 502 when every provider in the chain failed (strict exhaustion policy)
//   - 500 for anything unexpected
func (h *MarketHandler) GetOHLC(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol is required"})
		return
	}

	tf, err := domain.Normalize(c.DefaultQuery("timeframe", "1h"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	// The limit is clamped before the cache layer so equivalent requests
	// share one cache key.
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(usecase.DefaultLimit)))
	if limit <= 0 || limit > usecase.MaxLimit {
		limit = usecase.DefaultLimit
	}

	candles, err := h.ohlc.GetOHLC(c.Request.Context(), symbol, tf, limit)
	switch {
	case errors.Is(err, domain.ErrAllProvidersExhausted):
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "no market data available"})
		return
	case err != nil:
		slog.Error("ohlc request failed", "symbol", symbol, "timeframe", tf.String(), "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	out := make([]api.CandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, api.CandleResponse{
			Timestamp: x.Timestamp,
			Open:      x.Open,
			High:      x.High,
			Low:       x.Low,
			Close:     x.Close,
			Volume:    x.Volume,
		})
	}

	c.JSON(http.StatusOK, api.OHLCResponse{
		Symbol:    symbol,
		Timeframe: tf.String(),
		Candles:   out,
	})
}

// GetNews handles GET /news?symbol=&limit=.
func (h *MarketHandler) GetNews(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol is required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(usecase.DefaultNewsLimit)))

	items, err := h.news.GetNews(c.Request.Context(), symbol, limit)
	switch {
	case errors.Is(err, domain.ErrAllProvidersExhausted):
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "no news available"})
		return
	case err != nil:
		slog.Error("news request failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	out := make([]api.NewsItemResponse, 0, len(items))
	for _, x := range items {
		out = append(out, api.NewsItemResponse{
			Title:       x.Title,
			Summary:     x.Summary,
			URL:         x.URL,
			Source:      x.Source,
			PublishedAt: x.PublishedAt.UTC().Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, api.NewsResponse{Symbol: symbol, Items: out})
}
