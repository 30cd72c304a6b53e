// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"fynix_backend/internal/app/config"
	"fynix_backend/internal/feature/marketdata/adapters/alphavantage"
	"fynix_backend/internal/feature/marketdata/adapters/coingecko"
	"fynix_backend/internal/feature/marketdata/adapters/coinmarketcap"
	"fynix_backend/internal/feature/marketdata/adapters/finnhub"
	"fynix_backend/internal/feature/marketdata/adapters/fmp"
	"fynix_backend/internal/feature/marketdata/adapters/marketaux"
	"fynix_backend/internal/feature/marketdata/adapters/newsapi"
	"fynix_backend/internal/feature/marketdata/adapters/polygon"
	markethandler "fynix_backend/internal/feature/marketdata/transport/handler"
	"fynix_backend/internal/feature/marketdata/usecase"
	"fynix_backend/internal/platform/cache"
	httpx "fynix_backend/internal/platform/http"
)

// NewOHLCService builds the provider chains, the fallback orchestrator and
// the Redis cache decorator. A nil rdb disables caching.
func NewOHLCService(cfg *config.Config, rdb *redis.Client) markethandler.OHLCService {
	client := httpx.NewClient(httpx.NewHTTPClient(cfg.HTTPTimeout), httpx.DefaultRetryBudget)

	equity := []usecase.CandleProvider{
		polygon.NewClient(polygon.Config{APIKey: cfg.Providers.Polygon}, client),
		finnhub.NewClient(finnhub.Config{APIKey: cfg.Providers.Finnhub}, client),
		alphavantage.NewClient(alphavantage.Config{APIKey: cfg.Providers.AlphaVantage}, client),
	}
	crypto := []usecase.CandleProvider{
		coingecko.NewClient(coingecko.Config{APIKey: cfg.Providers.CoinGecko}, client),
		coinmarketcap.NewClient(coinmarketcap.Config{APIKey: cfg.Providers.CoinMarketCap}, client),
	}

	orchestrator := usecase.NewOHLCUsecase(equity, crypto, cfg.ReturnEmptyOnExhaustion)
	return cache.NewCachingOHLCService(rdb, cfg.CacheTTL, orchestrator, "ohlc")
}

// NewNewsService builds the news provider chain and orchestrator.
func NewNewsService(cfg *config.Config) markethandler.NewsService {
	client := httpx.NewClient(httpx.NewHTTPClient(cfg.HTTPTimeout), httpx.DefaultRetryBudget)

	chain := []usecase.NewsProvider{
		marketaux.NewClient(marketaux.Config{APIKey: cfg.Providers.MarketAux}, client),
		newsapi.NewClient(newsapi.Config{APIKey: cfg.Providers.NewsAPI}, client),
		fmp.NewClient(fmp.Config{APIKey: cfg.Providers.FMP}, client),
	}

	return usecase.NewNewsUsecase(chain, cfg.ReturnEmptyOnExhaustion)
}
