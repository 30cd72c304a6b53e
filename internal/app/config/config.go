// Package config centralizes environment-based configuration. The settings
// are read once at startup and passed down explicitly; no other package reads
// the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"fynix_backend/internal/platform/db"
)

// ProviderKeys holds the API keys for the market data providers. A missing
// key disables the provider rather than failing startup.
type ProviderKeys struct {
	Polygon       string
	Finnhub       string
	AlphaVantage  string
	CoinGecko     string
	CoinMarketCap string
	MarketAux     string
	NewsAPI       string
	FMP           string
}

// Config holds every runtime setting of the server.
type Config struct {
	Port string

	JWTSecret     string
	JWTExpiration time.Duration

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	DB        db.Config
	DBTimeout time.Duration

	Providers ProviderKeys

	// ReturnEmptyOnExhaustion controls whether an exhausted provider chain
	// yields an empty result or an error.
	ReturnEmptyOnExhaustion bool

	HTTPTimeout time.Duration
}

// Load builds the Config from environment variables, applying defaults for
// everything except the JWT secret.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	cfg := &Config{
		Port:          envOr("PORT", "8080"),
		JWTSecret:     secret,
		JWTExpiration: envDuration("JWT_EXPIRATION", 24*time.Hour),

		RedisAddr:     envOr("REDIS_HOST", "localhost") + ":" + envOr("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      envDuration("CACHE_TTL", time.Minute),

		DB: db.Config{
			User:     envOr("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     envOr("DB_NAME", "fynix"),
			Host:     envOr("DB_HOST", "localhost"),
			Port:     envOr("DB_PORT", "5432"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
		DBTimeout: envDuration("DB_CONNECT_TIMEOUT", time.Minute),

		Providers: ProviderKeys{
			Polygon:       os.Getenv("POLYGON_API_KEY"),
			Finnhub:       os.Getenv("FINNHUB_API_KEY"),
			AlphaVantage:  os.Getenv("ALPHA_VANTAGE_API_KEY"),
			CoinGecko:     os.Getenv("COINGECKO_API_KEY"),
			CoinMarketCap: os.Getenv("COINMARKETCAP_API_KEY"),
			MarketAux:     os.Getenv("MARKETAUX_API_KEY"),
			NewsAPI:       os.Getenv("NEWSAPI_API_KEY"),
			FMP:           os.Getenv("FMP_API_KEY"),
		},

		ReturnEmptyOnExhaustion: envBool("RETURN_EMPTY_ON_EXHAUSTION", true),

		HTTPTimeout: envDuration("HTTP_CLIENT_TIMEOUT", 20*time.Second),
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
