// Command warm pre-populates the OHLC cache for a fixed symbol list so the
// first requests after a deploy are served hot. Provider free tiers are
// strict, so fetches are paced through the shared rate limiter.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"fynix_backend/internal/app/config"
	"fynix_backend/internal/app/di"
	"fynix_backend/internal/feature/marketdata/domain"
	platformredis "fynix_backend/internal/platform/redis"
	"fynix_backend/internal/shared/ratelimiter"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	symbolsFlag := flag.String("symbols", "AAPL,MSFT,TSLA,BTC-USD,ETH-USD", "comma-separated symbols to warm")
	timeframesFlag := flag.String("timeframes", "1h,1d", "comma-separated timeframes to warm")
	limit := flag.Int("limit", 200, "bars per fetch")
	perMinute := flag.Int("rate", 5, "provider calls per minute")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	rdb, err := platformredis.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	svc := di.NewOHLCService(cfg, rdb)
	limiter := ratelimiter.NewRateLimiter(*perMinute, time.Minute)

	var timeframes []domain.Timeframe
	for _, raw := range strings.Split(*timeframesFlag, ",") {
		tf, err := domain.Normalize(raw)
		if err != nil {
			log.Fatalf("timeframe %q: %v", raw, err)
		}
		timeframes = append(timeframes, tf)
	}

	warmed := 0
	for _, symbol := range strings.Split(*symbolsFlag, ",") {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" {
			continue
		}
		for _, tf := range timeframes {
			limiter.WaitIfNeeded()
			candles, err := svc.GetOHLC(ctx, symbol, tf, *limit)
			if err != nil {
				slog.Warn("warm fetch failed", "symbol", symbol, "timeframe", tf, "error", err)
				continue
			}
			slog.Info("warmed", "symbol", symbol, "timeframe", tf, "bars", len(candles))
			warmed++
		}
	}

	slog.Info("warm complete", "entries", warmed)
}
