// Package cache provides caching decorators for market-data services.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"fynix_backend/internal/feature/marketdata/domain"
	"fynix_backend/internal/feature/marketdata/domain/entity"
)

// OHLCService is the fetch capability being decorated. Defined here, on the
// consumer side, and satisfied by the marketdata usecase.
type OHLCService interface {
	GetOHLC(ctx context.Context, symbol string, tf domain.Timeframe, limit int) ([]entity.Candle, error)
}

// CachingOHLCService decorates an OHLCService with Redis caching in the
// cache-aside pattern: this layer is the only writer, entries expire by TTL
// only, and a miss runs the full inner fallback chain. Concurrent identical
// misses are collapsed into one inner call via singleflight.
type CachingOHLCService struct {
	inner     OHLCService
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	group     singleflight.Group
}

// NewCachingOHLCService decorates inner with Redis caching.
// If ttl is 0, it defaults to 60 seconds. If namespace is empty, it uses "ohlc".
func NewCachingOHLCService(rdb *redis.Client, ttl time.Duration, inner OHLCService, namespace string) *CachingOHLCService {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	if namespace == "" {
		namespace = "ohlc"
	}
	return &CachingOHLCService{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetOHLC returns candles from cache when fresh, otherwise from the inner
// service, populating the cache on a non-empty result.
func (c *CachingOHLCService) GetOHLC(ctx context.Context, symbol string, tf domain.Timeframe, limit int) ([]entity.Candle, error) {
	key := c.cacheKey(symbol, tf, limit)

	// Collapse concurrent identical requests onto one fetch.
	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.fetch(ctx, key, symbol, tf, limit)
	})
	if err != nil {
		return nil, err
	}
	return v.([]entity.Candle), nil
}

func (c *CachingOHLCService) fetch(ctx context.Context, key, symbol string, tf domain.Timeframe, limit int) ([]entity.Candle, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetOHLC(ctx, symbol, tf, limit)
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Candle
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the provider chain
	out, err := c.inner.GetOHLC(ctx, symbol, tf, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort); empty results are not cached so a
	// provider recovering inside the TTL window is picked up immediately.
	if len(out) > 0 {
		if b, err := json.Marshal(out); err == nil {
			_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
		}
	}

	return out, nil
}

// cacheKey generates the cache key for a specific query,
// e.g. "ohlc:AAPL:1h:10".
func (c *CachingOHLCService) cacheKey(symbol string, tf domain.Timeframe, limit int) string {
	return fmt.Sprintf("%s:%s:%s:%d",
		c.namespace,
		safe(symbol),
		safe(tf.String()),
		limit,
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
