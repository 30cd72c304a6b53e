// Package usecase implements the market-data business logic: provider
// fallback chains over the adapter implementations.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"fynix_backend/internal/feature/marketdata/domain"
	"fynix_backend/internal/feature/marketdata/domain/entity"
)

const (
	// DefaultLimit is the number of bars returned when the caller does not
	// specify one.
	DefaultLimit = 200
	// MaxLimit is the largest number of bars a single request may ask for.
	MaxLimit = 1000
)

// CandleProvider abstracts one external OHLC data source. Following Go
// convention, the interface is defined by the consumer (usecase), not the
// adapters that implement it.
type CandleProvider interface {
	// Name returns the provider identifier for logging.
	Name() string
	// FetchCandles returns up to limit ascending bars, an empty slice when
	// the provider has no data for the query, or an error when the provider
	// is unusable for this request.
	FetchCandles(ctx context.Context, symbol string, tf domain.Timeframe, limit int) ([]entity.Candle, error)
}

// ohlcUsecase walks an ordered provider chain until one yields data.
type ohlcUsecase struct {
	equity                  []CandleProvider
	crypto                  []CandleProvider
	returnEmptyOnExhaustion bool
}

// NewOHLCUsecase creates the fallback orchestrator. The provider slices are
// tried in order; returnEmptyOnExhaustion selects the total-outage policy:
// true returns an empty result (source-parity resilience), false surfaces
// domain.ErrAllProvidersExhausted.
func NewOHLCUsecase(equity, crypto []CandleProvider, returnEmptyOnExhaustion bool) *ohlcUsecase {
	return &ohlcUsecase{
		equity:                  equity,
		crypto:                  crypto,
		returnEmptyOnExhaustion: returnEmptyOnExhaustion,
	}
}

// GetOHLC fetches up to limit ascending candles for symbol at the canonical
// timeframe tf. Providers are tried strictly in sequence; the first
// non-empty, well-formed result wins and no merging ever happens.
func (u *ohlcUsecase) GetOHLC(ctx context.Context, symbol string, tf domain.Timeframe, limit int) ([]entity.Candle, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	chain := u.crypto
	if isEquityLike(symbol) {
		chain = u.equity
	}

	for _, p := range chain {
		cs, err := p.FetchCandles(ctx, symbol, tf, limit)
		if err != nil {
			slog.Warn("provider failed, trying next", "provider", p.Name(), "symbol", symbol, "timeframe", tf.String(), "error", err)
			continue
		}
		if len(cs) == 0 {
			slog.Debug("provider returned no data", "provider", p.Name(), "symbol", symbol, "timeframe", tf.String())
			continue
		}
		if !wellFormed(cs) {
			// Malformed payload is treated like a transport failure.
			slog.Warn("provider returned malformed bars, trying next", "provider", p.Name(), "symbol", symbol)
			continue
		}
		if len(cs) > limit {
			cs = cs[len(cs)-limit:]
		}
		return cs, nil
	}

	if u.returnEmptyOnExhaustion {
		slog.Warn("all providers failed or empty, returning empty result", "symbol", symbol, "timeframe", tf.String())
		return []entity.Candle{}, nil
	}
	return nil, fmt.Errorf("%w: %s %s", domain.ErrAllProvidersExhausted, symbol, tf)
}

// wellFormed checks ordering and the per-bar OHLC invariant.
func wellFormed(cs []entity.Candle) bool {
	if !entity.Ascending(cs) {
		return false
	}
	for _, c := range cs {
		if !c.Valid() {
			return false
		}
	}
	return true
}

// isEquityLike classifies a symbol: after stripping "-", "." and ":", it is
// equity-like iff the remainder is all letters and 2 to 5 runes long.
// The shape is deliberate and load-bearing; it knowingly misclassifies
// single-letter tickers and equities containing digits.
func isEquityLike(symbol string) bool {
	s := strings.NewReplacer("-", "", ".", "", ":", "").Replace(symbol)
	runes := []rune(s)
	if len(runes) <= 1 || len(runes) > 5 {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
