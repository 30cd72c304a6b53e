package domain

import "errors"

var (
	// ErrMissingAPIKey is returned by an adapter whose provider has no API
	// key configured. The fallback chain treats it like any other provider
	// failure: the provider is skipped, never crashed on.
	ErrMissingAPIKey = errors.New("provider api key not configured")

	// ErrUnsupportedInterval is returned by an adapter whose provider has no
	// native equivalent for a canonical timeframe (e.g. AlphaVantage intraday
	// has no 4h resolution). The chain moves on to the next provider.
	ErrUnsupportedInterval = errors.New("interval not supported by provider")

	// ErrAllProvidersExhausted is returned by the orchestrator when every
	// provider in the chain failed or returned no data, and the
	// return-empty-on-exhaustion policy is disabled.
	ErrAllProvidersExhausted = errors.New("all providers failed or returned no data")
)
