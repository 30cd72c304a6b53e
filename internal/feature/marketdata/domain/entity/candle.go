// Package entity defines the domain models for the marketdata feature.
package entity

import "time"

// Candle represents one OHLCV (Open, High, Low, Close, Volume) bar
// normalized from a provider response.
type Candle struct {
	// Timestamp is the bar open time in epoch milliseconds (UTC).
	Timestamp int64 `json:"ts"`

	// Open is the opening price.
	Open float64 `json:"o"`

	// High is the highest price during this bar.
	High float64 `json:"h"`

	// Low is the lowest price during this bar.
	Low float64 `json:"l"`

	// Close is the closing price.
	Close float64 `json:"c"`

	// Volume is the traded volume during this bar.
	Volume float64 `json:"v"`
}

// Valid reports whether the bar satisfies the OHLC shape invariant:
// High >= max(Open, Close) and Low <= min(Open, Close).
func (c Candle) Valid() bool {
	hi := c.Open
	if c.Close > hi {
		hi = c.Close
	}
	lo := c.Open
	if c.Close < lo {
		lo = c.Close
	}
	return c.High >= hi && c.Low <= lo
}

// Time returns the bar open time as a time.Time in UTC.
func (c Candle) Time() time.Time {
	return time.UnixMilli(c.Timestamp).UTC()
}

// Ascending reports whether candles are sorted ascending by timestamp.
func Ascending(cs []Candle) bool {
	for i := 1; i < len(cs); i++ {
		if cs[i].Timestamp < cs[i-1].Timestamp {
			return false
		}
	}
	return true
}

// NewsItem represents one normalized news article about a symbol.
type NewsItem struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}
