// Package domain holds value types shared across the marketdata feature.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Timeframe is a canonical bar-duration identifier. Callers may supply any
// alias from the table below; internally only canonical values circulate.
type Timeframe string

const (
	Timeframe1m  Timeframe = "1m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe1d  Timeframe = "1d"
)

// ErrUnsupportedTimeframe is returned by Normalize for inputs outside the
// alias table. Surfaced to HTTP callers as a 400.
var ErrUnsupportedTimeframe = errors.New("unsupported timeframe")

// aliases maps every accepted input (lowercased, trimmed) to its canonical
// timeframe. The table is many-to-one and contractual: removing an entry
// silently rejects previously-accepted inputs.
var aliases = map[string]Timeframe{
	"1":        Timeframe1m,
	"1m":       Timeframe1m,
	"1min":     Timeframe1m,
	"1minute":  Timeframe1m,
	"5":        Timeframe5m,
	"5m":       Timeframe5m,
	"5min":     Timeframe5m,
	"5minute":  Timeframe5m,
	"15":       Timeframe15m,
	"15m":      Timeframe15m,
	"15min":    Timeframe15m,
	"15minute": Timeframe15m,
	"60":       Timeframe1h,
	"60m":      Timeframe1h,
	"60min":    Timeframe1h,
	"1h":       Timeframe1h,
	"1hr":      Timeframe1h,
	"1hour":    Timeframe1h,
	"hour":     Timeframe1h,
	"hourly":   Timeframe1h,
	"240":      Timeframe4h,
	"240m":     Timeframe4h,
	"4h":       Timeframe4h,
	"4hr":      Timeframe4h,
	"4hour":    Timeframe4h,
	"1d":       Timeframe1d,
	"1day":     Timeframe1d,
	"d":        Timeframe1d,
	"day":      Timeframe1d,
	"daily":    Timeframe1d,
}

// secondsPerBar maps each canonical timeframe to its bar duration in seconds.
var secondsPerBar = map[Timeframe]int{
	Timeframe1m:  60,
	Timeframe5m:  300,
	Timeframe15m: 900,
	Timeframe1h:  3600,
	Timeframe4h:  14400,
	Timeframe1d:  86400,
}

// Normalize maps a free-form timeframe alias to its canonical value.
// Matching is case-insensitive and ignores surrounding whitespace.
func Normalize(input string) (Timeframe, error) {
	key := strings.ToLower(strings.TrimSpace(input))
	if tf, ok := aliases[key]; ok {
		return tf, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedTimeframe, input)
}

// Seconds returns the bar duration in seconds. It is total over the
// canonical set and returns 0 for values that did not come from Normalize.
func (tf Timeframe) Seconds() int {
	return secondsPerBar[tf]
}

// Canonical reports whether tf is one of the canonical timeframes.
func (tf Timeframe) Canonical() bool {
	_, ok := secondsPerBar[tf]
	return ok
}

func (tf Timeframe) String() string {
	return string(tf)
}
