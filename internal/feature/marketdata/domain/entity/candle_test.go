package entity

import (
	"testing"
	"time"
)

func TestCandle_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		candle   Candle
		expected bool
	}{
		{
			name:     "well formed bar",
			candle:   Candle{Open: 100, High: 110, Low: 95, Close: 105},
			expected: true,
		},
		{
			name:     "flat bar",
			candle:   Candle{Open: 100, High: 100, Low: 100, Close: 100},
			expected: true,
		},
		{
			name:     "high below close",
			candle:   Candle{Open: 100, High: 101, Low: 95, Close: 105},
			expected: false,
		},
		{
			name:     "low above open",
			candle:   Candle{Open: 100, High: 110, Low: 102, Close: 105},
			expected: false,
		},
		{
			name:     "high equals body top",
			candle:   Candle{Open: 100, High: 105, Low: 99, Close: 105},
			expected: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.candle.Valid(); got != tt.expected {
				t.Errorf("Valid() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCandle_Time(t *testing.T) {
	t.Parallel()

	c := Candle{Timestamp: 1700000000000}
	expected := time.UnixMilli(1700000000000).UTC()
	if !c.Time().Equal(expected) {
		t.Errorf("Time() = %v, expected %v", c.Time(), expected)
	}
}

func TestAscending(t *testing.T) {
	t.Parallel()

	asc := []Candle{{Timestamp: 1}, {Timestamp: 2}, {Timestamp: 2}, {Timestamp: 3}}
	if !Ascending(asc) {
		t.Error("expected ascending sequence to pass")
	}

	desc := []Candle{{Timestamp: 3}, {Timestamp: 1}}
	if Ascending(desc) {
		t.Error("expected descending sequence to fail")
	}

	if !Ascending(nil) {
		t.Error("expected empty sequence to pass")
	}
}
