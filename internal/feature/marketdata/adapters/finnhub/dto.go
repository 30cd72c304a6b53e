package finnhub

// candleResponse represents the columnar JSON response from the Finnhub
// /api/v1/stock/candle endpoint. Arrays are index-aligned per bar.
type candleResponse struct {
	Status     string    `json:"s"` // "ok" | "no_data" | error
	Timestamps []int64   `json:"t"` // epoch seconds
	Opens      []float64 `json:"o"`
	Highs      []float64 `json:"h"`
	Lows       []float64 `json:"l"`
	Closes     []float64 `json:"c"`
	Volumes    []float64 `json:"v"`
}
