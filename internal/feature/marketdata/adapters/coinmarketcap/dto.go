package coinmarketcap

// ohlcvHistoricalResponse represents the JSON response from the CMC
// /v2/cryptocurrency/ohlcv/historical endpoint queried by symbol.
type ohlcvHistoricalResponse struct {
	Status struct {
		Timestamp    string `json:"timestamp"`
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message,omitempty"`
	} `json:"status"`
	Data struct {
		Symbol string `json:"symbol"`
		Quotes []struct {
			TimeOpen string              `json:"time_open"`
			Quote    map[string]ohlcvSet `json:"quote"` // keyed by convert currency
		} `json:"quotes"`
	} `json:"data"`
}

type ohlcvSet struct {
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}
