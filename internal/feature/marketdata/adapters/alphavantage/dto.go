package alphavantage

// seriesBar represents one entry of an Alpha Vantage time series object.
// All numeric fields arrive as strings.
type seriesBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}
