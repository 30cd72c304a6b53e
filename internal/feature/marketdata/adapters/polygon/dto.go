package polygon

// aggsResponse represents the JSON response from the Polygon aggregates
// endpoint (/v2/aggs/ticker/{ticker}/range/...).
type aggsResponse struct {
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
	ResultsCount int    `json:"resultsCount"`
	Results      []struct {
		Timestamp int64   `json:"t"` // bar start, epoch ms
		Open      float64 `json:"o"`
		High      float64 `json:"h"`
		Low       float64 `json:"l"`
		Close     float64 `json:"c"`
		Volume    float64 `json:"v"`
	} `json:"results"`
}
