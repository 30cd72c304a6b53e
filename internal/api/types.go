// Package api defines the JSON request and response types shared by the
// HTTP handlers.
package api

// ErrorResponse is the uniform error envelope returned by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a simple status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse returns a signed JWT after a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// SignupRequest is the body of POST /signup.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CandleResponse is one OHLCV bar on the wire.
type CandleResponse struct {
	Timestamp int64   `json:"ts"` // epoch ms
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    float64 `json:"v"`
}

// OHLCResponse is the body of GET /ohlc.
type OHLCResponse struct {
	Symbol    string           `json:"symbol"`
	Timeframe string           `json:"timeframe"`
	Candles   []CandleResponse `json:"candles"`
}

// NewsItemResponse is one news article on the wire.
type NewsItemResponse struct {
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	URL         string `json:"url"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"published_at"` // RFC 3339
}

// NewsResponse is the body of GET /news.
type NewsResponse struct {
	Symbol string             `json:"symbol"`
	Items  []NewsItemResponse `json:"items"`
}
