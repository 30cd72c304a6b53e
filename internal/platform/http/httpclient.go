// Package http provides the shared outbound HTTP client used by all
// market-data provider adapters.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client configured for external API calls.
//
// Settings:
//   - Proxy: honored from environment variables (HTTP_PROXY etc.)
//   - Dialer.Timeout: TCP connect timeout, shorter than the default
//   - Dialer.KeepAlive: how long reusable TCP connections are kept
//   - MaxIdleConns: idle pool size (100, avoids exhaustion under load)
//   - IdleConnTimeout: how long idle connections are kept
//   - TLSHandshakeTimeout: maximum time for the HTTPS handshake
//   - Client.Timeout: whole-request timeout supplied by the caller
//
// Note: http.DefaultClient has no timeout, so always use this constructor
// for outbound calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
