package api

import (
	"net/http"
	"time"
)

// Config holds LOGAN API client configuration.
type Config struct {
	BaseURL    string        // LOGAN control API address, e.g. "http://127.0.0.1:19532"
	Timeout    time.Duration // per-request bound for GET/POST (the event stream is exempt)
	HTTPClient *http.Client  // custom HTTP client (for TLS, proxies, tests)
}

// DefaultConfig returns the client defaults matching a local LOGAN instance.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://127.0.0.1:19532",
		Timeout: 10 * time.Second,
	}
}
