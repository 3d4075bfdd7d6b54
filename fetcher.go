package docbot

import (
	"context"
	"time"
)

// Response is the outcome of a single HTTP fetch.
type Response struct {
	StatusCode int
	Body       string
	Elapsed    time.Duration
}

// Fetcher retrieves raw page bodies.
type Fetcher interface {
	// Fetch requests the URL and returns the response for any status code.
	// Transport failures and timeouts are returned as errors.
	// The context controls cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)
}
