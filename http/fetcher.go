// Package http provides an HTTP-based implementation of docbot.Fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docbot"
)

// DefaultFetchTimeout is the default timeout for a single request.
const DefaultFetchTimeout = 8 * time.Second

// DefaultUserAgent identifies the crawler to the sites it visits.
const DefaultUserAgent = "Mozilla/5.0 (compatible; DocBot/1.0)"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 << 20

// Ensure Fetcher implements docbot.Fetcher at compile time.
var _ docbot.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page bodies using plain HTTP GET requests.
// It does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (8s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch requests the URL and returns the response whatever its status code.
// Deciding what counts as success is left to the caller.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*docbot.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	begin := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}

	return &docbot.Response{
		StatusCode: resp.StatusCode,
		Body:       string(body),
		Elapsed:    time.Since(begin),
	}, nil
}
