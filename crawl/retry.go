package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docbot"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (*docbot.Response, error)

// BackoffDelays returns n exponentially growing retry delays starting at
// one second: 1s, 2s, 4s, ...
func BackoffDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := make([]time.Duration, n)
	for i := range delays {
		delays[i] = time.Second << i
	}
	return delays
}

// FetchWithRetryDelays fetches a URL, retrying transport errors after each
// of the given delays. A response of any status code counts as an answer and
// is never retried. With no delays the URL is fetched exactly once.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (*docbot.Response, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := fetch(ctx, url)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			logger.Debug("retry", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
