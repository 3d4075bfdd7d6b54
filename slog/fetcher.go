// Package slog provides logging decorators for docbot services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docbot"
)

// Ensure LoggingFetcher implements docbot.Fetcher.
var _ docbot.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   docbot.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docbot.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *docbot.Response, err error) {
	defer func(begin time.Time) {
		var status, size int
		if resp != nil {
			status, size = resp.StatusCode, len(resp.Body)
		}
		f.logger.Info("fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	return f.next.Fetch(ctx, url)
}
