package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docbot"
)

// Ensure LoggingSearcher implements docbot.Searcher.
var _ docbot.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next   docbot.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next docbot.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the query and hit count.
func (s *LoggingSearcher) Search(ctx context.Context, query string, topK int) (results []docbot.ScoredResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"query", query,
			"top_k", topK,
			"results", len(results),
			"duration", time.Since(begin),
		}
		if len(results) > 0 {
			attrs = append(attrs, "best", results[0].Score)
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		s.logger.Debug("search", attrs...)
	}(time.Now())

	return s.next.Search(ctx, query, topK)
}
