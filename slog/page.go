package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docbot"
)

// Ensure LoggingPageLoader implements docbot.PageLoader.
var _ docbot.PageLoader = (*LoggingPageLoader)(nil)

// LoggingPageLoader wraps a PageLoader with logging.
type LoggingPageLoader struct {
	next   docbot.PageLoader
	logger *slog.Logger
}

// NewLoggingPageLoader creates a new LoggingPageLoader.
func NewLoggingPageLoader(next docbot.PageLoader, logger *slog.Logger) *LoggingPageLoader {
	return &LoggingPageLoader{next: next, logger: logger}
}

// LoadPages delegates to the wrapped loader and logs the page count.
func (l *LoggingPageLoader) LoadPages(ctx context.Context) (pages []*docbot.Page, err error) {
	defer func(begin time.Time) {
		l.logger.Info("load pages",
			"pages", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	return l.next.LoadPages(ctx)
}
