package mock

import (
	"context"

	"github.com/fwojciec/docbot"
)

var _ docbot.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of docbot.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, topK int) ([]docbot.ScoredResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string, topK int) ([]docbot.ScoredResult, error) {
	return s.SearchFn(ctx, query, topK)
}
