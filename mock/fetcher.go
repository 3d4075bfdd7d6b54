package mock

import (
	"context"

	"github.com/fwojciec/docbot"
)

var _ docbot.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docbot.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*docbot.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*docbot.Response, error) {
	return f.FetchFn(ctx, url)
}
