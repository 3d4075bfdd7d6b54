package tfidf

import (
	"context"

	"github.com/fwojciec/docbot"
)

// Load reads pages from loader, splits them into segments of at most
// chunkSize characters and builds an index over them.
// A missing corpus source is returned as-is, typically ENOTFOUND.
func Load(ctx context.Context, loader docbot.PageLoader, chunkSize int, opts Options) (*Index, error) {
	pages, err := loader.LoadPages(ctx)
	if err != nil {
		return nil, err
	}
	return Build(docbot.SegmentPages(pages, chunkSize), opts), nil
}
