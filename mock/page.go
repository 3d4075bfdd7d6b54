package mock

import (
	"context"

	"github.com/fwojciec/docbot"
)

var (
	_ docbot.PageStore  = (*PageStore)(nil)
	_ docbot.PageLoader = (*PageLoader)(nil)
)

// PageStore is a mock implementation of docbot.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *docbot.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *docbot.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}

// PageLoader is a mock implementation of docbot.PageLoader.
type PageLoader struct {
	LoadPagesFn func(ctx context.Context) ([]*docbot.Page, error)
}

func (l *PageLoader) LoadPages(ctx context.Context) ([]*docbot.Page, error) {
	return l.LoadPagesFn(ctx)
}
