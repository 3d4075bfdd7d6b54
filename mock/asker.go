package mock

import (
	"context"

	"github.com/fwojciec/docbot"
)

var _ docbot.Asker = (*Asker)(nil)

// Asker is a mock implementation of docbot.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	return a.AskFn(ctx, question)
}
