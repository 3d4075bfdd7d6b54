package docbot

import "context"

// Asker provides natural language question answering over the corpus.
type Asker interface {
	// Ask answers a natural language question about the documentation.
	// Returns ENOTFOUND if no relevant content was found; in that case no
	// answer synthesis is attempted.
	Ask(ctx context.Context, question string) (string, error)
}
