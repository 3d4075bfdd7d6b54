package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docbot"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ docbot.TokenCounter = (*TokenCounter)(nil)

// TokenCounter estimates how many prompt tokens a page's content would
// cost when passed to the answering model. Counting runs offline with the
// model's local tokenizer.
type TokenCounter struct {
	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the local tokenizer for model, or for DefaultModel
// when model is empty.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer for %s: %w", model, err)
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// Model returns the model whose tokenizer is in use.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens returns the token count of text. Whitespace-only text counts
// as zero.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, fmt.Errorf("count tokens with %s: %w", tc.model, err)
	}
	return int(result.TotalTokens), nil
}
