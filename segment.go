package docbot

import (
	"context"
	"unicode/utf8"
)

// DefaultTopK is the number of results returned when the caller has no
// preference.
const DefaultTopK = 1

// DefaultExcerptLength bounds the text of a ScoredResult, in characters.
const DefaultExcerptLength = 800

// Segment is a bounded piece of a page's text, the atomic unit indexed and
// retrieved. Segment identity is its position in the corpus.
type Segment struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ScoredResult is a segment ranked against a query.
type ScoredResult struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Text  string  `json:"text"`  // Excerpt, at most DefaultExcerptLength characters plus "..."
	Score float64 `json:"score"` // Cosine similarity rounded to 4 decimals
}

// Searcher ranks corpus segments against free-text queries.
type Searcher interface {
	// Search returns at most topK results ordered by descending score.
	// An empty result is not an error: it means nothing relevant was found.
	// Returns EINVALID if topK is less than 1 on a non-empty corpus.
	Search(ctx context.Context, query string, topK int) ([]ScoredResult, error)
}

// Excerpt truncates text to at most maxLen characters, appending "..." when
// anything was cut.
func Excerpt(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLen]) + "..."
}
