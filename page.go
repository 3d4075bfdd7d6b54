package docbot

import "context"

// Page represents a crawled documentation page.
type Page struct {
	URL     string `json:"url" yaml:"url"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"` // Normalized plain text
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageStore persists the pages of a crawl run with atomic semantics.
// Save stages a page; Commit replaces the stored corpus with the staged
// pages; Abort discards them.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}

// PageLoader reads a previously stored corpus.
type PageLoader interface {
	// LoadPages returns all pages in stored order.
	// Returns ENOTFOUND if the corpus source does not exist.
	LoadPages(ctx context.Context) ([]*Page, error)
}
