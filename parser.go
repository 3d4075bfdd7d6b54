package docbot

// ParseResult holds what the crawler needs from one HTML page.
type ParseResult struct {
	// Title is the document title element text, empty if absent.
	Title string

	// Text is the human-visible text with whitespace collapsed.
	Text string

	// Links are the raw href values of the page's anchors, in document order.
	Links []string
}

// Parser parses HTML pages.
type Parser interface {
	// Parse processes a raw HTML body. Malformed markup degrades to
	// whatever text is extractable.
	Parse(body string) (*ParseResult, error)
}
