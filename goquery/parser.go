package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docbot"
)

// Ensure Parser implements docbot.Parser at compile time.
var _ docbot.Parser = (*Parser)(nil)

// Parser extracts title, visible text and links from HTML pages.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse processes a raw HTML body.
func (p *Parser) Parse(body string) (*docbot.ParseResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, docbot.Errorf(docbot.EINVALID, "failed to parse HTML: %v", err)
	}

	return &docbot.ParseResult{
		Title: ExtractTitle(doc),
		Text:  ExtractText(doc),
		Links: ExtractLinks(doc),
	}, nil
}
