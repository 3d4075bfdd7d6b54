// Package goquery implements docbot.Parser on top of goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// hiddenElements never contribute visible text.
var hiddenElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
}

// ExtractText returns the human-visible text of the document with every run
// of whitespace, newlines included, collapsed to a single space.
// Script, style and noscript elements are skipped. The document is not
// modified.
func ExtractText(doc *goquery.Document) string {
	var parts []string
	for _, n := range doc.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// collectText appends the text nodes under n in document order.
func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		*parts = append(*parts, n.Data)
		return
	case html.ElementNode:
		if hiddenElements[n.DataAtom] {
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// ExtractTitle returns the trimmed text of the first title element,
// or an empty string if the document has none.
func ExtractTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// ExtractLinks returns the href values of all anchors in document order.
// Values are returned as written; resolution and scoping are left to the
// caller.
func ExtractLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		links = append(links, href)
	})
	return links
}
