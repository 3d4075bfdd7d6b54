package crawl

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docbot"
)

// Stats tallies the pages a crawl stored in the corpus.
type Stats struct {
	Pages int
	Bytes int

	// Tokens is only reported when Counted is set.
	Tokens  int
	Counted bool
}

// Add records a stored page and, when known, its token count.
// A negative tokens value means the page was not counted.
func (s *Stats) Add(page *docbot.Page, tokens int) {
	s.Pages++
	s.Bytes += len(page.Content)
	if tokens >= 0 {
		s.Tokens += tokens
		s.Counted = true
	}
}

// String renders the tally as it appears in the crawl summary,
// e.g. "3 pages (1.5 KB, ~2k tokens)".
func (s Stats) String() string {
	size := formatBytes(s.Bytes)
	if s.Counted {
		size += ", " + formatTokens(s.Tokens)
	}
	return fmt.Sprintf("%d pages (%s)", s.Pages, size)
}

// DisplayURL shortens a page URL for a progress line. The scheme is
// dropped and, if the rest is still longer than maxLen, the path tail is
// kept behind a "..." prefix.
func DisplayURL(rawURL string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	s := rawURL
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return "..." + s[len(s)-maxLen+3:]
}

func formatBytes(n int) string {
	const (
		kb = 1024
		mb = kb * 1024
	)
	switch {
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func formatTokens(n int) string {
	if n < 1000 {
		return fmt.Sprintf("~%d tokens", n)
	}
	return fmt.Sprintf("~%dk tokens", (n+500)/1000)
}
