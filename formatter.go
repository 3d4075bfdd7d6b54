package docbot

import "strings"

// FormatContext formats search results as context for answer synthesis.
// Uses title if available, falls back to URL.
// Results are separated by blank lines.
func FormatContext(results []ScoredResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		title := r.Title
		if title == "" {
			title = r.URL
		}
		parts = append(parts, "Title: "+title+"\nText: "+r.Text)
	}

	return strings.Join(parts, "\n\n")
}
