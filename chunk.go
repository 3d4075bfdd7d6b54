package docbot

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the maximum segment length in characters.
const DefaultChunkSize = 800

// paragraphSeparator joins paragraphs inside a chunk.
const paragraphSeparator = "\n\n"

// ChunkText splits text into paragraph-aligned chunks of at most maxLen
// characters. Paragraphs are the trimmed, non-empty lines of text. They are
// accumulated greedily, joined by a blank line, while the joined chunk still
// fits in maxLen. A paragraph longer than maxLen is never split and becomes a
// chunk of its own. The blank line joining two paragraphs counts toward
// maxLen, so boundaries can fall earlier than a sum of paragraph lengths
// alone would place them. A non-positive maxLen means DefaultChunkSize.
func ChunkText(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultChunkSize
	}

	var chunks []string
	var cur string
	var curLen int
	sepLen := utf8.RuneCountInString(paragraphSeparator)

	for _, line := range strings.Split(text, "\n") {
		p := strings.TrimSpace(line)
		if p == "" {
			continue
		}
		pLen := utf8.RuneCountInString(p)

		if cur == "" {
			cur, curLen = p, pLen
			continue
		}

		if curLen+sepLen+pLen <= maxLen {
			cur += paragraphSeparator + p
			curLen += sepLen + pLen
			continue
		}

		chunks = append(chunks, cur)
		cur, curLen = p, pLen
	}

	if cur != "" {
		chunks = append(chunks, cur)
	}
	return chunks
}

// SegmentPages chunks every page and returns the resulting corpus in page
// order. Each segment carries the URL and title of its page.
func SegmentPages(pages []*Page, maxLen int) []Segment {
	var segments []Segment
	for _, page := range pages {
		for _, chunk := range ChunkText(page.Content, maxLen) {
			segments = append(segments, Segment{
				URL:   page.URL,
				Title: page.Title,
				Text:  chunk,
			})
		}
	}
	return segments
}
