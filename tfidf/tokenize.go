package tfidf

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenLength is the shortest run of word characters counted as a term.
const minTokenLength = 2

// Tokenize lowercases text and splits it into terms. A term is a maximal run
// of letters, digits, combining marks or underscores at least two characters
// long.
func Tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	start := -1
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = appendToken(tokens, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = appendToken(tokens, text[start:])
	}
	return tokens
}

func appendToken(tokens []string, tok string) []string {
	if utf8.RuneCountInString(tok) < minTokenLength {
		return tokens
	}
	return append(tokens, tok)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
