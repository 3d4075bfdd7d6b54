package mock

import "github.com/fwojciec/docbot"

var _ docbot.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of docbot.LanguageDetector.
type LanguageDetector struct {
	DetectLanguageFn func(text string) (string, bool)
}

func (d *LanguageDetector) DetectLanguage(text string) (string, bool) {
	return d.DetectLanguageFn(text)
}
