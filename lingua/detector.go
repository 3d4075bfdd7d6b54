// Package lingua provides language detection backed by lingua-go.
package lingua

import (
	"strings"

	"github.com/fwojciec/docbot"
	"github.com/pemistahl/lingua-go"
)

// Ensure Detector implements docbot.LanguageDetector at compile time.
var _ docbot.LanguageDetector = (*Detector)(nil)

// minimumRelativeDistance makes the detector refuse to guess on text that
// is ambiguous between languages.
const minimumRelativeDistance = 0.1

// Detector detects the language of corpus text.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector creates a Detector restricted to the given ISO 639-1 codes.
// With no codes all supported languages are considered, which is slower
// and uses more memory.
func NewDetector(codes ...string) (*Detector, error) {
	builder := lingua.NewLanguageDetectorBuilder()

	if len(codes) == 0 {
		return &Detector{
			detector: builder.FromAllLanguages().WithMinimumRelativeDistance(minimumRelativeDistance).Build(),
		}, nil
	}

	languages := make([]lingua.Language, 0, len(codes))
	for _, code := range codes {
		lang, ok := languageFromCode(code)
		if !ok {
			return nil, docbot.Errorf(docbot.EINVALID, "unsupported language %q", code)
		}
		languages = append(languages, lang)
	}
	if len(languages) < 2 {
		return nil, docbot.Errorf(docbot.EINVALID, "at least two languages required for detection")
	}

	return &Detector{
		detector: builder.FromLanguages(languages...).WithMinimumRelativeDistance(minimumRelativeDistance).Build(),
	}, nil
}

// DetectLanguage returns the lowercase ISO 639-1 code of the text's language.
func (d *Detector) DetectLanguage(text string) (string, bool) {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}

func languageFromCode(code string) (lingua.Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, lang := range lingua.AllLanguages() {
		if strings.ToLower(lang.IsoCode639_1().String()) == code {
			return lang, true
		}
	}
	return lingua.Unknown, false
}
