package docbot

// LanguageDetector guesses the natural language of a text.
type LanguageDetector interface {
	// DetectLanguage returns the lowercase ISO 639-1 code of the text's
	// language. The bool result is false if the language cannot be
	// determined reliably.
	DetectLanguage(text string) (string, bool)
}
