package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fwojciec/docbot"
	"github.com/fwojciec/docbot/tfidf"
)

// detectionLanguages are the languages considered by --language auto.
var detectionLanguages = []string{"en", "de", "fr", "es", "it", "pt", "nl"}

// languageSampleLength bounds the corpus text, in bytes, handed to language
// detection.
const languageSampleLength = 4000

// BuildIndex loads the corpus and indexes it according to the flags.
// The detector is only consulted for --language auto.
func (f IndexFlags) BuildIndex(ctx context.Context, loader docbot.PageLoader, detector docbot.LanguageDetector, logger *slog.Logger) (*tfidf.Index, error) {
	if f.StopWords != "" || !strings.EqualFold(f.Language, "auto") {
		opts, err := f.options(f.Language, logger)
		if err != nil {
			return nil, err
		}
		return tfidf.Load(ctx, loader, f.ChunkSize, opts)
	}

	pages, err := loader.LoadPages(ctx)
	if err != nil {
		return nil, err
	}
	lang, ok := detector.DetectLanguage(sampleText(pages))
	if !ok {
		logger.Warn("corpus language not detected, using no stop words")
		lang = "none"
	} else {
		logger.Info("corpus language detected", "language", lang)
	}

	opts, err := f.options(lang, logger)
	if err != nil {
		return nil, err
	}
	return tfidf.Build(docbot.SegmentPages(pages, f.ChunkSize), opts), nil
}

// options resolves stop words for lang, or from the stop-word file if set.
func (f IndexFlags) options(lang string, logger *slog.Logger) (tfidf.Options, error) {
	opts := tfidf.Options{MaxDF: f.MaxDF}

	if f.StopWords != "" {
		file, err := os.Open(f.StopWords)
		if err != nil {
			return opts, fmt.Errorf("open stop words: %w", err)
		}
		defer file.Close()

		words, err := tfidf.ParseStopWords(file)
		if err != nil {
			return opts, err
		}
		opts.StopWords = words
		return opts, nil
	}

	if lang == "" || strings.EqualFold(lang, "none") {
		return opts, nil
	}
	words, ok := tfidf.StopWords(lang)
	if !ok {
		logger.Warn("no built-in stop words for language", "language", lang)
	}
	opts.StopWords = words
	return opts, nil
}

// sampleText joins page contents until the sample is long enough.
func sampleText(pages []*docbot.Page) string {
	var sb strings.Builder
	for _, p := range pages {
		if sb.Len() >= languageSampleLength {
			break
		}
		sb.WriteString(p.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
