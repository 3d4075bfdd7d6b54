package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docbot"
	"github.com/fwojciec/docbot/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	CorpusPath   string
	Store        docbot.PageStore
	Crawler      *crawl.Crawler
	TokenCounter docbot.TokenCounter
	Searcher     docbot.Searcher
	Asker        docbot.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Corpus  string `short:"C" default:"corpus.json" env:"DOCBOT_CORPUS" help:"Corpus location (.json, .yaml or .db)"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Crawl  CrawlCmd  `cmd:"" help:"Crawl a documentation site into the corpus"`
	Search SearchCmd `cmd:"" help:"Search the corpus"`
	Ask    AskCmd    `cmd:"" help:"Ask a question about the documentation"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seeds       []string      `arg:"" name:"seed" help:"Seed URLs; the first one fixes the crawled host"`
	MaxPages    int           `short:"n" default:"30" env:"DOCBOT_MAX_PAGES" help:"Maximum number of URLs to visit"`
	Concurrency int           `short:"c" default:"1" env:"DOCBOT_CONCURRENCY" help:"Concurrent fetch limit"`
	Timeout     time.Duration `default:"8s" env:"DOCBOT_TIMEOUT" help:"Per-request timeout"`
	Retries     int           `default:"0" help:"Retries after a transport error"`
}

// IndexFlags configure how the corpus is indexed for retrieval.
type IndexFlags struct {
	ChunkSize int     `default:"800" env:"DOCBOT_CHUNK_SIZE" help:"Maximum segment length in characters"`
	MaxDF     float64 `name:"max-df" default:"0.9" env:"DOCBOT_MAX_DF" help:"Drop terms found in more than this fraction of segments"`
	Language  string  `default:"en" env:"DOCBOT_LANGUAGE" help:"Stop-word language: an ISO 639-1 code, auto or none"`
	StopWords string  `name:"stop-words" env:"DOCBOT_STOP_WORDS" help:"File with one stop word per line, overrides --language"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Search query"`
	K     int    `short:"k" default:"3" help:"Number of results"`

	IndexFlags `embed:""`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the documentation"`
	K        int    `short:"k" default:"3" help:"Number of segments given to the model"`
	Model    string `default:"gemini-2.5-flash" env:"DOCBOT_MODEL" help:"Gemini model"`

	IndexFlags `embed:""`
}
