package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docbot"
	"github.com/fwojciec/docbot/crawl"
	"github.com/fwojciec/docbot/gemini"
	"github.com/fwojciec/docbot/goquery"
	dochttp "github.com/fwojciec/docbot/http"
	"github.com/fwojciec/docbot/lingua"
	docslog "github.com/fwojciec/docbot/slog"
	"github.com/fwojciec/docbot/tfidf"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Optional overrides for end-to-end testing.
	Fetcher          docbot.Fetcher
	TokenCounter     docbot.TokenCounter
	LanguageDetector docbot.LanguageDetector
	Asker            docbot.Asker

	corpus *corpus
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.corpus != nil {
		return m.corpus.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docbot"),
		kong.Description("Crawl documentation sites and answer questions from them."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docbot --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger
	deps.CorpusPath = cli.Corpus

	defer m.Close()

	switch kongCtx.Selected().Name {
	case "crawl":
		if err := m.wireCrawl(deps, cli, logger); err != nil {
			return err
		}
	case "search":
		index, err := m.loadIndex(ctx, cli.Corpus, cli.Search.IndexFlags, logger)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", docbot.ErrorMessage(err))
			return err
		}
		deps.Searcher = docslog.NewLoggingSearcher(index, logger)
	case "ask":
		if err := m.wireAsk(ctx, deps, cli, logger); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) wireCrawl(deps *Dependencies, cli *CLI, logger *slog.Logger) error {
	c, err := openCorpus(cli.Corpus, false)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbot.ErrorMessage(err))
		return fmt.Errorf("failed to open corpus at %q: %w", cli.Corpus, err)
	}
	m.corpus = c
	deps.Store = c.store

	var fetcher docbot.Fetcher = m.Fetcher
	if fetcher == nil {
		fetcher = dochttp.NewFetcher(dochttp.WithTimeout(cli.Crawl.Timeout))
	}
	if cli.Verbose {
		fetcher = docslog.NewLoggingFetcher(fetcher, logger)
	}

	deps.Crawler = &crawl.Crawler{
		Fetcher: fetcher,
		Parser:  goquery.NewParser(),
		Logger:  logger,
	}

	deps.TokenCounter = m.TokenCounter
	if deps.TokenCounter == nil {
		tc, err := gemini.NewTokenCounter(gemini.DefaultModel)
		if err != nil {
			logger.Warn("token counting disabled", "err", err)
		} else {
			deps.TokenCounter = tc
		}
	}
	return nil
}

func (m *Main) wireAsk(ctx context.Context, deps *Dependencies, cli *CLI, logger *slog.Logger) error {
	if m.Asker != nil {
		deps.Asker = m.Asker
		return nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(deps.Stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return fmt.Errorf("GEMINI_API_KEY not set")
	}

	index, err := m.loadIndex(ctx, cli.Corpus, cli.Ask.IndexFlags, logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbot.ErrorMessage(err))
		return err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	asker := gemini.NewAsker(client, docslog.NewLoggingSearcher(index, logger))
	asker.TopK = cli.Ask.K
	asker.Model = cli.Ask.Model
	deps.Asker = asker
	return nil
}

// loadIndex opens the corpus read-only and builds the retrieval index.
func (m *Main) loadIndex(ctx context.Context, path string, flags IndexFlags, logger *slog.Logger) (*tfidf.Index, error) {
	c, err := openCorpus(path, true)
	if err != nil {
		return nil, err
	}
	m.corpus = c

	detector := m.LanguageDetector
	if detector == nil && strings.EqualFold(flags.Language, "auto") {
		d, err := lingua.NewDetector(detectionLanguages...)
		if err != nil {
			return nil, err
		}
		detector = d
	}

	index, err := flags.BuildIndex(ctx, docslog.NewLoggingPageLoader(c.loader, logger), detector, logger)
	if err != nil {
		return nil, err
	}
	if index.Empty() {
		logger.Warn("corpus is empty", "path", path)
	}
	return index, nil
}
