package main

import (
	"fmt"

	"github.com/fwojciec/docbot"
	"github.com/fwojciec/docbot/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	deps.Crawler.MaxPages = c.MaxPages
	deps.Crawler.Concurrency = c.Concurrency
	deps.Crawler.RetryDelays = crawl.BackoffDelays(c.Retries)

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling up to %d pages from %s\n", event.Total, c.Seeds[0])
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Visited, event.Total, crawl.DisplayURL(event.URL, 70))
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] skip %s\n", event.Visited, event.Total, crawl.DisplayURL(event.URL, 65))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", event.URL, event.Error)
		case crawl.ProgressFinished:
			// Summary printed after pages are stored
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, c.Seeds, progress)
	if err != nil {
		_ = deps.Store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbot.ErrorMessage(err))
		return err
	}

	var stats crawl.Stats
	for _, page := range result.Pages {
		if err := deps.Store.Save(deps.Ctx, page); err != nil {
			_ = deps.Store.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", docbot.ErrorMessage(err))
			return err
		}
		tokens := -1
		if deps.TokenCounter != nil {
			if n, err := deps.TokenCounter.CountTokens(deps.Ctx, page.Content); err == nil {
				tokens = n
			}
		}
		stats.Add(page, tokens)
	}

	if err := deps.Store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbot.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %s to %s\n", stats, deps.CorpusPath)
	if result.Failed > 0 || result.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "Visited %d URLs, %d skipped, %d failed\n", len(result.Visited), result.Skipped, result.Failed)
	}

	return nil
}
