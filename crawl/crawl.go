// Package crawl provides breadth-first corpus crawling.
// It coordinates fetching, parsing, link discovery and page collection,
// staying on the host of the first seed URL.
package crawl

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/docbot"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxPages is the crawl ceiling used when Crawler.MaxPages is unset.
const DefaultMaxPages = 30

// DefaultMinContentLength is the text length a page must exceed to be kept.
const DefaultMinContentLength = 50

// Crawler walks a documentation site breadth-first from a set of seeds.
type Crawler struct {
	Fetcher docbot.Fetcher
	Parser  docbot.Parser

	// MaxPages caps the number of URLs visited. Defaults to DefaultMaxPages.
	MaxPages int

	// MinContentLength is the number of characters a page's text must
	// exceed to be recorded. Defaults to DefaultMinContentLength.
	MinContentLength int

	// Concurrency is the number of URLs fetched in parallel per batch.
	// Values below 2 crawl sequentially.
	Concurrency int

	// RetryDelays are waited between attempts after a transport error.
	// Nil means a single attempt.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// Result holds the outcome of a crawl operation.
type Result struct {
	// Pages are the recorded pages in discovery order.
	Pages []*docbot.Page

	// Visited lists every visited URL in visit order.
	Visited []string

	Failed  int
	Skipped int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type    ProgressType
	Visited int
	Total   int
	URL     string
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// fetchResult holds the outcome of fetching and parsing a single URL.
type fetchResult struct {
	url    string
	resp   *docbot.Response
	parsed *docbot.ParseResult
	err    error
}

// Crawl visits pages reachable from seeds on the first seed's host and
// returns the pages with enough text, in breadth-first discovery order.
// Seeds on any other host are dropped.
// Per-URL failures are logged and skipped. If ctx is canceled the pages
// collected so far are returned along with the context error.
func (c *Crawler) Crawl(ctx context.Context, seeds []string, progress ProgressFunc) (*Result, error) {
	if len(seeds) == 0 {
		return nil, docbot.Errorf(docbot.EINVALID, "at least one seed URL required")
	}
	first, err := url.Parse(strings.TrimSpace(seeds[0]))
	if err != nil || first.Host == "" {
		return nil, docbot.Errorf(docbot.EINVALID, "invalid seed URL %q", seeds[0])
	}
	host := first.Host

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	concurrency := max(c.Concurrency, 1)
	logger := c.logger()

	frontier := NewFrontier()
	for _, seed := range seeds {
		seed = strings.TrimSpace(seed)
		if u, err := url.Parse(seed); err != nil || u.Host != host {
			logger.Warn("seed dropped", "url", seed, "reason", "off host", "host", host)
			continue
		}
		frontier.Push(seed)
	}

	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	progress(ProgressEvent{Type: ProgressStarted, Total: maxPages})

	result := &Result{}
	visited := make(map[string]struct{})

	for frontier.Len() > 0 && len(visited) < maxPages {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		batch := make([]string, 0, concurrency)
		for len(batch) < concurrency && len(visited) < maxPages {
			u, ok := frontier.Pop()
			if !ok {
				break
			}
			if _, ok := visited[u]; ok {
				continue
			}
			visited[u] = struct{}{}
			result.Visited = append(result.Visited, u)
			batch = append(batch, u)
		}

		for _, r := range c.fetchBatch(ctx, batch) {
			event := ProgressEvent{Visited: len(result.Visited), Total: maxPages, URL: r.url}

			if r.err != nil {
				if err := ctx.Err(); err != nil {
					return result, err
				}
				logger.Warn("crawl failed", "url", r.url, "err", r.err)
				result.Failed++
				event.Type = ProgressFailed
				event.Error = r.err
				progress(event)
				continue
			}

			if r.resp.StatusCode != http.StatusOK {
				logger.Debug("crawl skipped", "url", r.url, "status", r.resp.StatusCode)
				result.Skipped++
				event.Type = ProgressSkipped
				progress(event)
				continue
			}

			if page := c.page(r); page != nil {
				result.Pages = append(result.Pages, page)
				event.Type = ProgressCompleted
			} else {
				logger.Debug("crawl skipped", "url", r.url, "reason", "short content")
				result.Skipped++
				event.Type = ProgressSkipped
			}
			progress(event)

			base, err := url.Parse(r.url)
			if err != nil {
				continue
			}
			for _, href := range r.parsed.Links {
				if target, ok := resolveLink(base, href, host); ok {
					if _, done := visited[target]; !done {
						frontier.Push(target)
					}
				}
			}
		}
	}

	progress(ProgressEvent{Type: ProgressFinished, Visited: len(result.Visited), Total: maxPages})

	return result, nil
}

// fetchBatch fetches and parses urls, in parallel when more than one is
// given. Results are returned in the order of urls.
func (c *Crawler) fetchBatch(ctx context.Context, urls []string) []fetchResult {
	results := make([]fetchResult, len(urls))
	if len(urls) == 1 {
		results[0] = c.fetch(ctx, urls[0])
		return results
	}

	var g errgroup.Group
	for i, u := range urls {
		g.Go(func() error {
			results[i] = c.fetch(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// fetch retrieves a single URL and parses successful responses.
func (c *Crawler) fetch(ctx context.Context, u string) fetchResult {
	result := fetchResult{url: u}

	resp, err := FetchWithRetryDelays(ctx, u, c.Fetcher.Fetch, c.logger(), c.RetryDelays)
	if err != nil {
		result.err = err
		return result
	}
	result.resp = resp
	if resp.StatusCode != http.StatusOK {
		return result
	}

	parsed, err := c.Parser.Parse(resp.Body)
	if err != nil {
		result.err = err
		return result
	}
	result.parsed = parsed

	return result
}

// page builds a Page from a parsed response, or returns nil if its text is
// too short to be worth indexing.
func (c *Crawler) page(r fetchResult) *docbot.Page {
	minLen := c.MinContentLength
	if minLen <= 0 {
		minLen = DefaultMinContentLength
	}
	if utf8.RuneCountInString(r.parsed.Text) <= minLen {
		return nil
	}

	title := r.parsed.Title
	if title == "" {
		title = r.url
	}

	return &docbot.Page{
		URL:     r.url,
		Title:   title,
		Content: r.parsed.Text,
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// resolveLink resolves href against base and reports whether the result
// stays on host. The returned URL has its fragment removed.
func resolveLink(base *url.URL, href, host string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	target := base.ResolveReference(ref)
	if target.Scheme == "mailto" || target.Host != host {
		return "", false
	}
	target.Fragment = ""
	target.RawFragment = ""

	return target.String(), true
}
