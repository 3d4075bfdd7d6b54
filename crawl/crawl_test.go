package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/docbot"
	"github.com/fwojciec/docbot/crawl"
	"github.com/fwojciec/docbot/goquery"
	"github.com/fwojciec/docbot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// filler is long enough to push a page past the minimum content length.
const filler = "This page has plenty of documentation text to make it worth keeping around."

// site is an in-memory website served through a mock fetcher.
type site struct {
	mu      sync.Mutex
	pages   map[string]string
	status  map[string]int
	errs    map[string]error
	fetched []string
}

func newSite() *site {
	return &site{
		pages:  make(map[string]string),
		status: make(map[string]int),
		errs:   make(map[string]error),
	}
}

// page registers an HTML page with the given title, body text and links.
func (s *site) page(url, title, text string, links ...string) {
	var b strings.Builder
	fmt.Fprintf(&b, "<html><head><title>%s</title></head><body><p>%s</p>", title, text)
	for _, l := range links {
		fmt.Fprintf(&b, `<a href="%s">link</a>`, l)
	}
	b.WriteString("</body></html>")
	s.pages[url] = b.String()
}

func (s *site) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*docbot.Response, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.fetched = append(s.fetched, url)

			if err, ok := s.errs[url]; ok {
				return nil, err
			}
			if code, ok := s.status[url]; ok {
				return &docbot.Response{StatusCode: code, Body: "error"}, nil
			}
			body, ok := s.pages[url]
			if !ok {
				return &docbot.Response{StatusCode: http.StatusNotFound, Body: "not found"}, nil
			}
			return &docbot.Response{StatusCode: http.StatusOK, Body: body}, nil
		},
	}
}

func (s *site) fetchedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.fetched...)
}

func pageURLs(pages []*docbot.Page) []string {
	urls := make([]string, len(pages))
	for i, p := range pages {
		urls[i] = p.URL
	}
	return urls
}

func TestCrawler_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("collects pages in breadth-first order", func(t *testing.T) {
		t.Parallel()

		s := newSite()
		s.page("https://docs.example.com/", "Home", filler, "/a", "/b")
		s.page("https://docs.example.com/a", "A", filler, "/a/deep")
		s.page("https://docs.example.com/b", "B", filler)
		s.page("https://docs.example.com/a/deep", "Deep", filler)

		c := &crawl.Crawler{Fetcher: s.fetcher(), Parser: goquery.NewParser()}

		result, err := c.Crawl(context.Background(), []string{"https://docs.example.com/"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://docs.example.com/",
			"https://docs.example.com/a",
			"https://docs.example.com/b",
			"https://docs.example.com/a/deep",
		}, pageURLs(result.Pages))
		assert.Equal(t, "A", result.Pages[1].Title)
		assert.Contains(t, result.Pages[1].Content, filler)
	})

	t.Run("stops at the page ceiling", func(t *testing.T) {
		t.Parallel()

		s := newSite()
		var links []string
		for i := range 20 {
			links = append(links, fmt.Sprintf("/p%d", i))
			s.page(fmt.Sprintf("https://example.com/p%d", i), "P", filler)
		}
		s.page("https://example.com/", "Home", filler, links...)

		c := &crawl.Crawler{Fetcher: s.fetcher(), Parser: goquery.NewParser(), MaxPages: 5}

		result, err := c.Crawl(context.Background(), []string{"https://example.com/"}, nil)

		require.NoError(t, err)
		assert.Len(t, result.Visited, 5)
		assert.Len(t, s.fetchedURLs(), 5)
		assert.Len(t, result.Pages, 5)
	})

	t.Run("defaults to a ceiling of thirty pages", func(t *testing.T) {
		t.Parallel()

		s := newSite()
		var links []string
		for i := range 50 {
			links = append(links, fmt.Sprintf("/p%d", i))
			s.page(fmt.Sprintf("https://example.com/p%d", i), "P", filler)
		}
		s.page("https://example.com/", "Home", filler, links...)

		c := &crawl.Crawler{Fetcher: s.fetcher(), Parser: goquery.NewParser()}

		result, err := c.Crawl(context.Background(), []string{"https://example.com/"}, nil)

		require.NoError(t, err)
		assert.Len(t, result.Visited, crawl.DefaultMaxPages)
	})

	t.Run("never fetches a URL twice", func(t *testing.T) {
		t.Parallel()

		s := newSite()
		s.page("https://example.com/", "Home", filler, "/a", "/b", "/a", "/")
		s.page("https://example.com/a", "A", filler, "/b", "/", "/a#section")
		s.page("https://example.com/b", "B", filler, "/a", "https://example.com/")

		c := &crawl.Crawler{Fetcher: s.fetcher(), Parser: goquery.NewParser()}

		_, err := c.Crawl(context.Background(), []string{"https://example.com/", "https://example.com/"}, nil)

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			"https://example.com/",
			"https://example.com/a",
			"https://example.com/b",
		}, s.fetchedURLs())
	})

	t.Run("stays on the seed host", func(t *testing.T) {
		t.Parallel()

		s := newSite()
		s.page("https://example.com/", "Home", filler,
			"https://other.com/page",
			"https://sub.example.com/page",
			"http://example.com:8080/page",
			"/local",
		)
		s.page("https://example.com/local", "Local", filler)
		s.page("https://other.com/page", "Other", filler)

		c := &crawl.Crawler{Fetcher: s.fetcher(), Parser: goquery.NewParser()}

		result, err := c.Crawl(context.Background(), []string{"https://example.com/"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/", "https://example.com/local"}, s.fetchedURLs())
		for _, p := range result.Pages {
			assert.True(t, strings.HasPrefix(p.URL, "https://example.com/"))
		}
	})

	t.Run("drops seeds on other hosts", func(t *testing.T) {
		t.Parallel()

		s := newSite()
		s.page("https://docs.example.com/", "Home", filler)
		s.page("https://docs.example.com/guide", "Guide", filler)
		s.page("https://other.example.org/", "Other", filler)

		c := &crawl.Crawler{Fetcher: s.fetcher(), Parser: goquery.NewParser()}

		result, err := c.Crawl(context.Background(), []string{
			"https://docs.example.com/",
			"https://other.example.org/",
			" https://docs.example.com/guide ",
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/", "https://docs.example.com/guide"}, pageURLs(result.Pages))
		assert.NotContains(t, s.fetchedURLs(), "https://other.example.org/")
	})

	t.Run("drops mailto links and strips fragments", func(t *testing.T) {
		t.Parallel()

		s := newSite()
		s.page("https://example.com/", "Home", filler, "mailto:team@example.com", "/guide#install", "/guide#usage")
		s.page("https://example.com/guide", "Guide", filler)

		c := &crawl.Crawler{Fetcher: s.fetcher(), Parser: goquery.NewParser()}

		result, err := c.Crawl(context.Background(), []string{"https://example.com/"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/", "https://example.com/guide"}, result.Visited)
	})

	t.Run("resolves relative links against the page URL", func(t *testing.T) {
		t.Parallel()

		s := newSite()
		s.page("https://example.com/docs/intro", "Intro", filler, "setup", "../faq", "  /api  ")
		s.page("https://example.com/docs/setup", "Setup", filler)
		s.page("https://example.com/faq", "FAQ", filler)
		s.page("https://example.com/api", "API", filler)

		c := &crawl.Crawler{Fetcher: s.fetcher(), Parser: goquery.NewParser()}

		result, err := c.Crawl(context.Background(), []string{"https://example.com/docs/intro"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/docs/intro",
			"https://example.com/docs/setup",
			"https://example.com/faq",
			"https://example.com/api",
		}, pageURLs(result.Pages))
	})

	t.Run("unreachable seed yields no pages", func(t *testing.T) {
		t.Parallel()

		s := newSite()
		s.errs["https://down.example.com/"] = errors.New("connection refused")

		c := &crawl.Crawler{Fetcher: s.fetcher(), Parser: goquery.NewParser()}

		result, err := c.Crawl(context.Background(), []string{"https://down.example.com/"}, nil)

		require.NoError(t, err)
		assert.Empty(t, result.Pages)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, []string{"https://down.example.com/"}, result.Visited)
	})

	t.Run("skips non-success responses without following their links", func(t *testing.T) {
		t.Parallel()

		s := newSite()
		s.page("https://example.com/", "Home", filler, "/gone", "/ok")
		s.status["https://example.com/gone"] = http.StatusGone
		s.page("https://example.com/ok", "OK", filler)

		c := &crawl.Crawler{
			Fetcher:     s.fetcher(),
			Parser:      goquery.NewParser(),
			RetryDelays: []time.Duration{0, 0},
		}

		result, err := c.Crawl(context.Background(), []string{"https://example.com/"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/", "https://example.com/ok"}, pageURLs(result.Pages))
		assert.Equal(t, 1, result.Skipped)
		assert.Len(t, s.fetchedURLs(), 3, "non-success responses are not retried")
	})

	t.Run("skips pages with too little text but follows their links", func(t *testing.T) {
		t.Parallel()

		s := newSite()
		s.page("https://example.com/", "Home", "Short.", "/long")
		s.page("https://example.com/long", "Long", filler)

		c := &crawl.Crawler{Fetcher: s.fetcher(), Parser: goquery.NewParser()}

		result, err := c.Crawl(context.Background(), []string{"https://example.com/"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/long"}, pageURLs(result.Pages))
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("falls back to the URL when the title is empty", func(t *testing.T) {
		t.Parallel()

		s := newSite()
		s.page("https://example.com/", "", filler)

		c := &crawl.Crawler{Fetcher: s.fetcher(), Parser: goquery.NewParser()}

		result, err := c.Crawl(context.Background(), []string{"https://example.com/"}, nil)

		require.NoError(t, err)
		require.Len(t, result.Pages, 1)
		assert.Equal(t, "https://example.com/", result.Pages[0].Title)
	})

	t.Run("continues after a parse failure", func(t *testing.T) {
		t.Parallel()

		p := &mock.Parser{
			ParseFn: func(body string) (*docbot.ParseResult, error) {
				if body == "broken" {
					return nil, errors.New("parse failed")
				}
				return &docbot.ParseResult{Title: "T", Text: filler, Links: []string{"/next"}}, nil
			},
		}
		f := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*docbot.Response, error) {
				if url == "https://example.com/broken" {
					return &docbot.Response{StatusCode: http.StatusOK, Body: "broken"}, nil
				}
				return &docbot.Response{StatusCode: http.StatusOK, Body: "fine"}, nil
			},
		}

		c := &crawl.Crawler{Fetcher: f, Parser: p}

		result, err := c.Crawl(context.Background(), []string{"https://example.com/broken", "https://example.com/"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, []string{"https://example.com/", "https://example.com/next"}, pageURLs(result.Pages))
	})

	t.Run("retries transport errors with configured delays", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		attempts := 0
		f := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*docbot.Response, error) {
				mu.Lock()
				defer mu.Unlock()
				attempts++
				if attempts < 3 {
					return nil, errors.New("temporary failure")
				}
				return &docbot.Response{StatusCode: http.StatusOK, Body: "<title>T</title><p>" + filler + "</p>"}, nil
			},
		}

		c := &crawl.Crawler{Fetcher: f, Parser: goquery.NewParser(), RetryDelays: []time.Duration{0, 0}}

		result, err := c.Crawl(context.Background(), []string{"https://example.com/"}, nil)

		require.NoError(t, err)
		assert.Len(t, result.Pages, 1)
		assert.Equal(t, 3, attempts)
	})

	t.Run("parallel crawl matches sequential discovery order", func(t *testing.T) {
		t.Parallel()

		build := func() *site {
			s := newSite()
			s.page("https://example.com/", "Home", filler, "/a", "/b", "/c")
			s.page("https://example.com/a", "A", filler, "/a1", "/a2", "/b")
			s.page("https://example.com/b", "B", filler, "/b1")
			s.page("https://example.com/c", "C", "tiny", "/c1")
			s.page("https://example.com/a1", "A1", filler, "/")
			s.page("https://example.com/a2", "A2", filler)
			s.page("https://example.com/b1", "B1", filler)
			s.page("https://example.com/c1", "C1", filler)
			return s
		}

		seq := &crawl.Crawler{Fetcher: build().fetcher(), Parser: goquery.NewParser(), MaxPages: 7}
		par := &crawl.Crawler{Fetcher: build().fetcher(), Parser: goquery.NewParser(), MaxPages: 7, Concurrency: 4}

		want, err := seq.Crawl(context.Background(), []string{"https://example.com/"}, nil)
		require.NoError(t, err)
		got, err := par.Crawl(context.Background(), []string{"https://example.com/"}, nil)
		require.NoError(t, err)

		assert.Equal(t, want.Visited, got.Visited)
		assert.Equal(t, pageURLs(want.Pages), pageURLs(got.Pages))
		assert.Len(t, got.Visited, 7)
	})

	t.Run("returns collected pages when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s := newSite()
		s.page("https://example.com/", "Home", filler, "/a")
		s.page("https://example.com/a", "A", filler)

		c := &crawl.Crawler{Fetcher: s.fetcher(), Parser: goquery.NewParser()}

		result, err := c.Crawl(ctx, []string{"https://example.com/"}, func(e crawl.ProgressEvent) {
			if e.Type == crawl.ProgressCompleted {
				cancel()
			}
		})

		require.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, result)
		assert.Equal(t, []string{"https://example.com/"}, pageURLs(result.Pages))
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		s := newSite()
		s.page("https://example.com/", "Home", filler, "/short", "/missing", "/down")
		s.page("https://example.com/short", "Short", "tiny")
		s.errs["https://example.com/down"] = errors.New("refused")

		c := &crawl.Crawler{Fetcher: s.fetcher(), Parser: goquery.NewParser()}

		var types []crawl.ProgressType
		_, err := c.Crawl(context.Background(), []string{"https://example.com/"}, func(e crawl.ProgressEvent) {
			types = append(types, e.Type)
		})

		require.NoError(t, err)
		assert.Equal(t, []crawl.ProgressType{
			crawl.ProgressStarted,
			crawl.ProgressCompleted,
			crawl.ProgressSkipped,
			crawl.ProgressSkipped,
			crawl.ProgressFailed,
			crawl.ProgressFinished,
		}, types)
	})

	t.Run("returns EINVALID without seeds", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{Fetcher: newSite().fetcher(), Parser: goquery.NewParser()}

		_, err := c.Crawl(context.Background(), nil, nil)

		assert.Equal(t, docbot.EINVALID, docbot.ErrorCode(err))
	})

	t.Run("returns EINVALID for a seed without host", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{Fetcher: newSite().fetcher(), Parser: goquery.NewParser()}

		_, err := c.Crawl(context.Background(), []string{"not a url"}, nil)

		assert.Equal(t, docbot.EINVALID, docbot.ErrorCode(err))
	})
}
