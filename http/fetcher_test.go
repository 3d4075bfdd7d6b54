package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/docbot"
	dochttp "github.com/fwojciec/docbot/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body and status from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := dochttp.NewFetcher()

		resp, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "<html><body>Hello World</body></html>", resp.Body)
		assert.Positive(t, resp.Elapsed)
	})

	t.Run("sends identifying user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		_, err := dochttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, dochttp.DefaultUserAgent, gotUA)
	})

	t.Run("respects custom user agent option", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		_, err := dochttp.NewFetcher(dochttp.WithUserAgent("custom/2.0")).Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "custom/2.0", gotUA)
	})

	t.Run("returns non-200 responses without error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		resp, err := dochttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "404 Not Found", resp.Body)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := dochttp.NewFetcher(dochttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := dochttp.NewFetcher().Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := dochttp.NewFetcher(dochttp.WithTimeout(100 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
	})
}

// Compile-time verification that Fetcher implements docbot.Fetcher
var _ docbot.Fetcher = (*dochttp.Fetcher)(nil)
