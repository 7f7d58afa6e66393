package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/diffscraper"
	dshttp "github.com/fwojciec/diffscraper/http"
	"github.com/fwojciec/diffscraper/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := dshttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := dshttp.NewFetcher(
			dshttp.WithTimeout(10*time.Millisecond),
			dshttp.WithRetryDelays(nil),
		)
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := dshttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns ENOTFOUND for 404 without retrying", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.NotFound(w, r)
		}))
		defer server.Close()

		fetcher := dshttp.NewFetcher(dshttp.WithRetryDelays([]time.Duration{time.Millisecond}))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL+"/missing")
		assert.Equal(t, diffscraper.ENOTFOUND, diffscraper.ErrorCode(err))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("retries server errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("<p>ok</p>"))
		}))
		defer server.Close()

		fetcher := dshttp.NewFetcher(dshttp.WithRetryDelays([]time.Duration{time.Millisecond}))
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<p>ok</p>", html)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("waits on limiter with request host", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		var host string
		limiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, h string) error {
				host = h
				return nil
			},
		}
		fetcher := dshttp.NewFetcher(dshttp.WithLimiter(limiter))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL+"/pub1")
		require.NoError(t, err)
		assert.Equal(t, server.Listener.Addr().String(), host)
	})

	t.Run("returns EINVALID for malformed URL", func(t *testing.T) {
		t.Parallel()

		fetcher := dshttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://bad host/%zz")
		assert.Equal(t, diffscraper.EINVALID, diffscraper.ErrorCode(err))
	})
}
