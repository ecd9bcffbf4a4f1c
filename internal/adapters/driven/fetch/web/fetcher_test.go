package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
)

const articlePage = `<html>
<head><title>A Readable Article</title></head>
<body>
	<nav><li>Home</li><li>About</li></nav>
	<article>
		<h1>A Readable Article</h1>
		<p>First paragraph of the body.</p>
		<p>Second paragraph of the body.</p>
	</article>
	<footer><p>Legal footer</p></footer>
</body></html>`

func TestNewFetcher_Defaults(t *testing.T) {
	f := NewFetcher(Config{})

	require.NotNil(t, f)
	assert.Equal(t, DefaultTimeout, f.client.Timeout)
}

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articlePage))
	}))
	defer server.Close()

	f := NewFetcher(Config{RequestsPerSecond: 1000})
	source, err := f.Fetch(context.Background(), server.URL+"/article")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceKindWeb, source.Kind)
	assert.Equal(t, "A Readable Article", source.Title)
	assert.Equal(t, server.URL+"/article", source.Reference)
	assert.Contains(t, source.Content, "First paragraph of the body.")
	assert.Contains(t, source.Content, "Second paragraph of the body.")
	assert.NotContains(t, source.Content, "Legal footer")
	assert.NotContains(t, source.Content, "Home")
}

func TestFetcher_Fetch_SetsUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(articlePage))
	}))
	defer server.Close()

	f := NewFetcher(Config{RequestsPerSecond: 1000})
	_, err := f.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, userAgent, gotAgent)
}

func TestFetcher_Fetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(Config{RequestsPerSecond: 1000})
	_, err := f.Fetch(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetcher_Fetch_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body></body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(Config{RequestsPerSecond: 1000})
	_, err := f.Fetch(context.Background(), server.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

// Pages without paragraph markup fall back to the tag-stripping pass.
func TestFetcher_Fetch_PlainTextFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><div>bare div text only</div></body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(Config{RequestsPerSecond: 1000})
	source, err := f.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Contains(t, source.Content, "bare div text only")
}

func TestFetcher_Fetch_DecodesLegacyCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<html><body><article><p>caf\xe9 notes</p></article></body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(Config{RequestsPerSecond: 1000})
	source, err := f.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Contains(t, source.Content, "café notes")
}

func TestFetcher_Fetch_InvalidURL(t *testing.T) {
	f := NewFetcher(Config{RequestsPerSecond: 1000})

	_, err := f.Fetch(context.Background(), "://not-a-url")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFetcher_Fetch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		_, _ = w.Write([]byte(articlePage))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(Config{RequestsPerSecond: 1000})
	_, err := f.Fetch(ctx, server.URL)

	assert.Error(t, err)
}
