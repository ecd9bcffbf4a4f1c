package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sumdiff-cli/internal/logger"
	htmlnorm "github.com/custodia-labs/sumdiff-cli/internal/normalisers/html"
)

const (
	// DefaultTimeout bounds one page fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond is the politeness rate for outgoing
	// fetches.
	DefaultRequestsPerSecond = 1.0

	// maxBodyBytes caps how much of a page is read.
	maxBodyBytes = 10 << 20

	// userAgent identifies the fetcher to origin servers.
	userAgent = "Mozilla/5.0 (compatible; sumdiff/1.0)"
)

// Config holds fetcher configuration.
type Config struct {
	// Timeout bounds a single page fetch. Zero uses DefaultTimeout.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests. Zero uses
	// DefaultRequestsPerSecond.
	RequestsPerSecond float64
}

// Ensure Fetcher implements the interface.
var _ driven.ContentFetcher = (*Fetcher)(nil)

// Fetcher retrieves article text from web pages.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher creates a fetcher with the given configuration.
func NewFetcher(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Fetcher{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// Fetch retrieves a page and extracts its article text. The returned
// source keeps the caller's URL as its reference even when the fetch
// itself went through Freedium.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.Source, error) {
	target := TranslateMediumURL(rawURL)
	if target != rawURL {
		logger.Debug("Translated Medium URL to Freedium: %s", target)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, rawURL)
	}
	req.Header.Set("User-Agent", userAgent)

	logger.Debug("Fetching content from: %s", target)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", target, resp.StatusCode)
	}

	decoded, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", target, err)
	}

	body, err := io.ReadAll(io.LimitReader(decoded, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	page := string(body)

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", target, err)
	}

	text := extractText(doc)
	if text == "" {
		// Pages without paragraph structure still get the plain
		// tag-stripping pass.
		text = htmlnorm.Text(page)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyContent, target)
	}

	logger.Debug("Fetched %d characters from %s", len(text), target)

	return &domain.Source{
		Kind:      domain.SourceKindWeb,
		Title:     htmlnorm.Title(page),
		Reference: rawURL,
		Content:   text,
	}, nil
}
