// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves subject pages over HTTP and parses them into
// goquery documents.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/pdiddy/player-scraper/internal/httputil"
	"github.com/pdiddy/player-scraper/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "player-scraper/1.0 (+https://github.com/pdiddy/player-scraper)"
)

// Fetcher downloads pages. One Fetcher is shared by all workers of a batch
// so the rate limit applies across them.
type Fetcher struct {
	client     *http.Client
	limiter    *rate.Limiter
	userAgent  string
	maxRetries int
}

// New returns a Fetcher configured from cfg. A nil client gets a default
// one with cfg.Timeout.
func New(client *http.Client, cfg types.HTTPConfig) *Fetcher {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Fetcher{
		client:     client,
		limiter:    limiter,
		userAgent:  ua,
		maxRetries: cfg.MaxRetries,
	}
}

// Fetch downloads url and parses the body. Any final status other than
// 200 is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := httputil.DoWithRetry(ctx, f.client, req, f.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	return doc, nil
}
