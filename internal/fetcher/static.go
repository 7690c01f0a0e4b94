package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/jmylchreest/blogmark/internal/logger"
)

// StaticFetcher fetches pages with Colly. It is the default: WordPress
// archives and posts are server-rendered on almost every theme.
type StaticFetcher struct {
	config Config
}

// NewStatic creates a static fetcher.
func NewStatic(cfg Config) *StaticFetcher {
	return &StaticFetcher{config: cfg.withDefaults()}
}

// Fetch retrieves one page. A non-2xx answer is reported as ErrStatus.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{URL: targetURL}, err
	}

	logger.Debug("static fetch starting", "url", targetURL)

	page := Page{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	// One collector per request keeps state (cookies, visited set) out of
	// the picture between posts.
	c := colly.NewCollector(
		colly.UserAgent(f.config.UserAgent),
	)
	c.SetRequestTimeout(f.config.Timeout)

	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		page.StatusCode = r.StatusCode
		page.ContentType = r.Headers.Get("Content-Type")
		page.HTML = string(r.Body)
		logger.Debug("static fetch response",
			"status", r.StatusCode,
			"content_type", page.ContentType,
			"body_size", len(r.Body))
	})

	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
			page.StatusCode = status
		}
		if status > 0 {
			fetchErr = fmt.Errorf("%w: %d", ErrStatus, status)
		} else {
			fetchErr = fmt.Errorf("request failed: %w", err)
		}
		logger.Debug("static fetch error", "status", status, "error", err)
	})

	if err := c.Visit(targetURL); err != nil {
		if fetchErr != nil {
			return page, fetchErr
		}
		return page, fmt.Errorf("failed to visit %s: %w", targetURL, err)
	}

	if fetchErr != nil {
		return page, fetchErr
	}

	logger.Debug("static fetch complete", "url", targetURL, "status", page.StatusCode)
	return page, nil
}

// Close releases resources. The static fetcher holds none.
func (f *StaticFetcher) Close() error {
	return nil
}

// Type returns the fetcher type.
func (f *StaticFetcher) Type() string {
	return ModeStatic
}
