package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jmylchreest/blogmark/internal/logger"
)

// DynamicFetcher renders pages with a headless browser. Needed for the
// rare WordPress theme that assembles post bodies client-side.
type DynamicFetcher struct {
	config      Config
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
}

// NewDynamic creates a dynamic fetcher backed by one browser allocator.
// Each Fetch runs in a fresh tab context.
func NewDynamic(cfg Config) (*DynamicFetcher, error) {
	cfg = cfg.withDefaults()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	logger.Debug("dynamic fetcher ready",
		"user_agent", cfg.UserAgent,
		"timeout", cfg.Timeout)

	return &DynamicFetcher{
		config:      cfg,
		allocCtx:    allocCtx,
		cancelAlloc: cancelAlloc,
	}, nil
}

// Fetch renders one page and returns its final DOM.
func (f *DynamicFetcher) Fetch(ctx context.Context, targetURL string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{URL: targetURL}, err
	}

	logger.Debug("dynamic fetch starting", "url", targetURL)

	page := Page{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx)
	defer cancelBrowser()

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, f.config.Timeout)
	defer cancelTimeout()

	// Stop rendering early when the caller's context is cancelled.
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	var html string
	actions := []chromedp.Action{
		chromedp.Navigate(targetURL),
		chromedp.WaitVisible("body"),
	}
	if f.config.Wait > 0 {
		actions = append(actions, chromedp.Sleep(f.config.Wait))
	}
	actions = append(actions, chromedp.OuterHTML("html", &html))

	if err := chromedp.Run(timeoutCtx, actions...); err != nil {
		return page, fmt.Errorf("browser automation failed: %w", err)
	}

	page.HTML = html
	page.StatusCode = 200 // chromedp does not expose the status code
	page.ContentType = "text/html"

	logger.Debug("dynamic fetch complete", "url", targetURL, "html_size", len(html))
	return page, nil
}

// Close shuts the browser allocator down.
func (f *DynamicFetcher) Close() error {
	if f.cancelAlloc != nil {
		f.cancelAlloc()
	}
	return nil
}

// Type returns the fetcher type.
func (f *DynamicFetcher) Type() string {
	return ModeDynamic
}
