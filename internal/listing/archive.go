package listing

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/blogmark/internal/fetcher"
	"github.com/jmylchreest/blogmark/internal/logger"
)

// Selector defaults matching stock WordPress themes.
const (
	DefaultLinkSelector = ".entry-title a"
	DefaultNextSelector = ".nav-previous a, a.next"
)

// ArchiveConfig controls the HTML archive walk.
type ArchiveConfig struct {
	Site         string // archive start URL, usually the blog root
	LinkSelector string // CSS selector for post links
	NextSelector string // CSS selector for the next-page link
	URLPattern   string // optional regex a post URL must match
	Limit        int    // stop after this many posts (0 = no limit)
}

// ArchiveSource discovers posts by walking archive pages and following
// the next-page link until it runs out.
type ArchiveSource struct {
	fetch   fetcher.Fetcher
	cfg     ArchiveConfig
	pattern *regexp.Regexp
}

// NewArchiveSource creates an archive source over the given fetcher.
func NewArchiveSource(fetch fetcher.Fetcher, cfg ArchiveConfig) (*ArchiveSource, error) {
	if cfg.Site == "" {
		return nil, fmt.Errorf("archive source requires a site URL")
	}
	if cfg.LinkSelector == "" {
		cfg.LinkSelector = DefaultLinkSelector
	}
	if cfg.NextSelector == "" {
		cfg.NextSelector = DefaultNextSelector
	}

	s := &ArchiveSource{fetch: fetch, cfg: cfg}
	if cfg.URLPattern != "" {
		pattern, err := regexp.Compile(cfg.URLPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid url pattern %q: %w", cfg.URLPattern, err)
		}
		s.pattern = pattern
	}
	return s, nil
}

// Discover walks the archive. Any page fetch failure aborts discovery; a
// first page without post links does too, since that means the selector
// does not fit the theme and silently archiving nothing would hide it.
func (s *ArchiveSource) Discover(ctx context.Context) ([]PostRef, error) {
	var refs []PostRef
	seen := make(map[string]bool)
	visitedPages := make(map[string]bool)

	pageURL := normalizeURL(s.cfg.Site)
	if pageURL == "" {
		return nil, fmt.Errorf("invalid site URL %q", s.cfg.Site)
	}

	for pageNum := 1; pageURL != ""; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if visitedPages[pageURL] {
			logger.Debug("pagination loop detected", "url", pageURL)
			break
		}
		visitedPages[pageURL] = true

		page, err := s.fetch.Fetch(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("listing page %s: %w", pageURL, err)
		}

		links, err := s.postLinks(page.HTML, pageURL)
		if err != nil {
			return nil, fmt.Errorf("parsing listing page %s: %w", pageURL, err)
		}
		if len(links) == 0 && pageNum == 1 {
			return nil, fmt.Errorf("no post links on %s matching %q", pageURL, s.cfg.LinkSelector)
		}

		added := 0
		for _, link := range links {
			normalized := normalizeURL(link)
			if normalized == "" || seen[normalized] {
				continue
			}
			seen[normalized] = true
			refs = append(refs, PostRef{URL: normalized})
			added++
			if s.cfg.Limit > 0 && len(refs) >= s.cfg.Limit {
				logger.Debug("post limit reached", "limit", s.cfg.Limit)
				return refs, nil
			}
		}
		logger.Debug("archive page walked", "url", pageURL, "page", pageNum, "posts", added)

		next, ok := s.nextPage(page.HTML, pageURL)
		if !ok {
			break
		}
		pageURL = normalizeURL(next)
	}

	if len(refs) == 0 {
		return nil, fmt.Errorf("no posts found at %s", s.cfg.Site)
	}
	return refs, nil
}

// postLinks extracts post URLs from one archive page, same-host only,
// in document order.
func (s *ArchiveSource) postLinks(html, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	var links []string
	doc.Find(s.cfg.LinkSelector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}
		if !linkURL.IsAbs() {
			linkURL = base.ResolveReference(linkURL)
		}
		linkURL.Fragment = ""
		full := linkURL.String()

		if !sameHost(full, baseURL) {
			return
		}
		if s.pattern != nil && !s.pattern.MatchString(full) {
			return
		}
		links = append(links, full)
	})

	return links, nil
}

// nextPage finds the next archive page, if any.
func (s *ArchiveSource) nextPage(html, baseURL string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", false
	}

	var nextURL string
	doc.Find(s.cfg.NextSelector).First().Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}
		if !linkURL.IsAbs() {
			linkURL = base.ResolveReference(linkURL)
		}

		// Pagination stays on the site.
		full := linkURL.String()
		if !sameHost(full, baseURL) {
			return
		}
		nextURL = full
	})

	return nextURL, nextURL != ""
}
