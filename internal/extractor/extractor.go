// Package extractor locates the post inside a fetched page: its title,
// its content region, and (when the theme exposes one) its publish date.
//
// Extraction is strict. When the configured selectors do not match, the
// page is reported as structurally unknown rather than guessed at; the
// archiver skips it and says so.
package extractor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// Extraction modes accepted by New.
const (
	ModeSelector    = "selector"
	ModeReadability = "readability"
)

// Selector defaults matching stock WordPress themes.
const (
	DefaultContentSelector = ".entry-content"
	DefaultTitleSelector   = ".entry-title"
)

// Sentinel errors for structural mismatches. Check with errors.Is.
var (
	// ErrContentMissing indicates the content region selector matched
	// nothing, or matched an empty element.
	ErrContentMissing = errors.New("content region not found")

	// ErrTitleMissing indicates the title selector matched nothing.
	ErrTitleMissing = errors.New("post title not found")
)

// Config controls extraction.
type Config struct {
	Mode            string // ModeSelector (default) or ModeReadability
	ContentSelector string
	TitleSelector   string
}

// Content is a post as located inside a page.
type Content struct {
	Title     string
	HTML      string    // the content region's inner HTML
	Published time.Time // zero when the page does not say
}

// Extractor extracts posts from pages per its configuration.
type Extractor struct {
	cfg Config
}

// New creates an extractor.
func New(cfg Config) (*Extractor, error) {
	switch cfg.Mode {
	case "", ModeSelector:
		cfg.Mode = ModeSelector
	case ModeReadability:
	default:
		return nil, fmt.Errorf("unknown extract mode %q", cfg.Mode)
	}
	if cfg.ContentSelector == "" {
		cfg.ContentSelector = DefaultContentSelector
	}
	if cfg.TitleSelector == "" {
		cfg.TitleSelector = DefaultTitleSelector
	}
	return &Extractor{cfg: cfg}, nil
}

// Extract locates the post in one page. pageURL resolves relative URLs
// in readability mode.
func (e *Extractor) Extract(pageHTML, pageURL string) (Content, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return Content{}, fmt.Errorf("parsing page: %w", err)
	}

	title := strings.TrimSpace(doc.Find(e.cfg.TitleSelector).First().Text())
	if title == "" {
		return Content{}, fmt.Errorf("%w: selector %q matched nothing", ErrTitleMissing, e.cfg.TitleSelector)
	}

	var contentHTML string
	switch e.cfg.Mode {
	case ModeReadability:
		contentHTML, err = e.readableContent(pageHTML, pageURL)
	default:
		contentHTML, err = e.selectedContent(doc)
	}
	if err != nil {
		return Content{}, err
	}

	return Content{
		Title:     title,
		HTML:      contentHTML,
		Published: findPublished(doc),
	}, nil
}

// selectedContent returns the inner HTML of the first match of the
// content selector.
func (e *Extractor) selectedContent(doc *goquery.Document) (string, error) {
	sel := doc.Find(e.cfg.ContentSelector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: selector %q matched nothing", ErrContentMissing, e.cfg.ContentSelector)
	}

	inner, err := sel.Html()
	if err != nil {
		return "", fmt.Errorf("rendering content region: %w", err)
	}
	if strings.TrimSpace(inner) == "" {
		return "", fmt.Errorf("%w: selector %q matched an empty element", ErrContentMissing, e.cfg.ContentSelector)
	}
	return inner, nil
}

// findPublished pulls the publish date out of the usual places. Themes
// that expose neither get the zero time; that is not an error.
func findPublished(doc *goquery.Document) time.Time {
	if meta, ok := doc.Find(`meta[property="article:published_time"]`).First().Attr("content"); ok {
		if t, err := dateparse.ParseAny(meta); err == nil {
			return t
		}
	}

	if dt, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		if t, err := dateparse.ParseAny(dt); err == nil {
			return t
		}
	}

	return time.Time{}
}
