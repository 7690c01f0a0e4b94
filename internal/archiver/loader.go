package archiver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmylchreest/blogmark/internal/extractor"
	"github.com/jmylchreest/blogmark/internal/fetcher"
	"github.com/jmylchreest/blogmark/internal/listing"
	"github.com/jmylchreest/blogmark/pkg/wordpress"
)

// Post is one post loaded from its source, ready for conversion. HTML
// holds the content region markup only, never the whole page.
type Post struct {
	Title     string
	HTML      string
	Published time.Time
}

// Loader turns a discovered reference into a loaded post.
type Loader interface {
	Load(ctx context.Context, ref listing.PostRef) (Post, error)
}

// HTMLLoader fetches a post page and extracts its content region.
type HTMLLoader struct {
	fetch   fetcher.Fetcher
	extract *extractor.Extractor
}

// NewHTMLLoader pairs a page fetcher with a content extractor.
func NewHTMLLoader(f fetcher.Fetcher, e *extractor.Extractor) *HTMLLoader {
	return &HTMLLoader{fetch: f, extract: e}
}

func (l *HTMLLoader) Load(ctx context.Context, ref listing.PostRef) (Post, error) {
	page, err := l.fetch.Fetch(ctx, ref.URL)
	if err != nil {
		return Post{}, fmt.Errorf("fetching post %s: %w", ref.URL, err)
	}

	content, err := l.extract.Extract(page.HTML, ref.URL)
	if err != nil {
		return Post{}, fmt.Errorf("post %s: %w", ref.URL, err)
	}

	return Post{
		Title:     content.Title,
		HTML:      content.HTML,
		Published: content.Published,
	}, nil
}

// APILoader loads posts through the WordPress.com REST API.
type APILoader struct {
	client *wordpress.Client
}

// NewAPILoader wraps an API client as a post loader.
func NewAPILoader(c *wordpress.Client) *APILoader {
	return &APILoader{client: c}
}

func (l *APILoader) Load(ctx context.Context, ref listing.PostRef) (Post, error) {
	if ref.ID == 0 {
		return Post{}, fmt.Errorf("post %s: %w: reference carries no API post ID",
			ref.URL, extractor.ErrContentMissing)
	}

	post, err := l.client.GetPost(ctx, ref.ID)
	if err != nil {
		return Post{}, fmt.Errorf("fetching post %s: %w", ref.URL, err)
	}

	title := post.DecodedTitle()
	if title == "" {
		return Post{}, fmt.Errorf("post %d: %w", post.ID, extractor.ErrTitleMissing)
	}
	if strings.TrimSpace(post.Content) == "" {
		return Post{}, fmt.Errorf("post %d: %w", post.ID, extractor.ErrContentMissing)
	}

	return Post{
		Title:     title,
		HTML:      post.Content,
		Published: post.Published(),
	}, nil
}
