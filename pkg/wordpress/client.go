// Package wordpress is a minimal read-only client for the WordPress.com
// REST API v1.1, covering just the posts endpoints blogmark archives from.
package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DefaultBaseURL is the public WordPress.com API root.
const DefaultBaseURL = "https://public-api.wordpress.com/rest/v1.1"

// Client talks to the posts endpoints of one site.
type Client struct {
	site       string
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header on API requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for the given site. The site may be a bare
// host ("example.wordpress.com") or a full URL; only the host is used.
func NewClient(site string, opts ...Option) (*Client, error) {
	host := siteHost(site)
	if host == "" {
		return nil, fmt.Errorf("invalid site %q", site)
	}

	c := &Client{
		site:       host,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func siteHost(site string) string {
	if strings.Contains(site, "://") {
		u, err := url.Parse(site)
		if err != nil {
			return ""
		}
		return u.Hostname()
	}
	return strings.Trim(strings.TrimSpace(site), "/")
}

// Post is one published post as the API returns it. Title and Content
// arrive HTML-encoded and as rendered HTML respectively.
type Post struct {
	ID      int64  `json:"ID"`
	SiteID  int64  `json:"site_ID"`
	Date    string `json:"date"`
	Title   string `json:"title"`
	URL     string `json:"URL"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`
}

// DecodedTitle returns the title with HTML entities decoded.
func (p Post) DecodedTitle() string {
	return strings.TrimSpace(html.UnescapeString(p.Title))
}

// Published parses the post date. The zero time is returned when the
// field is empty or unparseable.
func (p Post) Published() time.Time {
	if p.Date == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(p.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// PostList is one page of the posts listing.
type PostList struct {
	Found int    `json:"found"`
	Posts []Post `json:"posts"`
}

// ListPosts fetches one page of posts, newest first, the API's default
// order.
func (c *Client) ListPosts(ctx context.Context, offset, number int) (PostList, error) {
	endpoint := fmt.Sprintf("%s/sites/%s/posts/?number=%d&offset=%d", c.baseURL, url.PathEscape(c.site), number, offset)

	var list PostList
	if err := c.getJSON(ctx, endpoint, &list); err != nil {
		return PostList{}, fmt.Errorf("listing posts for %s: %w", c.site, err)
	}
	return list, nil
}

// GetPost fetches a single post by ID.
func (c *Client) GetPost(ctx context.Context, id int64) (Post, error) {
	endpoint := fmt.Sprintf("%s/sites/%s/posts/%d", c.baseURL, url.PathEscape(c.site), id)

	var post Post
	if err := c.getJSON(ctx, endpoint, &post); err != nil {
		return Post{}, fmt.Errorf("getting post %d from %s: %w", id, c.site, err)
	}
	return post, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
