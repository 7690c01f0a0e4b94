// Package fetcher retrieves raw blog pages over HTTP.
//
// Two implementations are provided: a static fetcher for plain HTML themes
// and a dynamic one driving a headless browser for JavaScript-rendered
// themes. Both return the page as delivered; locating the post inside it is
// the extractor's job.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmylchreest/blogmark/internal/version"
)

// Modes accepted by New.
const (
	ModeStatic  = "static"
	ModeDynamic = "dynamic"
)

// ErrStatus indicates the server answered with a non-success status.
// Check with errors.Is(err, fetcher.ErrStatus).
var ErrStatus = errors.New("unexpected HTTP status")

// Fetcher abstracts page retrieval strategies.
type Fetcher interface {
	// Fetch retrieves one page. Redirects are followed.
	Fetch(ctx context.Context, url string) (Page, error)

	// Close releases held resources (browser instances, etc.).
	Close() error

	// Type identifies the implementation ("static", "dynamic").
	Type() string
}

// Page is a fetched page as delivered by the server.
type Page struct {
	URL         string
	HTML        string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// Config controls fetching behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
	Wait      time.Duration // extra settle time after load (dynamic only)
}

// DefaultConfig returns the defaults used when fields are unset.
func DefaultConfig() Config {
	return Config{
		UserAgent: version.UserAgent(),
		Timeout:   30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = def.Timeout
	}
	return c
}

// New returns a fetcher for the given mode.
func New(mode string, cfg Config) (Fetcher, error) {
	switch mode {
	case ModeStatic, "":
		return NewStatic(cfg), nil
	case ModeDynamic:
		return NewDynamic(cfg)
	default:
		return nil, fmt.Errorf("unknown fetch mode %q", mode)
	}
}
