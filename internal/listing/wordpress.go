package listing

import (
	"context"
	"fmt"

	"github.com/jmylchreest/blogmark/internal/logger"
	"github.com/jmylchreest/blogmark/pkg/wordpress"
)

// DefaultPerPage is the API's maximum page size.
const DefaultPerPage = 100

// APIConfig controls REST API discovery.
type APIConfig struct {
	PerPage int // posts per request, capped at 100 by the API
	Limit   int // stop after this many posts (0 = no limit)
}

// APISource discovers posts through the WordPress.com REST API. Hosted
// blogs often paginate their HTML archive behind infinite scroll, so the
// API is the reliable listing for them.
type APISource struct {
	client *wordpress.Client
	cfg    APIConfig
}

// NewAPISource creates an API source over the given client.
func NewAPISource(client *wordpress.Client, cfg APIConfig) *APISource {
	if cfg.PerPage <= 0 || cfg.PerPage > DefaultPerPage {
		cfg.PerPage = DefaultPerPage
	}
	return &APISource{client: client, cfg: cfg}
}

// Discover pages through the posts endpoint until the reported total is
// reached or a page comes back empty.
func (s *APISource) Discover(ctx context.Context) ([]PostRef, error) {
	var refs []PostRef
	seen := make(map[string]bool)
	offset := 0
	found := -1

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		list, err := s.client.ListPosts(ctx, offset, s.cfg.PerPage)
		if err != nil {
			return nil, err
		}

		if found < 0 {
			found = list.Found
			if found == 0 {
				return nil, fmt.Errorf("no posts found")
			}
			logger.Debug("api listing started", "found", found)
		}

		if len(list.Posts) == 0 {
			break
		}

		for _, p := range list.Posts {
			key := normalizeURL(p.URL)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			refs = append(refs, PostRef{URL: p.URL, ID: p.ID})
			if s.cfg.Limit > 0 && len(refs) >= s.cfg.Limit {
				logger.Debug("post limit reached", "limit", s.cfg.Limit)
				return refs, nil
			}
		}

		offset += len(list.Posts)
		logger.Debug("api listing page walked", "offset", offset, "total", found)
		if offset >= found {
			break
		}
	}

	if len(refs) == 0 {
		return nil, fmt.Errorf("no posts found")
	}
	return refs, nil
}
