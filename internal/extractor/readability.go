package extractor

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
)

// readableContent extracts the main content with readability scoring.
// Useful on heavily customized themes where no stable content selector
// exists; the title still comes from the title selector, so a page the
// scorer misreads is skipped rather than half-archived.
func (e *Extractor) readableContent(pageHTML, pageURL string) (string, error) {
	var base *url.URL
	if pageURL != "" {
		if parsed, err := url.Parse(pageURL); err == nil {
			base = parsed
		}
	}

	parser := readability.NewParser()

	article, err := parser.Parse(strings.NewReader(pageHTML), base)
	if err != nil {
		return "", fmt.Errorf("%w: readability: %v", ErrContentMissing, err)
	}
	if article.Node == nil {
		return "", fmt.Errorf("%w: readability found no article", ErrContentMissing)
	}

	var buf bytes.Buffer
	if err := article.RenderHTML(&buf); err != nil {
		return "", fmt.Errorf("rendering article: %w", err)
	}
	if strings.TrimSpace(buf.String()) == "" {
		return "", fmt.Errorf("%w: readability produced no content", ErrContentMissing)
	}
	return buf.String(), nil
}
