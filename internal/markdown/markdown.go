// Package markdown converts a post's content region to Markdown.
package markdown

import (
	"fmt"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// Convert turns content HTML into Markdown. baseURL anchors relative
// links and image sources; pass "" to leave them untouched. The result
// is trimmed, so a region with nothing to say converts to "".
func Convert(contentHTML, baseURL string) (string, error) {
	prepared, err := prepare(contentHTML, baseURL)
	if err != nil {
		return "", fmt.Errorf("preparing HTML: %w", err)
	}

	out, err := md.ConvertString(prepared)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}

	return cleanWhitespace(out), nil
}

// prepare drops elements that have no Markdown rendering and resolves
// relative URLs, so links keep working once the note leaves the site.
func prepare(contentHTML, baseURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, iframe, svg").Remove()

	if baseURL != "" {
		if base, err := url.Parse(baseURL); err == nil {
			resolveAttr(doc, "a", "href", base)
			resolveAttr(doc, "img", "src", base)
		}
	}

	// goquery wrapped the fragment in html/body; hand back the fragment.
	return doc.Find("body").Html()
}

func resolveAttr(doc *goquery.Document, tag, attr string, base *url.URL) {
	doc.Find(tag + "[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
		val, _ := s.Attr(attr)
		if val == "" {
			return
		}
		for _, prefix := range []string{"#", "data:", "mailto:", "javascript:"} {
			if strings.HasPrefix(val, prefix) {
				return
			}
		}

		ref, err := url.Parse(val)
		if err != nil || ref.IsAbs() {
			return
		}
		s.SetAttr(attr, base.ResolveReference(ref).String())
	})
}

// cleanWhitespace collapses runs of blank lines to one and trims the
// ends, keeping re-runs byte-identical regardless of converter noise.
func cleanWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	blank := 0

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blank++
			if blank <= 1 {
				result = append(result, "")
			}
			continue
		}
		blank = 0
		result = append(result, line)
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}
