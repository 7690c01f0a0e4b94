// Package notes renders converted posts as Markdown note files: YAML
// front matter, the post body, optional wikilink footers.
package notes

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Document is one converted post, ready to be written.
type Document struct {
	Title     string
	SourceURL string
	Published time.Time // zero when unknown
	Body      string    // Markdown
}

// RenderOptions carry the front matter and footer configuration shared
// by every note of a run.
type RenderOptions struct {
	Tags        []string
	CSSClasses  []string
	FooterLinks []string // each becomes a [[wikilink]] line after the body
}

type frontMatter struct {
	Title      string   `yaml:"title"`
	Date       string   `yaml:"date,omitempty"`
	Source     string   `yaml:"source,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
	CSSClasses []string `yaml:"cssclasses,omitempty"`
}

// Render produces the complete file content for one document. Output is
// deterministic: the same document and options always yield the same
// bytes.
func Render(doc Document, opts RenderOptions) ([]byte, error) {
	fm := frontMatter{
		Title:      doc.Title,
		Source:     doc.SourceURL,
		Tags:       opts.Tags,
		CSSClasses: opts.CSSClasses,
	}
	if !doc.Published.IsZero() {
		fm.Date = doc.Published.Format(time.RFC3339)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("closing front matter encoder: %w", err)
	}

	buf.WriteString("---\n\n")
	buf.WriteString(strings.TrimSpace(doc.Body))
	buf.WriteString("\n")

	for _, link := range opts.FooterLinks {
		fmt.Fprintf(&buf, "\n[[%s]]\n", link)
	}

	return buf.Bytes(), nil
}
