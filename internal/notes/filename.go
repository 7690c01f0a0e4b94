package notes

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-slug"
)

// Filename styles.
const (
	StyleTitle = "title" // readable, the cleaned post title
	StyleSlug  = "slug"  // lowercase-hyphenated
)

// Collision policies for duplicate titles within one run.
const (
	CollisionOverwrite = "overwrite" // later post wins, documented behavior
	CollisionSuffix    = "suffix"    // append a counter: "Title (1).md"
)

// maxNameRunes caps the base name so derived filenames stay inside
// filesystem limits even for essay-length titles.
const maxNameRunes = 120

// CleanTitle derives a filesystem-safe base name from a post title:
// entities decoded, the characters *"\/<>:|? removed, edge spaces and
// dots trimmed, whitespace collapsed. Degenerate titles become
// "untitled".
func CleanTitle(title string) string {
	t := html.UnescapeString(title)
	t = strings.Map(func(r rune) rune {
		switch r {
		case '*', '"', '\\', '/', '<', '>', ':', '|', '?':
			return -1
		}
		return r
	}, t)
	t = strings.Trim(t, " .")
	t = strings.Join(strings.Fields(t), " ")
	if t == "" {
		return "untitled"
	}
	return strings.Trim(truncateRunes(t, maxNameRunes), " .")
}

// slugTitle is the slug-style equivalent of CleanTitle.
func slugTitle(title string) string {
	normalized, err := slug.Normalize(html.UnescapeString(title))
	if err != nil || normalized == "" {
		normalized = strings.ToLower(strings.ReplaceAll(CleanTitle(title), " ", "-"))
	}
	return truncateRunes(normalized, maxNameRunes)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Namer assigns filenames for one run. With the suffix policy it
// remembers assigned names and disambiguates repeats in listing order.
type Namer struct {
	style  string
	suffix bool
	used   map[string]bool
}

// NewNamer creates a namer for the given style and collision policy.
func NewNamer(style, collision string) (*Namer, error) {
	switch style {
	case "", StyleTitle:
		style = StyleTitle
	case StyleSlug:
	default:
		return nil, fmt.Errorf("unknown filename style %q", style)
	}

	var suffix bool
	switch collision {
	case "", CollisionOverwrite:
	case CollisionSuffix:
		suffix = true
	default:
		return nil, fmt.Errorf("unknown collision policy %q", collision)
	}

	return &Namer{
		style:  style,
		suffix: suffix,
		used:   make(map[string]bool),
	}, nil
}

// Filename returns the .md filename for a title.
func (n *Namer) Filename(title string) string {
	base := CleanTitle(title)
	sep := " "
	if n.style == StyleSlug {
		base = slugTitle(title)
		sep = "-"
	}

	name := base + ".md"
	if !n.suffix {
		return name
	}

	for counter := 1; n.used[name]; counter++ {
		if n.style == StyleSlug {
			name = fmt.Sprintf("%s%s%d.md", base, sep, counter)
		} else {
			name = fmt.Sprintf("%s%s(%d).md", base, sep, counter)
		}
	}
	n.used[name] = true
	return name
}
