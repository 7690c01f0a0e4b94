// Package progress renders a single-line progress bar on stderr for
// archive runs. The bar is cosmetic: it draws only when stderr is a
// terminal, and quiet mode turns it off entirely.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

const maxLabelRunes = 40

// Bar tracks completion of a fixed number of steps and redraws one
// terminal line as they finish.
type Bar struct {
	out       io.Writer
	bar       progress.Model
	label     lipgloss.Style
	total     int
	done      int
	enabled   bool
	lastWidth int
}

// Option configures a Bar.
type Option func(*Bar)

// WithOutput redirects the bar away from stderr.
func WithOutput(w io.Writer) Option {
	return func(b *Bar) { b.out = w }
}

// WithQuiet disables the bar when quiet is true.
func WithQuiet(quiet bool) Option {
	return func(b *Bar) {
		if quiet {
			b.enabled = false
		}
	}
}

// WithTerminal overrides terminal detection, mostly for tests.
func WithTerminal(on bool) Option {
	return func(b *Bar) { b.enabled = on && b.total > 0 }
}

// New creates a bar for total steps.
func New(total int, opts ...Option) *Bar {
	b := &Bar{
		out:     os.Stderr,
		bar:     progress.New(progress.WithDefaultGradient()),
		label:   lipgloss.NewStyle().Faint(true),
		total:   total,
		enabled: total > 0 && isatty.IsTerminal(os.Stderr.Fd()),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Tick marks one step finished and redraws the bar with the name of
// the item that just completed.
func (b *Bar) Tick(name string) {
	if b.done < b.total {
		b.done++
	}
	b.draw(name)
}

// Done terminates the bar line so later output starts on a fresh one.
func (b *Bar) Done() {
	if !b.enabled {
		return
	}
	fmt.Fprintln(b.out)
}

func (b *Bar) draw(name string) {
	if !b.enabled {
		return
	}

	pct := float64(b.done) / float64(b.total)
	line := fmt.Sprintf("%s %d/%d %s",
		b.bar.ViewAs(pct), b.done, b.total, b.label.Render(truncate(name, maxLabelRunes)))

	// Pad over leftovers from a longer previous line.
	width := lipgloss.Width(line)
	pad := ""
	if width < b.lastWidth {
		pad = strings.Repeat(" ", b.lastWidth-width)
	}
	b.lastWidth = width

	fmt.Fprintf(b.out, "\r%s%s", line, pad)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
