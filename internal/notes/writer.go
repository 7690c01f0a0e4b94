package notes

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmylchreest/blogmark/internal/logger"
)

// DefaultDir matches where users of the tool expect their notes.
const DefaultDir = "downloaded_posts"

// Config controls where and how notes land on disk.
type Config struct {
	Dir        string
	Style      string // filename style, StyleTitle or StyleSlug
	Collision  string // CollisionOverwrite or CollisionSuffix
	SetModTime bool   // set each file's mtime to its post date
	DryRun     bool   // render and name, write nothing
	Render     RenderOptions
}

// Writer writes rendered documents into the output directory.
type Writer struct {
	cfg   Config
	namer *Namer
}

// NewWriter validates the config and creates a writer.
func NewWriter(cfg Config) (*Writer, error) {
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir
	}
	namer, err := NewNamer(cfg.Style, cfg.Collision)
	if err != nil {
		return nil, err
	}
	return &Writer{cfg: cfg, namer: namer}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.cfg.Dir
}

// Prepare creates the output directory. Failure is fatal to a run;
// there is nowhere to put the notes.
func (w *Writer) Prepare() error {
	if w.cfg.DryRun {
		return nil
	}
	if err := os.MkdirAll(w.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", w.cfg.Dir, err)
	}
	return nil
}

// Write renders one document and writes its file, returning the
// filename used and the rendered size.
func (w *Writer) Write(doc Document) (string, int, error) {
	name := w.namer.Filename(doc.Title)

	data, err := Render(doc, w.cfg.Render)
	if err != nil {
		return name, 0, err
	}

	if w.cfg.DryRun {
		logger.Info("dry run", "file", name, "bytes", len(data))
		return name, len(data), nil
	}

	path := filepath.Join(w.cfg.Dir, name)
	//#nosec G306 -- notes are regular documents
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return name, 0, fmt.Errorf("writing %s: %w", path, err)
	}

	if w.cfg.SetModTime && !doc.Published.IsZero() {
		if err := os.Chtimes(path, doc.Published, doc.Published); err != nil {
			logger.Warn("could not set note mtime", "file", name, "error", err)
		}
	}

	return name, len(data), nil
}
