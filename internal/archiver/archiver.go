// Package archiver runs the pipeline: discover posts, load each one,
// convert its content to Markdown, and write the notes. Posts are
// processed sequentially; a failed post is logged and skipped, a failed
// listing ends the run.
package archiver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/blogmark/internal/extractor"
	"github.com/jmylchreest/blogmark/internal/listing"
	"github.com/jmylchreest/blogmark/internal/logger"
	"github.com/jmylchreest/blogmark/internal/markdown"
	"github.com/jmylchreest/blogmark/internal/notes"
	"github.com/jmylchreest/blogmark/internal/progress"
)

// Config wires the stages of a run together.
type Config struct {
	Source listing.Source
	Loader Loader
	Writer *notes.Writer
	Delay  time.Duration // pause between posts, zero for none
	Quiet  bool          // suppresses the progress bar
}

// Summary reports what a run did.
type Summary struct {
	Found    int
	Archived int
	Skipped  int
	Bytes    int64
}

// Archiver executes one archive run.
type Archiver struct {
	cfg Config
}

// New validates the wiring and creates an archiver.
func New(cfg Config) (*Archiver, error) {
	if cfg.Source == nil {
		return nil, errors.New("archiver needs a listing source")
	}
	if cfg.Loader == nil {
		return nil, errors.New("archiver needs a post loader")
	}
	if cfg.Writer == nil {
		return nil, errors.New("archiver needs a note writer")
	}
	return &Archiver{cfg: cfg}, nil
}

// Run discovers all posts and archives them one by one. Skipped posts
// are counted, not returned as errors; the error return is reserved
// for failures that end the run, such as an unreachable listing or an
// un-creatable output directory.
func (a *Archiver) Run(ctx context.Context) (Summary, error) {
	refs, err := a.cfg.Source.Discover(ctx)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Found: len(refs)}
	logger.Info("found posts", "count", len(refs))

	if err := a.cfg.Writer.Prepare(); err != nil {
		return sum, err
	}

	bar := progress.New(len(refs), progress.WithQuiet(a.cfg.Quiet))

	for i, ref := range refs {
		if i > 0 {
			err = a.pause(ctx)
		} else {
			err = ctx.Err()
		}
		if err != nil {
			bar.Done()
			return sum, err
		}

		name, size, err := a.archiveOne(ctx, ref)
		if err != nil {
			if ctx.Err() != nil {
				bar.Done()
				return sum, ctx.Err()
			}
			logger.Warn("skipping post", "url", ref.URL, "error", err)
			sum.Skipped++
			bar.Tick(ref.URL)
			continue
		}

		sum.Archived++
		sum.Bytes += int64(size)
		bar.Tick(name)
	}
	bar.Done()

	logger.Info("archive complete",
		"archived", sum.Archived,
		"skipped", sum.Skipped,
		"written", humanize.Bytes(uint64(sum.Bytes)))
	return sum, nil
}

func (a *Archiver) archiveOne(ctx context.Context, ref listing.PostRef) (string, int, error) {
	post, err := a.cfg.Loader.Load(ctx, ref)
	if err != nil {
		return "", 0, err
	}

	body, err := markdown.Convert(post.HTML, ref.URL)
	if err != nil {
		return "", 0, err
	}
	if body == "" {
		return "", 0, fmt.Errorf("post %s: %w: nothing left after conversion",
			ref.URL, extractor.ErrContentMissing)
	}

	return a.cfg.Writer.Write(notes.Document{
		Title:     post.Title,
		SourceURL: ref.URL,
		Published: post.Published,
		Body:      body,
	})
}

func (a *Archiver) pause(ctx context.Context) error {
	if a.cfg.Delay <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(a.cfg.Delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
