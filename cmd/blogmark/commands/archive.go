package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/blogmark/internal/archiver"
	"github.com/jmylchreest/blogmark/internal/config"
	"github.com/jmylchreest/blogmark/internal/extractor"
	"github.com/jmylchreest/blogmark/internal/fetcher"
	"github.com/jmylchreest/blogmark/internal/listing"
	"github.com/jmylchreest/blogmark/internal/logger"
	"github.com/jmylchreest/blogmark/internal/notes"
	"github.com/jmylchreest/blogmark/internal/version"
	"github.com/jmylchreest/blogmark/pkg/wordpress"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Download every post of a blog as Markdown notes",
	Long: `Archive discovers all posts of a blog, downloads each one, converts
its content to Markdown, and writes one note per post into the output
directory.

A post that cannot be fetched or whose page does not carry the
expected title and content containers is logged and skipped; the run
continues and still exits 0. Re-running against an unchanged blog
reproduces the same files byte for byte.

Examples:
  # Everything with defaults into ./downloaded_posts
  blogmark archive --site example.wordpress.com

  # Obsidian-flavoured notes with tags and a footer backlink
  blogmark archive --site example.wordpress.com \
      --tag islam --tag christianity --cssclass wide-page \
      --footer-link "Sam Shamoun" --set-mtime

  # Walk archive pages of a self-hosted blog behind JavaScript
  blogmark archive --site "https://blog.example.org" \
      --source archive --fetch-mode dynamic --delay 500ms`,
	RunE: runArchive,
}

var defaults = config.Default()

func init() {
	rootCmd.AddCommand(archiveCmd)

	flags := archiveCmd.Flags()

	// Where the posts come from
	flags.StringP("site", "s", "", "blog URL (required)")
	flags.String("source", defaults.Source, "post discovery: auto, archive, api")
	flags.String("fetch-mode", defaults.FetchMode, "page fetching: static, dynamic")
	flags.Duration("timeout", defaults.Timeout, "request timeout")
	flags.Duration("delay", 0, "pause between posts")
	flags.Int("limit", 0, "stop after this many posts (0=all)")
	flags.Int("per-page", defaults.PerPage, "posts per API listing request")
	flags.String("user-agent", "", "override the User-Agent header")

	// Archive page walking
	flags.String("link-selector", defaults.LinkSelector, "CSS selector for post links on archive pages")
	flags.String("next-selector", defaults.NextSelector, "CSS selector for the older-posts link")
	flags.String("url-pattern", "", "regex that discovered post URLs must match")

	// Content extraction
	flags.String("extract-mode", defaults.ExtractMode, "content locating: selector, readability")
	flags.String("content-selector", defaults.ContentSelector, "CSS selector for the post content region")
	flags.String("title-selector", defaults.TitleSelector, "CSS selector for the post title")

	// Notes
	flags.StringP("output", "o", defaults.Output, "output directory")
	flags.String("filename-style", defaults.FilenameStyle, "note filenames: title, slug")
	flags.String("collision", defaults.Collision, "duplicate titles: overwrite, suffix")
	flags.StringSlice("tag", nil, "front matter tag (can be repeated)")
	flags.StringSlice("cssclass", nil, "front matter cssclass (can be repeated)")
	flags.StringSlice("footer-link", nil, "append a [[wikilink]] footer (can be repeated)")
	flags.Bool("set-mtime", false, "set each note's mtime to its post date")
	flags.Bool("dry-run", false, "discover and convert but write nothing")

	// Bind to viper
	_ = viper.BindPFlag("site", flags.Lookup("site"))
	_ = viper.BindPFlag("source", flags.Lookup("source"))
	_ = viper.BindPFlag("fetch_mode", flags.Lookup("fetch-mode"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("delay", flags.Lookup("delay"))
	_ = viper.BindPFlag("limit", flags.Lookup("limit"))
	_ = viper.BindPFlag("per_page", flags.Lookup("per-page"))
	_ = viper.BindPFlag("user_agent", flags.Lookup("user-agent"))
	_ = viper.BindPFlag("link_selector", flags.Lookup("link-selector"))
	_ = viper.BindPFlag("next_selector", flags.Lookup("next-selector"))
	_ = viper.BindPFlag("url_pattern", flags.Lookup("url-pattern"))
	_ = viper.BindPFlag("extract_mode", flags.Lookup("extract-mode"))
	_ = viper.BindPFlag("content_selector", flags.Lookup("content-selector"))
	_ = viper.BindPFlag("title_selector", flags.Lookup("title-selector"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("filename_style", flags.Lookup("filename-style"))
	_ = viper.BindPFlag("collision", flags.Lookup("collision"))
	_ = viper.BindPFlag("tags", flags.Lookup("tag"))
	_ = viper.BindPFlag("cssclasses", flags.Lookup("cssclass"))
	_ = viper.BindPFlag("footer_links", flags.Lookup("footer-link"))
	_ = viper.BindPFlag("set_mtime", flags.Lookup("set-mtime"))
	_ = viper.BindPFlag("dry_run", flags.Lookup("dry-run"))
}

func runArchive(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetString("log_format") == "json",
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Error("failed to decode configuration", "error", err)
		return err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}
	logger.Debug("configuration loaded", "site", cfg.Site, "source", cfg.Source, "output", cfg.Output)

	f, err := fetcher.New(cfg.FetchMode, fetcher.Config{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		logger.Error("failed to create fetcher", "error", err)
		return err
	}
	defer func() { _ = f.Close() }()

	source := listing.Resolve(cfg.Source, cfg.Site)
	logger.Debug("post source resolved", "source", source, "fetcher", f.Type())

	var (
		src    listing.Source
		loader archiver.Loader
	)
	if source == listing.ModeAPI {
		ua := cfg.UserAgent
		if ua == "" {
			ua = version.UserAgent()
		}
		client, err := wordpress.NewClient(cfg.Site, wordpress.WithUserAgent(ua))
		if err != nil {
			logger.Error("failed to create API client", "error", err)
			return err
		}
		src = listing.NewAPISource(client, listing.APIConfig{
			PerPage: cfg.PerPage,
			Limit:   cfg.Limit,
		})
		loader = archiver.NewAPILoader(client)
	} else {
		src, err = listing.NewArchiveSource(f, listing.ArchiveConfig{
			Site:         cfg.Site,
			LinkSelector: cfg.LinkSelector,
			NextSelector: cfg.NextSelector,
			URLPattern:   cfg.URLPattern,
			Limit:        cfg.Limit,
		})
		if err != nil {
			logger.Error("failed to create archive source", "error", err)
			return err
		}
		ex, err := extractor.New(extractor.Config{
			Mode:            cfg.ExtractMode,
			ContentSelector: cfg.ContentSelector,
			TitleSelector:   cfg.TitleSelector,
		})
		if err != nil {
			logger.Error("failed to create extractor", "error", err)
			return err
		}
		loader = archiver.NewHTMLLoader(f, ex)
	}

	w, err := notes.NewWriter(notes.Config{
		Dir:        cfg.Output,
		Style:      cfg.FilenameStyle,
		Collision:  cfg.Collision,
		SetModTime: cfg.SetModTime,
		DryRun:     cfg.DryRun,
		Render: notes.RenderOptions{
			Tags:        cfg.Tags,
			CSSClasses:  cfg.CSSClasses,
			FooterLinks: cfg.FooterLinks,
		},
	})
	if err != nil {
		logger.Error("failed to create note writer", "error", err)
		return err
	}

	a, err := archiver.New(archiver.Config{
		Source: src,
		Loader: loader,
		Writer: w,
		Delay:  cfg.Delay,
		Quiet:  viper.GetBool("quiet"),
	})
	if err != nil {
		logger.Error("failed to assemble the pipeline", "error", err)
		return err
	}

	logger.Info("starting archive", "site", cfg.Site, "source", source, "output", w.Dir())
	if _, err := a.Run(ctx); err != nil {
		logger.Error("archive failed", "error", err)
		return err
	}
	return nil
}
