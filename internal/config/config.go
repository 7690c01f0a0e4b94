// Package config holds the settings for an archive run and validates
// them before anything touches the network.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jmylchreest/blogmark/internal/extractor"
	"github.com/jmylchreest/blogmark/internal/fetcher"
	"github.com/jmylchreest/blogmark/internal/listing"
	"github.com/jmylchreest/blogmark/internal/notes"
)

// Config describes one archive run.
type Config struct {
	Site   string `mapstructure:"site" validate:"required"`
	Source string `mapstructure:"source" validate:"oneof=auto archive api"`
	Output string `mapstructure:"output" validate:"required"`

	FetchMode string        `mapstructure:"fetch_mode" validate:"oneof=static dynamic"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"min=0"`
	Delay     time.Duration `mapstructure:"delay" validate:"min=0"`
	UserAgent string        `mapstructure:"user_agent"`

	LinkSelector string `mapstructure:"link_selector"`
	NextSelector string `mapstructure:"next_selector"`
	URLPattern   string `mapstructure:"url_pattern"`
	Limit        int    `mapstructure:"limit" validate:"min=0"`
	PerPage      int    `mapstructure:"per_page" validate:"min=1,max=100"`

	ExtractMode     string `mapstructure:"extract_mode" validate:"oneof=selector readability"`
	ContentSelector string `mapstructure:"content_selector"`
	TitleSelector   string `mapstructure:"title_selector"`

	FilenameStyle string   `mapstructure:"filename_style" validate:"oneof=title slug"`
	Collision     string   `mapstructure:"collision" validate:"oneof=overwrite suffix"`
	Tags          []string `mapstructure:"tags"`
	CSSClasses    []string `mapstructure:"cssclasses"`
	FooterLinks   []string `mapstructure:"footer_links"`
	SetModTime    bool     `mapstructure:"set_mtime"`
	DryRun        bool     `mapstructure:"dry_run"`
}

// Default returns the configuration an archive run starts from before
// flags and config files are applied.
func Default() Config {
	return Config{
		Source:          listing.ModeAuto,
		Output:          notes.DefaultDir,
		FetchMode:       fetcher.ModeStatic,
		Timeout:         30 * time.Second,
		LinkSelector:    listing.DefaultLinkSelector,
		NextSelector:    listing.DefaultNextSelector,
		PerPage:         listing.DefaultPerPage,
		ExtractMode:     extractor.ModeSelector,
		ContentSelector: extractor.DefaultContentSelector,
		TitleSelector:   extractor.DefaultTitleSelector,
		FilenameStyle:   notes.StyleTitle,
		Collision:       notes.CollisionOverwrite,
	}
}

// Normalize fills in what users habitually leave off, such as the URL
// scheme on the site.
func (c *Config) Normalize() {
	c.Site = strings.TrimSpace(c.Site)
	if c.Site != "" && !strings.Contains(c.Site, "://") {
		c.Site = "https://" + c.Site
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields under the names users actually configure.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks the configuration and returns a single error listing
// every violated rule.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s %s", e.Field(), formatValidationError(e)))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}
