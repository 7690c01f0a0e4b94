package config

import (
	"strings"
	"testing"
)

// --- Config Tests ---

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	cfg.Site = "https://example.wordpress.com"

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing site",
			mutate:  func(c *Config) { c.Site = "" },
			wantErr: "site is required",
		},
		{
			name:    "unknown source",
			mutate:  func(c *Config) { c.Source = "rss" },
			wantErr: "source must be one of: auto, archive, api",
		},
		{
			name:    "unknown fetch mode",
			mutate:  func(c *Config) { c.FetchMode = "headless" },
			wantErr: "fetch_mode must be one of: static, dynamic",
		},
		{
			name:    "unknown extract mode",
			mutate:  func(c *Config) { c.ExtractMode = "regex" },
			wantErr: "extract_mode must be one of: selector, readability",
		},
		{
			name:    "unknown filename style",
			mutate:  func(c *Config) { c.FilenameStyle = "hash" },
			wantErr: "filename_style must be one of: title, slug",
		},
		{
			name:    "unknown collision policy",
			mutate:  func(c *Config) { c.Collision = "error" },
			wantErr: "collision must be one of: overwrite, suffix",
		},
		{
			name:    "negative limit",
			mutate:  func(c *Config) { c.Limit = -1 },
			wantErr: "limit must be at least 0",
		},
		{
			name:    "per page too large",
			mutate:  func(c *Config) { c.PerPage = 500 },
			wantErr: "per_page must be at most 100",
		},
		{
			name:    "missing output",
			mutate:  func(c *Config) { c.Output = "" },
			wantErr: "output is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Site = "https://example.wordpress.com"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateReportsAllViolations(t *testing.T) {
	cfg := Default()
	cfg.Site = ""
	cfg.Source = "rss"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	for _, want := range []string{"site is required", "source must be one of"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error = %q, want it to mention %q", err, want)
		}
	}
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		site string
		want string
	}{
		{"adds scheme", "example.wordpress.com", "https://example.wordpress.com"},
		{"keeps https", "https://example.wordpress.com", "https://example.wordpress.com"},
		{"keeps http", "http://blog.example.org/", "http://blog.example.org/"},
		{"trims whitespace", "  example.wordpress.com ", "https://example.wordpress.com"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Site: tt.site}
			cfg.Normalize()
			if cfg.Site != tt.want {
				t.Errorf("Normalize() site = %q, want %q", cfg.Site, tt.want)
			}
		})
	}
}
