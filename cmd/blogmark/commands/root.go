// Package commands implements the CLI commands for blogmark.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "blogmark",
	Short: "Archive a WordPress blog as Markdown notes",
	Long: `Blogmark downloads every post of a WordPress blog and writes each one
as a Markdown note with YAML front matter.

Posts are discovered from the blog's archive pages or, for
WordPress.com blogs, through the public REST API. Only each post's
content region is converted to Markdown; navigation, sidebars, and
comments never make it into the note.

Examples:
  # Archive a WordPress.com blog through the public API
  blogmark archive --site example.wordpress.com

  # Archive a self-hosted blog by walking its archive pages
  blogmark archive --site "https://blog.example.org" --source archive

  # Custom theme selectors and slug filenames
  blogmark archive --site "https://blog.example.org" \
      --content-selector "div.post-body" --filename-style slug`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.blogmark.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text, json")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".blogmark")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("BLOGMARK")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
