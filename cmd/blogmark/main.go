// Package main is the entry point for the blogmark CLI.
package main

import (
	"os"

	"github.com/jmylchreest/blogmark/cmd/blogmark/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
