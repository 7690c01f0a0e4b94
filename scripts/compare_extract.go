// compare_extract.go - Compare selector and readability extraction for a post
//
// Usage: go run scripts/compare_extract.go <url> [content-selector]
//
// Example:
//   go run scripts/compare_extract.go https://example.wordpress.com/2021/05/04/hello-world/
//   go run scripts/compare_extract.go https://blog.example.org/post/ "div.post-body"

package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/jmylchreest/blogmark/internal/extractor"
	"github.com/jmylchreest/blogmark/internal/markdown"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/compare_extract.go <url> [content-selector]")
		os.Exit(1)
	}
	url := os.Args[1]

	selector := ""
	if len(os.Args) > 2 {
		selector = os.Args[2]
	}

	resp, err := http.Get(url) //#nosec G107 -- dev script fetches a user-supplied URL
	if err != nil {
		fmt.Printf("Error fetching %s: %v\n", url, err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Error: received status code %d\n", resp.StatusCode)
		os.Exit(1)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Error reading response: %v\n", err)
		os.Exit(1)
	}
	page := string(body)

	for _, mode := range []string{extractor.ModeSelector, extractor.ModeReadability} {
		divider(mode)

		ex, err := extractor.New(extractor.Config{Mode: mode, ContentSelector: selector})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		content, err := ex.Extract(page, url)
		if err != nil {
			fmt.Printf("Extraction failed: %v\n", err)
			continue
		}

		md, err := markdown.Convert(content.HTML, url)
		if err != nil {
			fmt.Printf("Conversion failed: %v\n", err)
			continue
		}

		fmt.Printf("Title: %s\n", content.Title)
		if !content.Published.IsZero() {
			fmt.Printf("Date:  %s\n", content.Published.Format("2006-01-02"))
		}
		fmt.Printf("Size:  %d bytes of Markdown\n\n", len(md))
		fmt.Println(preview(md, 800))
	}
}

func divider(title string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("  %s\n", strings.ToUpper(title))
	fmt.Println(strings.Repeat("=", 70))
}

func preview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "\n... (truncated)"
}
