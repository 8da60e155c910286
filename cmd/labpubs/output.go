package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/mlab-site/labpubs/internal/publication"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for search

	SearchTitleMaxLen = 70 // Used in search result summaries
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// outputHumanf writes a human-readable string to stdout.
func outputHumanf(format string, args ...any) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
	Count  int    `json:"count"`
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// formatYear renders year 0 as "n.d.".
func formatYear(year int) string {
	if year == 0 {
		return "n.d."
	}
	return fmt.Sprint(year)
}

// formatSize formats a byte count for humans.
func formatSize(n int64) string {
	return humanize.Bytes(uint64(n))
}

// printPubSummary prints one numbered publication line group.
func printPubSummary(num int, p publication.Publication) {
	fmt.Printf("[%d] %s\n", num, p.ID)
	fmt.Printf("    %s\n", truncateString(p.Title, SearchTitleMaxLen))
	if p.Authors != "" {
		fmt.Printf("    %s\n", p.Authors)
	}
	if p.Journal != "" {
		fmt.Printf("    %s (%s)\n", p.Journal, formatYear(p.Year))
	} else {
		fmt.Printf("    (%s)\n", formatYear(p.Year))
	}
	fmt.Println()
}
