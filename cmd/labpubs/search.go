package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlab-site/labpubs/internal/publication"
	"github.com/mlab-site/labpubs/internal/storage"
)

var (
	searchLimit    int
	searchYear     string
	searchCategory string
	searchType     string
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "Filter by year: exact (2024), range (2020:2024), or open (2020: or :2024)")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "Filter by category (International, Domestic)")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Filter by sub-category (Journal, Conference, Other)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the query index",
	Long: `Search publications in the SQLite query index by substring over
title, authors and journal, with optional filters. Without a query or
filters every indexed publication is listed. Results keep snapshot order
(newest first).

Run 'labpubs rebuild' first to build the index.

Examples:
  labpubs search seabird
  labpubs search 行動認識 --category Domestic
  labpubs search --year 2020:2023 --type Conference`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	filters := storage.SearchFilters{
		Category:    publication.Category(searchCategory),
		SubCategory: publication.SubCategory(searchType),
	}
	if len(args) > 0 {
		filters.Keyword = args[0]
	}
	if filters.Category != "" && !filters.Category.Valid() {
		exitWithError(ExitError, "invalid category %q (valid: International, Domestic)", searchCategory)
	}
	if filters.SubCategory != "" && !filters.SubCategory.Valid() {
		exitWithError(ExitError, "invalid type %q (valid: Journal, Conference, Other)", searchType)
	}
	if searchYear != "" {
		from, to, err := parseYearRange(searchYear)
		if err != nil {
			exitWithError(ExitError, "invalid year format: %v", err)
		}
		filters.YearFrom = from
		filters.YearTo = to
	}

	cfg := mustLoadConfig()
	db := mustOpenIndex(cfg)
	defer db.Close()

	pubs, err := queryIndex(db, filters, searchLimit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	if humanOutput {
		if len(pubs) == 0 {
			fmt.Println("No publications found")
		} else {
			fmt.Printf("Found %d publications:\n\n", len(pubs))
			for i, p := range pubs {
				printPubSummary(i+1, p)
			}
		}
	} else {
		outputJSON(pubs)
	}
	return nil
}

// queryIndex lists the whole index when no filter is set and searches
// otherwise.
func queryIndex(db *storage.DB, filters storage.SearchFilters, limit int) ([]publication.Publication, error) {
	if filters == (storage.SearchFilters{}) {
		return db.ListAll(limit)
	}
	return db.Search(filters, limit)
}

// parseYearRange parses a year specification into from/to values.
// Supported formats: "2024", "2020:2024", "2020:", ":2024"
func parseYearRange(spec string) (from, to int, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0, nil
	}

	if strings.Contains(spec, ":") {
		parts := strings.SplitN(spec, ":", 2)

		if parts[0] != "" {
			from, err = strconv.Atoi(parts[0])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid start year %q", parts[0])
			}
		}

		if parts[1] != "" {
			to, err = strconv.Atoi(parts[1])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid end year %q", parts[1])
			}
		}

		return from, to, nil
	}

	year, err := strconv.Atoi(spec)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", spec)
	}

	return year, year, nil
}
