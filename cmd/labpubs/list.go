package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/mlab-site/labpubs/internal/listing"
	"github.com/mlab-site/labpubs/internal/publication"
	"github.com/mlab-site/labpubs/internal/snapshot"
)

var listLang string

func init() {
	listCmd.Flags().StringVar(&listLang, "lang", string(listing.English), "Label language (en, ja)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "Show the snapshot grouped by year and category",
	Long: `Load the snapshot, keep the publications whose title, authors, journal
or year contain the query (case-insensitive), group them by year (newest
first) and split each year into International (Journal, Conference,
Other) and Domestic sections.

Examples:
  labpubs list
  labpubs list seabird --human
  labpubs list 行動認識 --lang ja --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	lang, err := listing.ParseLang(listLang)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	pubs := mustLoadSnapshot(cfg.SnapshotPath())

	var query string
	if len(args) > 0 {
		query = args[0]
	}
	view := listing.Build(pubs, query)

	if humanOutput {
		printViewHuman(view, listing.Labels(lang))
		return nil
	}
	outputJSON(view)
	return nil
}

// mustLoadSnapshot reads the snapshot, exits on error. A missing snapshot
// yields an empty list.
func mustLoadSnapshot(path string) []publication.Publication {
	pubs, err := snapshot.NewReader(path).Load()
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return pubs
}

func printViewHuman(v listing.View, l listing.LabelSet) {
	switch v.State {
	case listing.StateNoData:
		fmt.Println(l.NoData)
		return
	case listing.StateNoResults:
		fmt.Println(l.NoResults)
		return
	}

	for _, y := range v.Years {
		heading := l.YearHeading(y.Year)
		fmt.Printf("%s\n%s\n", heading, strings.Repeat("=", utf8.RuneCountInString(heading)))
		if y.International.Len() > 0 {
			fmt.Printf("\n%s\n", l.International)
			printBucket(l.Journals, y.International.Journals)
			printBucket(l.Conferences, y.International.Conferences)
			printBucket(l.Other, y.International.Other)
		}
		printBucket(l.Domestic, y.Domestic)
		fmt.Println()
	}
}

func printBucket(heading string, pubs []publication.Publication) {
	if len(pubs) == 0 {
		return
	}
	fmt.Printf("\n  %s (%d)\n", heading, len(pubs))
	for _, p := range pubs {
		fmt.Printf("  - %s\n", listing.Citation(p))
	}
}
