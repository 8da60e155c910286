package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlab-site/labpubs/internal/listing"
	"github.com/mlab-site/labpubs/internal/publication"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single publication by researchmap id",
	Long: `Get a single publication from the query index by its researchmap id.

Example:
  labpubs get 48000001`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenIndex(cfg)
	defer db.Close()

	id := args[0]
	p, err := db.GetByID(id)
	if err != nil {
		exitWithError(ExitError, "getting publication: %v", err)
	}
	if p == nil {
		exitWithError(ExitError, "publication not found: %s", id)
	}

	if humanOutput {
		printPubDetail(*p)
	} else {
		outputJSON(p)
	}
	return nil
}

func printPubDetail(p publication.Publication) {
	fmt.Println(p.ID)
	fmt.Println(strings.Repeat("=", len(p.ID)))
	fmt.Println()

	fmt.Printf("Title:    %s\n", p.Title)
	if p.Authors != "" {
		fmt.Printf("Authors:  %s\n", p.Authors)
	}
	if p.Journal != "" {
		fmt.Printf("Journal:  %s\n", p.Journal)
	}
	fmt.Printf("Date:     %s\n", p.DateDisplay)
	fmt.Printf("Section:  %s / %s\n", p.Category, p.SubCategory)
	for _, l := range listing.Links(p) {
		fmt.Printf("%-9s %s\n", l.Label+":", l.Href)
	}
	fmt.Println()
	fmt.Println(listing.Citation(p))
}
