package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlab-site/labpubs/internal/export"
	"github.com/mlab-site/labpubs/internal/listing"
)

var (
	exportBibTeX bool
	exportXLSX   string
	exportOut    string
	exportQuery  string
)

func init() {
	exportCmd.Flags().BoolVar(&exportBibTeX, "bibtex", false, "Export as BibTeX")
	exportCmd.Flags().StringVar(&exportXLSX, "xlsx", "", "Export as an XLSX workbook to this file")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write BibTeX to a file instead of stdout")
	exportCmd.Flags().StringVarP(&exportQuery, "query", "q", "", "Only export publications matching the query")
	exportCmd.MarkFlagsMutuallyExclusive("bibtex", "xlsx")
	exportCmd.MarkFlagsOneRequired("bibtex", "xlsx")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export publications to BibTeX or XLSX",
	Long: `Export the snapshot, in snapshot order.

BibTeX uses @article for journals, @inproceedings for conferences and
@misc otherwise. The XLSX workbook has one sheet per category.

Examples:
  labpubs export --bibtex > publications.bib
  labpubs export --bibtex -q seabird -o seabird.bib
  labpubs export --xlsx publications.xlsx`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	pubs := listing.Filter(mustLoadSnapshot(cfg.SnapshotPath()), exportQuery)

	if exportXLSX != "" {
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, pubs); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if err := os.WriteFile(exportXLSX, buf.Bytes(), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", exportXLSX, err)
		}
		if humanOutput {
			fmt.Printf("Exported %d publications to %s (%s)\n", len(pubs), exportXLSX, formatSize(int64(buf.Len())))
		} else {
			outputJSON(StatusResponse{Status: "exported", Path: exportXLSX, Count: len(pubs)})
		}
		return nil
	}

	bib := export.ToBibTeXList(pubs)
	if exportOut == "" {
		fmt.Print(bib)
		return nil
	}
	if err := os.WriteFile(exportOut, []byte(bib), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", exportOut, err)
	}
	if humanOutput {
		fmt.Printf("Exported %d publications to %s\n", len(pubs), exportOut)
	} else {
		outputJSON(StatusResponse{Status: "exported", Path: exportOut, Count: len(pubs)})
	}
	return nil
}
