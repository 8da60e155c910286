package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlab-site/labpubs/internal/normalize"
	"github.com/mlab-site/labpubs/internal/pipeline"
	"github.com/mlab-site/labpubs/internal/publication"
	"github.com/mlab-site/labpubs/internal/researchmap"
)

var fetchDryRun bool

func init() {
	fetchCmd.Flags().BoolVar(&fetchDryRun, "dry-run", false, "Fetch and normalize without writing the snapshot")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch published papers from researchmap and replace the snapshot",
	Long: `Fetch the owner's published papers from researchmap, normalize them,
sort by year (newest first) and atomically replace the snapshot.

If researchmap cannot be reached or answers with an error, the previous
snapshot is kept and the command still exits 0 with status "skipped".

Examples:
  labpubs fetch
  labpubs fetch --dry-run --human
  LABPUBS_AUTHOR_ID=maekawa labpubs fetch`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

// FetchResult is the response for the fetch command.
type FetchResult struct {
	pipeline.Report
	Publications []publication.Publication `json:"publications,omitempty"`
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	client := researchmap.NewClient(
		researchmap.WithBaseURL(cfg.Researchmap.APIBase),
		researchmap.WithLimit(cfg.Researchmap.Limit),
		researchmap.WithTimeout(cfg.Researchmap.Timeout),
		researchmap.WithUserAgent("labpubs/"+Version),
	)
	n := normalize.New(normalize.Config{
		Owner:       cfg.Owner,
		MissingDate: cfg.MissingDate,
	})

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Researchmap.Timeout)
	defer cancel()

	rep, err := pipeline.New(client, n).Run(ctx, pipeline.Options{
		AuthorID:     cfg.Researchmap.AuthorID,
		SnapshotPath: cfg.SnapshotPath(),
		DryRun:       fetchDryRun,
	})
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		printFetchHuman(rep)
		return nil
	}

	res := FetchResult{Report: rep}
	if rep.Status == pipeline.StatusDryRun {
		res.Publications = rep.Publications
	}
	outputJSON(res)
	return nil
}

func printFetchHuman(rep pipeline.Report) {
	switch rep.Status {
	case pipeline.StatusWritten:
		fmt.Printf("Saved %d publications to %s\n", rep.Written, rep.SnapshotPath)
	case pipeline.StatusDryRun:
		fmt.Printf("Fetched %d publications (dry run, nothing written)\n\n", rep.Fetched)
		for i, p := range rep.Publications {
			printPubSummary(i+1, p)
		}
	case pipeline.StatusSkipped:
		fmt.Fprintf(os.Stderr, "warning: fetch failed, kept %s: %s\n", rep.SnapshotPath, rep.FetchError)
	}
}
