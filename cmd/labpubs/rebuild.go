package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query index from the snapshot",
	Long: `Rebuild the SQLite query index from the JSON snapshot.

Run this after fetch or after pulling a new snapshot from git. The index
can be deleted at any time; search needs it.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status       string `json:"status"`
	Publications int    `json:"publications"`
	Index        string `json:"index"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	db := mustOpenIndex(cfg)
	defer db.Close()

	count, err := db.RebuildFromSnapshot(cfg.SnapshotPath())
	if err != nil {
		exitWithError(ExitDataError, "rebuilding index: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt query index with %d publications\n", count)
	} else {
		outputJSON(RebuildResult{
			Status:       "rebuilt",
			Publications: count,
			Index:        cfg.IndexPath(),
		})
	}
	return nil
}
