package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlab-site/labpubs/internal/snapshot"
	"github.com/mlab-site/labpubs/internal/storage"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show snapshot and index statistics",
	Long: `Show whether the snapshot exists, its size and publication count, and
the number of indexed publications per year.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

// StatusResult is the response for the status command.
type StatusResult struct {
	Snapshot      string              `json:"snapshot"`
	Exists        bool                `json:"exists"`
	SizeBytes     int64               `json:"size_bytes"`
	Publications  int                 `json:"publications"`
	Index         string              `json:"index"`
	Indexed       int                 `json:"indexed"`
	IndexedByYear []storage.YearCount `json:"indexed_by_year"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	info, err := snapshot.Stat(cfg.SnapshotPath())
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	pubs := mustLoadSnapshot(info.Path)

	db := mustOpenIndex(cfg)
	defer db.Close()

	indexed, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "counting index: %v", err)
	}
	byYear, err := db.CountByYear()
	if err != nil {
		exitWithError(ExitError, "counting index: %v", err)
	}

	res := StatusResult{
		Snapshot:      info.Path,
		Exists:        info.Exists,
		SizeBytes:     info.Size,
		Publications:  len(pubs),
		Index:         cfg.IndexPath(),
		Indexed:       indexed,
		IndexedByYear: byYear,
	}

	if !humanOutput {
		outputJSON(res)
		return nil
	}

	if info.Exists {
		fmt.Printf("Snapshot: %s (%s, %d publications)\n", res.Snapshot, formatSize(res.SizeBytes), res.Publications)
	} else {
		fmt.Printf("Snapshot: %s (missing, run 'labpubs fetch')\n", res.Snapshot)
	}
	fmt.Printf("Index:    %s (%d publications)\n", res.Index, res.Indexed)
	if indexed != len(pubs) {
		fmt.Println("          index is out of date, run 'labpubs rebuild'")
	}
	for _, yc := range byYear {
		fmt.Printf("  %-6s %d\n", formatYear(yc.Year), yc.Count)
	}
	return nil
}
