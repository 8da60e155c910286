package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlab-site/labpubs/internal/normalize"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Show the configuration after labpubs.yml, defaults and environment
overrides (LABPUBS_AUTHOR_ID, LABPUBS_API_BASE, LABPUBS_SNAPSHOT,
LABPUBS_LOG_LEVEL, LABPUBS_LIMIT) have been applied.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	Root        string              `json:"root"`
	AuthorID    string              `json:"author_id"`
	APIBase     string              `json:"api_base"`
	Limit       int                 `json:"limit"`
	Timeout     string              `json:"timeout"`
	Owner       []normalize.Matcher `json:"owner"`
	MissingDate string              `json:"missing_date"`
	Snapshot    string              `json:"snapshot"`
	Index       string              `json:"index"`
	LogLevel    string              `json:"log_level"`
	LogFormat   string              `json:"log_format"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	resp := ConfigResponse{
		Root:        cfg.Root(),
		AuthorID:    cfg.Researchmap.AuthorID,
		APIBase:     cfg.Researchmap.APIBase,
		Limit:       cfg.Researchmap.Limit,
		Timeout:     cfg.Researchmap.Timeout.String(),
		Owner:       cfg.Owner,
		MissingDate: cfg.MissingDate,
		Snapshot:    cfg.SnapshotPath(),
		Index:       cfg.IndexPath(),
		LogLevel:    cfg.Log.Level,
		LogFormat:   cfg.Log.Format,
	}
	if resp.Owner == nil {
		resp.Owner = []normalize.Matcher{}
	}

	if !humanOutput {
		outputJSON(resp)
		return nil
	}

	fmt.Printf("root:         %s\n", resp.Root)
	fmt.Printf("author-id:    %s\n", resp.AuthorID)
	fmt.Printf("api-base:     %s\n", resp.APIBase)
	fmt.Printf("limit:        %d\n", resp.Limit)
	fmt.Printf("timeout:      %s\n", resp.Timeout)
	for _, m := range resp.Owner {
		mode := m.Mode
		if mode == "" {
			mode = normalize.MatchExact
		}
		fmt.Printf("owner:        %s (%s)\n", m.Name, mode)
	}
	fmt.Printf("missing-date: %s\n", resp.MissingDate)
	fmt.Printf("snapshot:     %s\n", resp.Snapshot)
	fmt.Printf("index:        %s\n", resp.Index)
	fmt.Printf("log:          %s (%s)\n", resp.LogLevel, resp.LogFormat)
	return nil
}
