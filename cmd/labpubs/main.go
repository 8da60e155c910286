// Package main provides the labpubs CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mlab-site/labpubs/internal/config"
	"github.com/mlab-site/labpubs/internal/logger"
	"github.com/mlab-site/labpubs/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// configPath overrides the labpubs.yml lookup
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so cobra errors are printed here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "labpubs",
	Short: "Publication list pipeline for the lab website",
	Long: `labpubs keeps the lab's publication list in sync with researchmap.

  fetch    pull the owner's published papers and replace the snapshot
  list     filter, group by year and bucket the snapshot
  render   write the listing as an HTML fragment
  search   full-text search over the SQLite query index
  export   write BibTeX or an XLSX workbook

The JSON snapshot is the source of truth; the SQLite index is rebuilt
from it. All commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to labpubs.yml (default: search upward from the working directory)")
	rootCmd.Version = Version

	// A missing .env is fine
	_ = godotenv.Load()
}

// mustLoadConfig resolves the configuration, applies environment overrides
// and installs the logger. Outside a project the defaults are used with the
// working directory as root, so the environment alone can drive a run.
func mustLoadConfig() *config.Config {
	cfg, err := loadConfig(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		exitWithError(ExitConfigError, "reading environment: %v", err)
	}
	logger.Init(os.Stderr, cfg.Log)
	return cfg
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	root, err := config.FindProject(cwd)
	if errors.Is(err, config.ErrNotFound) {
		cfg := config.Default()
		cfg.SetRoot(cwd)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return config.Load(root)
}

// mustOpenIndex opens the SQLite query index, creating its directory.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenIndex(cfg *config.Config) *storage.DB {
	path := cfg.IndexPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.OpenDB(path)
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	return db
}
