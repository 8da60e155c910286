package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlab-site/labpubs/internal/config"
	"github.com/mlab-site/labpubs/internal/normalize"
)

var (
	initAuthor string
	initOwners []string
	initDir    string
)

// InitResult is the response for the init command.
type InitResult struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

func init() {
	initCmd.Flags().StringVar(&initAuthor, "author", "", "researchmap author id (permalink) of the lab owner")
	initCmd.Flags().StringArrayVar(&initOwners, "owner", nil, "Spelling of the owner's name (repeatable)")
	initCmd.Flags().StringVarP(&initDir, "dir", "d", ".", "Project directory")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create labpubs.yml",
	Long: `Create labpubs.yml with default settings in the project directory.

Example:
  labpubs init --author maekawa --owner "Takuya Maekawa" --owner "前川 卓也"`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.Path(initDir)
	if config.IsProject(initDir) {
		exitWithError(ExitError, "%s already exists", path)
	}
	if err := os.MkdirAll(initDir, 0755); err != nil {
		exitWithError(ExitError, "creating %s: %v", initDir, err)
	}

	cfg := config.Default()
	cfg.Researchmap.AuthorID = initAuthor
	for _, name := range initOwners {
		cfg.Owner = append(cfg.Owner, normalize.Matcher{Name: name})
	}
	if err := cfg.Owner.Validate(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if err := cfg.Save(path); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Created %s\n", path)
		if initAuthor == "" {
			fmt.Printf("Set researchmap.author_id or %s before running fetch\n", config.EnvAuthorID)
		}
	} else {
		outputJSON(InitResult{Status: "created", Path: path})
	}
	return nil
}
