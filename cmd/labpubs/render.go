package main

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlab-site/labpubs/internal/listing"
)

var (
	renderLang string
	renderOut  string
)

func init() {
	renderCmd.Flags().StringVar(&renderLang, "lang", string(listing.English), "Label language (en, ja)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Write the fragment to a file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [query]",
	Short: "Render the publication listing as an HTML fragment",
	Long: `Render the snapshot as the HTML fragment embedded in the site's
publication page. Only non-empty year sections and buckets are emitted.

Examples:
  labpubs render > publications.html
  labpubs render --lang ja -o dist/publications.ja.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	lang, err := listing.ParseLang(renderLang)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	var query string
	if len(args) > 0 {
		query = args[0]
	}
	view := listing.Build(mustLoadSnapshot(cfg.SnapshotPath()), query)

	var buf bytes.Buffer
	if err := listing.RenderHTML(&buf, view, lang); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if renderOut == "" {
		_, err := buf.WriteTo(os.Stdout)
		return err
	}
	if err := os.WriteFile(renderOut, buf.Bytes(), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", renderOut, err)
	}
	if humanOutput {
		outputHumanf("Rendered %d publications to %s\n", view.Matched, renderOut)
	} else {
		outputJSON(StatusResponse{Status: "rendered", Path: renderOut, Count: view.Matched})
	}
	return nil
}
