package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(refreshCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the bibliography cache",
	Long: `Rescan the configured .bib file and rebuild the SQLite cache of
bibliography entries and the per-language index, regardless of whether
the cache looks current.`,
	RunE: runRefresh,
}

// RefreshResult is the response for the refresh command.
type RefreshResult struct {
	Entries   int `json:"entries"`
	Languages int `json:"languages"`
}

func runRefresh(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	entries, index, err := loadBibliography(root, cfg, true)
	if err != nil {
		exitWithError(ExitConfigError, "rebuilding bibliography cache: %v", err)
	}

	result := RefreshResult{Entries: len(entries), Languages: len(index)}
	if humanOutput {
		outputHuman("Cached %d entries across %d languages\n", result.Entries, result.Languages)
		return nil
	}
	return outputJSON(result)
}
