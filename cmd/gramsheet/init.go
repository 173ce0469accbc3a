package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/glottolab/gramsheet/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a gramsheet repository",
	Long: `Create the .gramsheet directory and a default config.yaml in the
current directory.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}
	if config.IsRepository(cwd) {
		exitWithError(ExitConfigError, "already a gramsheet repository: %s", cwd)
	}

	cfg := &config.Config{
		BibPath:     config.DefaultBibPath,
		SheetsDir:   config.DefaultSheetsDir,
		CatalogPath: config.DefaultCatalogPath,
	}
	if err := cfg.Save(cwd); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Initialized gramsheet repository in %s\n", cwd)
		return nil
	}
	return outputJSON(map[string]string{"root": cwd, "status": "initialized"})
}
