// Package main provides the gramsheet CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gramsheet",
	Short: "Survey sheet curation and citation resolution",
	Long: `gramsheet validates linguistic survey sheets against a feature catalog,
resolves their free-text Source cells into structured bibliography
references, and writes merged review sheets when several sheets code the
same language variety.

Commands output JSON by default for easy downstream processing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
