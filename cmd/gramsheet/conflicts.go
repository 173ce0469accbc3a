package main

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/glottolab/gramsheet/internal/conflict"
	"github.com/glottolab/gramsheet/internal/sheet"
)

var conflictsOutdir string

func init() {
	conflictsCmd.Flags().StringVar(&conflictsOutdir, "outdir", ".",
		"Directory for merged review sheets")
	rootCmd.AddCommand(conflictsCmd)
}

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "Write merged review sheets for multiply-coded varieties",
	Long: `For every language variety coded by more than one sheet, write one
merged TSV grouping the codings by feature and marking features whose
values disagree, ready for conflict review.`,
	RunE: runConflicts,
}

// ConflictsResult is the response for the conflicts command.
type ConflictsResult struct {
	Merged []MergedSheet `json:"merged"`
}

// MergedSheet describes one written review sheet.
type MergedSheet struct {
	Glottocode string `json:"glottocode"`
	Sheets     int    `json:"sheets"`
	Features   int    `json:"features"`
	Conflicts  int    `json:"conflicts"`
	Path       string `json:"path"`
}

func runConflicts(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	cat := mustLoadCatalog(cfg)

	sheets, err := sheet.Discover(cfg.SheetsDir)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := os.MkdirAll(conflictsOutdir, 0755); err != nil {
		exitWithError(ExitError, "creating %s: %v", conflictsOutdir, err)
	}

	result := ConflictsResult{Merged: []MergedSheet{}}
	for gc, group := range conflict.ByGlottocode(sheets) {
		if len(group) == 1 {
			continue
		}
		groups, err := conflict.Merge(group, cat)
		if err != nil {
			exitWithError(ExitDataError, "merging %s: %v", gc, err)
		}

		path := filepath.Join(conflictsOutdir, gc+".tsv")
		f, err := os.Create(path)
		if err != nil {
			exitWithError(ExitError, "creating %s: %v", path, err)
		}
		if err := conflict.WriteTSV(f, groups); err != nil {
			f.Close()
			exitWithError(ExitError, "writing %s: %v", path, err)
		}
		if err := f.Close(); err != nil {
			exitWithError(ExitError, "closing %s: %v", path, err)
		}

		nconflicts := 0
		for _, g := range groups {
			if g.Conflict {
				nconflicts++
			}
		}
		result.Merged = append(result.Merged, MergedSheet{
			Glottocode: gc,
			Sheets:     len(group),
			Features:   len(groups),
			Conflicts:  nconflicts,
			Path:       path,
		})
	}

	sort.Slice(result.Merged, func(i, j int) bool {
		return result.Merged[i].Glottocode < result.Merged[j].Glottocode
	})

	if humanOutput {
		for _, m := range result.Merged {
			outputHuman("%s: %d sheets, %d features, %d conflicts -> %s\n",
				m.Glottocode, m.Sheets, m.Features, m.Conflicts, m.Path)
		}
		return nil
	}
	return outputJSON(result)
}
