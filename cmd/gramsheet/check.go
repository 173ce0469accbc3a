package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/glottolab/gramsheet/internal/sheet"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [sheet...]",
	Short: "Validate sheets against the feature catalog",
	Long: `Validate sheets against the feature catalog: feature IDs, value
domains, value/source/comment consistency, duplicate and inconsistent
codings, and header integrity. Without arguments, all sheets in the
configured sheet directory are checked.`,
	RunE: runCheck,
}

// SheetReport is the per-sheet section of the check command output.
type SheetReport struct {
	Sheet      string        `json:"sheet"`
	Glottocode string        `json:"glottocode"`
	ValidRows  int           `json:"valid_rows"`
	Issues     []sheet.Issue `json:"issues"`
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status string        `json:"status"`
	Sheets []SheetReport `json:"sheets"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	cat := mustLoadCatalog(cfg)

	var sheets []*sheet.Sheet
	if len(args) > 0 {
		for _, arg := range args {
			sh, err := sheet.New(arg)
			if err != nil {
				exitWithError(ExitDataError, "%v", err)
			}
			sheets = append(sheets, sh)
		}
	} else {
		var err error
		sheets, err = sheet.Discover(cfg.SheetsDir)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
	}

	result := CheckResult{Status: "ok", Sheets: []SheetReport{}}
	hasErrors := false
	for _, sh := range sheets {
		nvalid, issues, err := sh.Check(cat)
		if err != nil {
			exitWithError(ExitDataError, "checking %s: %v", sh.Path, err)
		}
		if issues == nil {
			issues = []sheet.Issue{}
		}
		for _, issue := range issues {
			if issue.Level == sheet.LevelError {
				hasErrors = true
			}
		}
		result.Sheets = append(result.Sheets, SheetReport{
			Sheet:      sh.Stem(),
			Glottocode: sh.Glottocode,
			ValidRows:  nvalid,
			Issues:     issues,
		})
	}
	if hasErrors {
		result.Status = "errors"
	}

	if humanOutput {
		for _, rep := range result.Sheets {
			outputHuman("%s: %d valid rows, %d issues\n", rep.Sheet, rep.ValidRows, len(rep.Issues))
			for _, issue := range rep.Issues {
				outputHuman("  [%s] %s %s\n", issue.Level, issue.FeatureID, issue.Message)
			}
		}
	} else {
		if err := outputJSON(result); err != nil {
			return err
		}
	}

	if hasErrors {
		os.Exit(ExitDataError)
	}
	return nil
}
