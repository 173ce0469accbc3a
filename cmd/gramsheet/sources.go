package main

import (
	"github.com/spf13/cobra"

	"github.com/glottolab/gramsheet/internal/citation"
	"github.com/glottolab/gramsheet/internal/sheet"
)

var sourcesLanguage string

func init() {
	sourcesCmd.Flags().StringVar(&sourcesLanguage, "language", "",
		"Bibliography language code to resolve against (default: the sheet's glottocode)")
	rootCmd.AddCommand(sourcesCmd)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources <sheet>",
	Short: "Resolve Source cells against the bibliography",
	Long: `Resolve every valid row's Source cell into structured bibliography
references. Rows that resolve report their bibliography keys and pages;
the rest are classified as free-text comments, page-only defaults, or
unresolved citations.`,
	Args: cobra.ExactArgs(1),
	RunE: runSources,
}

// RowResolution is the per-row section of the sources command output.
type RowResolution struct {
	FeatureID  string               `json:"feature_id"`
	Source     string               `json:"source"`
	References []citation.Reference `json:"references,omitempty"`
	Comment    string               `json:"comment,omitempty"`
	PageOnly   bool                 `json:"page_only,omitempty"`
}

// UnresolvedCount is one unresolved citation with its occurrence count.
type UnresolvedCount struct {
	citation.Unresolved
	Count int `json:"count"`
}

// SourcesResult is the response for the sources command.
type SourcesResult struct {
	Sheet      string            `json:"sheet"`
	Language   string            `json:"language"`
	Rows       int               `json:"rows"`
	Resolved   int               `json:"resolved"`
	Dropped    []string          `json:"dropped_segments,omitempty"`
	Results    []RowResolution   `json:"results"`
	Unresolved []UnresolvedCount `json:"unresolved"`
}

func runSources(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	cat := mustLoadCatalog(cfg)

	sh, err := sheet.New(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	language := sourcesLanguage
	if language == "" {
		language = sh.Glottocode
	}

	entries, index, err := loadBibliography(root, cfg, false)
	if err != nil {
		exitWithError(ExitConfigError, "loading bibliography: %v", err)
	}
	if _, ok := index[language]; !ok {
		// The resolver treats a missing index entry as a contract
		// violation; an uncited language is still a valid query here.
		index[language] = nil
	}

	result := SourcesResult{
		Sheet:      sh.Stem(),
		Language:   language,
		Results:    []RowResolution{},
		Unresolved: []UnresolvedCount{},
	}
	resolver := &citation.Resolver{
		Entries: entries,
		Index:   index,
		Tokenizer: &citation.Tokenizer{
			OnDrop: func(segment string) {
				result.Dropped = append(result.Dropped, segment)
			},
		},
	}

	rows, err := sh.ValidRows(cat)
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", sh.Path, err)
	}

	unresolvedCounts := make(map[citation.Unresolved]int)
	var unresolvedOrder []citation.Unresolved
	for _, row := range rows {
		if row.Source == "" {
			continue
		}
		result.Rows++
		res, err := resolver.Resolve(row.Source, language)
		if err != nil {
			exitWithError(ExitError, "resolving %q: %v", row.Source, err)
		}
		if len(res.References) > 0 {
			result.Resolved++
		}
		result.Results = append(result.Results, RowResolution{
			FeatureID:  row.FeatureID,
			Source:     row.Source,
			References: res.References,
			Comment:    res.Comment,
			PageOnly:   res.PageOnly,
		})
		for _, u := range res.Unresolved {
			if unresolvedCounts[u] == 0 {
				unresolvedOrder = append(unresolvedOrder, u)
			}
			unresolvedCounts[u]++
		}
	}
	for _, u := range unresolvedOrder {
		result.Unresolved = append(result.Unresolved, UnresolvedCount{Unresolved: u, Count: unresolvedCounts[u]})
	}

	if humanOutput {
		outputHuman("%s (%s): %d/%d sources resolved, %d unresolved citations\n",
			result.Sheet, result.Language, result.Resolved, result.Rows, len(result.Unresolved))
		for _, u := range result.Unresolved {
			if u.Raw != "" {
				outputHuman("  unresolved: %q (%d)\n", u.Raw, u.Count)
			} else {
				outputHuman("  unresolved: %s %s (%d)\n", u.Author, u.Year, u.Count)
			}
		}
		return nil
	}
	return outputJSON(result)
}
