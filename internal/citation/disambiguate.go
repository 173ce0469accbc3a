package citation

import (
	"sort"
	"strings"

	"github.com/glottolab/gramsheet/internal/bib"
)

// Candidates returns the bibliography keys among keys that match the
// fragment, reduced to the best-ranked tie set.
//
// Filtering keeps a key when the entry's year field contains the
// fragment's year text as a substring (tolerating ranges and qualifiers
// in recorded years), the title contains the fragment's hint if one is
// set, and the author matches. Survivors are then ranked by the pair
// (max source-type rank, described in English) and only the lexicographic
// maximum survives — even a single survivor passes through the ranking.
//
// extraSurnames supplies additional co-author surnames known for a key;
// nil means no extras. The result is sorted; an empty result is not an
// error.
func Candidates(frag Fragment, keys []string, entries map[string]*bib.Entry, extraSurnames func(key string) []string) []string {
	var survivors []string
	for _, k := range keys {
		e := entries[k]
		if e == nil {
			continue
		}
		if !strings.Contains(e.Year, frag.YearText) {
			continue
		}
		if frag.TitleHint != "" && !strings.Contains(strings.ToLower(e.Title), frag.TitleHint) {
			continue
		}
		var extra []string
		if extraSurnames != nil {
			extra = extraSurnames(k)
		}
		if !AuthorMatches(frag.AuthorText, e.Author, extra) {
			continue
		}
		survivors = append(survivors, k)
	}
	if len(survivors) == 0 {
		return nil
	}

	bestRank, bestEnglish := -1, false
	for _, k := range survivors {
		rank, english := bib.MaxTypeRank(entries[k]), bib.IsEnglish(entries[k])
		if rank > bestRank || (rank == bestRank && english && !bestEnglish) {
			bestRank, bestEnglish = rank, english
		}
	}

	var best []string
	for _, k := range survivors {
		if bib.MaxTypeRank(entries[k]) == bestRank && bib.IsEnglish(entries[k]) == bestEnglish {
			best = append(best, k)
		}
	}
	sort.Strings(best)
	return best
}
