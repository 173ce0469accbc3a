// Package conflict merges sheets that code the same language variety into
// review sheets, marking features whose codings disagree.
package conflict

import (
	"fmt"
	"sort"
	"strings"

	"github.com/glottolab/gramsheet/internal/catalog"
	"github.com/glottolab/gramsheet/internal/sheet"
)

// RowOrigin is one coded row together with the sheet it came from and the
// validation findings it would trigger.
type RowOrigin struct {
	Sheet    string
	Record   map[string]string
	Warnings string
}

// Group collects all codings of one feature across the merged sheets.
type Group struct {
	FeatureID string
	Conflict  bool // true when the codings disagree
	Rows      []RowOrigin
}

// ByGlottocode buckets sheets by the variety they code. Only varieties
// coded by more than one sheet need conflict review.
func ByGlottocode(sheets []*sheet.Sheet) map[string][]*sheet.Sheet {
	buckets := make(map[string][]*sheet.Sheet)
	for _, s := range sheets {
		buckets[s.Glottocode] = append(buckets[s.Glottocode], s)
	}
	return buckets
}

// Merge groups the rows of all given sheets by feature ID, ordered by
// (feature, sheet), and marks groups with more than one distinct value as
// conflicts. Each row carries the findings sheet validation would report
// for it, so reviewers see data problems next to the disagreement.
func Merge(sheets []*sheet.Sheet, cat *catalog.Catalog) ([]Group, error) {
	var origins []RowOrigin
	for _, s := range sheets {
		recs, err := s.Records()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.Path, err)
		}
		for _, rec := range recs {
			var findings []string
			sheet.ValidRecord(rec, cat, func(level, fid, msg string) {
				findings = append(findings, fmt.Sprintf("%s:%s: %s", level, fid, msg))
			}, nil)
			origins = append(origins, RowOrigin{
				Sheet:    s.Stem(),
				Record:   rec,
				Warnings: strings.Join(findings, "; "),
			})
		}
	}

	sort.SliceStable(origins, func(i, j int) bool {
		fi, fj := origins[i].Record["Feature_ID"], origins[j].Record["Feature_ID"]
		if fi != fj {
			return fi < fj
		}
		return origins[i].Sheet < origins[j].Sheet
	})

	var groups []Group
	for _, o := range origins {
		fid := o.Record["Feature_ID"]
		if n := len(groups); n == 0 || groups[n-1].FeatureID != fid {
			groups = append(groups, Group{FeatureID: fid})
		}
		g := &groups[len(groups)-1]
		g.Rows = append(g.Rows, o)
	}
	for i := range groups {
		values := make(map[string]bool)
		for _, o := range groups[i].Rows {
			values[o.Record["Value"]] = true
		}
		groups[i].Conflict = len(values) > 1
	}
	return groups, nil
}
