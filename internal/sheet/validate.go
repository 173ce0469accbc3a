package sheet

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/glottolab/gramsheet/internal/catalog"
)

// Issue severity levels. ERROR marks structurally invalid rows; WARNING
// marks structurally valid but semantically suspect ones (e.g. a value
// without a source).
const (
	LevelError   = "ERROR"
	LevelWarning = "WARNING"
)

// Issue is one validation finding for a sheet.
type Issue struct {
	Sheet     string `json:"sheet"`
	Level     string `json:"level"`
	FeatureID string `json:"feature_id,omitempty"`
	Message   string `json:"message"`
}

// LogFunc receives validation findings as they are detected.
type LogFunc func(level, featureID, message string)

// featureIDShapeRe is the accepted feature ID shape. The trailing anchor
// binds to the last alternative only, mirroring longstanding behavior:
// GB and GBDRS IDs are prefix-checked, TS IDs are checked in full.
var featureIDShapeRe = regexp.MustCompile(`^(?:GB[0-9]{3}|GBDRS.+|TE[0-9]+|TS[0-9]+$)`)

// ValidRecord checks one normalized record against the catalog. log may
// be nil; seen tracks feature IDs already coded in this sheet (nil skips
// duplicate detection). The record is counted valid only when it carries
// a usable value, a source, and no findings.
func ValidRecord(rec map[string]string, cat *catalog.Catalog, log LogFunc, seen map[string]bool) bool {
	if log == nil {
		log = func(string, string, string) {}
	}
	fid := rec["Feature_ID"]
	if fid == "" {
		return false
	}
	valid := true
	if !featureIDShapeRe.MatchString(fid) {
		if rec["Value"] != "" {
			log(LevelError, fid, fmt.Sprintf("invalid Feature_ID: %s", fid))
		}
		valid = false
	}
	feature := cat.Feature(fid)
	if feature == nil {
		return false
	}
	if v := rec["Value"]; v != "" {
		if v != "?" && !feature.Domain[v] {
			log(LevelError, fid, fmt.Sprintf("invalid value %s", v))
			valid = false
		}
	} else {
		valid = false
	}

	if rec["Value"] != "" && rec["Source"] == "" {
		log(LevelWarning, fid, "value without source")
		valid = false
	}
	if rec["Source"] != "" && rec["Value"] == "" {
		log(LevelWarning, fid, "source given, but no value")
		valid = false
	}
	if rec["Comment"] != "" && rec["Value"] == "" {
		log(LevelWarning, fid, "comment given, but no value")
		valid = false
	}
	if seen[fid] {
		log(LevelError, fid, fmt.Sprintf("duplicate value for feature %s", fid))
		valid = false
	}
	return valid
}

// Check validates the whole sheet: header integrity, every row, and
// cross-row consistency. It returns the number of valid rows and the
// collected findings.
func (s *Sheet) Check(cat *catalog.Catalog) (int, []Issue, error) {
	t, err := s.Table()
	if err != nil {
		return 0, nil, err
	}

	var issues []Issue
	log := func(level, fid, msg string) {
		issues = append(issues, Issue{Sheet: s.Stem(), Level: level, FeatureID: fid, Message: msg})
	}

	s.checkHeader(t, log)

	recs, err := s.Records()
	if err != nil {
		return 0, nil, err
	}
	nvalid := 0
	seen := make(map[string]bool)
	for _, rec := range recs {
		if ValidRecord(rec, cat, log, seen) {
			nvalid++
		}
		seen[rec["Feature_ID"]] = true
	}

	s.checkMultipleCodings(recs, log)
	return nvalid, issues, nil
}

// checkHeader flags missing canonical columns, duplicate headers, and
// non-empty cells under empty headers.
func (s *Sheet) checkHeader(t *Table, log LogFunc) {
	present := make(map[string]int)
	var emptyIdx []int
	for j, col := range t.Header {
		present[col]++
		if col == "" {
			emptyIdx = append(emptyIdx, j)
		}
	}
	for _, col := range []string{"Feature_ID", "Value", "Comment", "Source"} {
		if present[col] == 0 {
			log(LevelError, "", fmt.Sprintf("missing column %s", col))
		}
	}
	for col, n := range present {
		if col != "" && n > 1 {
			log(LevelError, "", fmt.Sprintf("duplicate header column %q", col))
		}
	}
	for _, row := range t.Rows {
		for _, j := range emptyIdx {
			if j < len(row) && row[j] != "" {
				log(LevelWarning, "", fmt.Sprintf("non-empty cell with empty header: %s", row[j]))
			}
		}
	}
}

// checkMultipleCodings flags features coded more than once with
// inconsistent values. Consistent repeats pass; the first value takes
// precedence downstream.
func (s *Sheet) checkMultipleCodings(recs []map[string]string, log LogFunc) {
	byFeature := make(map[string][]string)
	for _, rec := range recs {
		fid := rec["Feature_ID"]
		byFeature[fid] = append(byFeature[fid], rec["Value"])
	}
	var fids []string
	for fid, values := range byFeature {
		if len(values) > 1 && len(distinct(values)) > 1 {
			fids = append(fids, fid)
		}
	}
	sort.Strings(fids)
	for _, fid := range fids {
		log(LevelError, fid, fmt.Sprintf(
			"inconsistent multiple codings: [%s]", strings.Join(byFeature[fid], ", ")))
	}
}

func distinct(values []string) map[string]bool {
	set := make(map[string]bool)
	for _, v := range values {
		set[v] = true
	}
	return set
}
