package sheet

import (
	"regexp"
	"strings"
)

// Canonical column names, in output order.
var CanonicalColumns = []string{
	"Language_ID", "Feature_ID", "Value", "Source", "Comment",
}

// columnAliases maps canonical columns to header spellings seen in
// contributed sheets.
var columnAliases = map[string][]string{
	"Language_ID":    {"iso-639-3", "Language", "Glottocode", "glottocode"},
	"Feature_ID":     {"GramBank ID", "Grambank ID", "* Feature number", "Grambank"},
	"Value":          nil,
	"Source":         nil,
	"Comment":        {"Freetext comment"},
	"Feature Domain": {"Possible Values"},
}

// NormalizedFeatureID canonicalizes a feature ID: bare numbers get the GB
// prefix and zero padding ("1" -> "GB001"), short GB IDs get re-padded.
func NormalizedFeatureID(s string) string {
	if s != "" && isDigits(s) {
		return "GB" + pad3(s)
	}
	if strings.HasPrefix(s, "GB") && len(s) != 5 {
		return "GB" + pad3(s[2:])
	}
	return s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func pad3(s string) string {
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

// missingValues are the spellings coders use for "unknown".
var missingValues = map[string]bool{
	"?": true, "??": true,
	"n/a": true, "N/A": true,
	"n.a.": true, "n.a": true, "N.A.": true, "N.A": true,
	"-": true, "NODATA": true, "? - Not known": true,
	"*": true, `\`: true, "x": true,
}

// NormalizedValue maps the many spellings of "unknown" to "?".
func NormalizedValue(v string) string {
	if missingValues[v] {
		return "?"
	}
	return v
}

// NormalizeComment cleans up comments: all-"#" comments vanish, runs of
// "?" collapse to a single "?".
func NormalizeComment(s string) string {
	if s == "" {
		return ""
	}
	switch {
	case allRunes(s, '#'):
		return ""
	case allRunes(s, '?'):
		return "?"
	}
	return s
}

func allRunes(s string, c rune) bool {
	for _, r := range s {
		if r != c {
			return false
		}
	}
	return s != ""
}

// NormalizeRecord trims a raw record's values and moves aliased columns
// onto their canonical names. Language_ID is cleared; it comes from the
// sheet name, never from cell content.
func NormalizeRecord(rec map[string]string) map[string]string {
	for k, v := range rec {
		rec[k] = strings.TrimSpace(v)
	}

	// Sheets predating the rename carry both spellings; the legacy
	// Feature_ID column is then a feature name, not an ID.
	if _, hasOld := rec["Grambank ID"]; hasOld {
		if v, hasNew := rec["Feature_ID"]; hasNew {
			rec["Feature"] = v
			delete(rec, "Feature_ID")
		}
	}

	for col, aliases := range columnAliases {
		if _, ok := rec[col]; ok {
			continue
		}
		rec[col] = ""
		for _, alias := range aliases {
			if v, ok := rec[alias]; ok {
				rec[col] = v
				delete(rec, alias)
				break
			}
		}
	}

	rec["Language_ID"] = ""
	rec["Feature_ID"] = NormalizedFeatureID(rec["Feature_ID"])
	rec["Value"] = NormalizedValue(rec["Value"])
	rec["Comment"] = NormalizeComment(rec["Comment"])
	return rec
}

// contributorRe extracts coder initials from a Contributed_Datapoint cell.
var contributorRe = regexp.MustCompile(`[A-Z]+`)

// Contributors parses coder initials ("JS HJH" -> ["JS", "HJH"]).
func Contributors(s string) []string {
	return contributorRe.FindAllString(s, -1)
}
