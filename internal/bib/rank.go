package bib

// typeRanks is the fixed priority table for source types. Higher means a
// more authoritative description; it breaks ties among multiple works
// matching the same citation.
var typeRanks = map[string]int{
	"grammar":          16,
	"grammar_sketch":   15,
	"dictionary":       14,
	"specific_feature": 13,
	"phonology":        12,
	"text":             11,
	"new_testament":    10,
	"wordlist":         9,
	"comparative":      8,
	"minimal":          7,
	"socling":          6,
	"dialectology":     5,
	"overview":         4,
	"ethnographic":     3,
	"bibliographical":  2,
	"unknown":          1,
}

// TypeRank returns the priority of a single type tag. Unlisted tags rank
// like "unknown".
func TypeRank(tag string) int {
	if n, ok := typeRanks[tag]; ok {
		return n
	}
	return typeRanks["unknown"]
}

// MaxTypeRank returns the highest rank among the entry's type tags.
func MaxTypeRank(e *Entry) int {
	best := 0
	for _, tag := range e.Types() {
		if n := TypeRank(tag); n > best {
			best = n
		}
	}
	return best
}

// IsEnglish reports whether the entry's language of description is exactly
// English.
func IsEnglish(e *Entry) bool {
	codes := LanguageCodes(e.InLg)
	return len(codes) == 1 && codes[0] == "eng"
}
