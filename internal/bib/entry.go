// Package bib provides the bibliography store: parsed .bib entries with
// typed fields, author-name parsing, source-type priority ranking, and the
// language index consumed by citation resolution.
package bib

import (
	"regexp"
	"sort"
	"strings"
)

// Entry is one bibliographic work, keyed by an opaque bibliography key.
// Entries are read-only after loading.
type Entry struct {
	Key    string `json:"key"`
	Author string `json:"author"` // Raw author field, "Last, First and First Last" style
	Year   string `json:"year"`   // Raw year field; may carry ranges or qualifiers
	Title  string `json:"title"`
	HHType string `json:"hhtype"` // Source-type field, e.g. "grammar;wordlist"
	InLg   string `json:"inlg"`   // Language of description, e.g. "English [eng]"
	Lgcode string `json:"lgcode"` // Object language(s), e.g. "Telugu [tel]"
}

// typeAnnotationRe strips parenthetical annotations from type tags,
// e.g. "grammar (computerized assignment)" -> "grammar".
var typeAnnotationRe = regexp.MustCompile(`\s*\([^)]*\)`)

// Types returns the entry's parsed source-type tags, lowercased and with
// annotations stripped. Entries without a usable type field get "unknown".
func (e *Entry) Types() []string {
	var tags []string
	for _, part := range strings.FieldsFunc(e.HHType, func(r rune) bool {
		return r == ';' || r == ','
	}) {
		tag := strings.ToLower(strings.TrimSpace(typeAnnotationRe.ReplaceAllString(part, "")))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		tags = []string{"unknown"}
	}
	return tags
}

var bracketCodeRe = regexp.MustCompile(`\[([a-z][a-z][a-z]|[a-z0-9]{4}[0-9]{4}|NOCODE_[A-Za-z0-9-]+)\]`)
var bareCodeRe = regexp.MustCompile(`^(?:[a-z][a-z][a-z]|[a-z0-9]{4}[0-9]{4})$`)

// LanguageCodes extracts language codes (ISO 639-3 or glottocodes) from a
// field like "English [eng]" or "eng, deu". Codes are returned in field
// order.
func LanguageCodes(field string) []string {
	var codes []string
	for _, m := range bracketCodeRe.FindAllStringSubmatch(field, -1) {
		codes = append(codes, m[1])
	}
	if codes != nil {
		return codes
	}
	for _, part := range strings.FieldsFunc(field, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if part = strings.TrimSpace(part); bareCodeRe.MatchString(part) {
			codes = append(codes, part)
		}
	}
	return codes
}

// KeyAuthors returns the surnames encoded in a bibliography key, lowercased.
// Keys concatenate author surnames and a year, e.g. "gwynn-krishnamurti1985"
// or "s:Gwynn:Telugu". These serve as extra candidate surnames for entries
// whose author field omits co-authors.
func KeyAuthors(key string) []string {
	// Cut at the first digit; the surnames precede the year.
	head := key
	for i, r := range key {
		if r >= '0' && r <= '9' {
			head = key[:i]
			break
		}
	}
	var names []string
	for _, seg := range strings.FieldsFunc(head, func(r rune) bool {
		return r == '-' || r == ':' || r == '_'
	}) {
		seg = strings.ToLower(strings.TrimSpace(seg))
		if len(seg) > 1 {
			names = append(names, seg)
		}
	}
	return names
}

// BuildIndex builds the language index: language code -> sorted keys of
// entries describing that language (from the lgcode field).
func BuildIndex(entries map[string]*Entry) map[string][]string {
	index := make(map[string][]string)
	for key, e := range entries {
		for _, code := range LanguageCodes(e.Lgcode) {
			index[code] = append(index[code], key)
		}
	}
	for code := range index {
		sort.Strings(index[code])
	}
	return index
}
