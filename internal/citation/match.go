package citation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/glottolab/gramsheet/internal/bib"
)

var (
	// authorSepRe splits a multi-author clause list: "Smith & Jones",
	// "Smith/Jones", "Smith and Jones".
	authorSepRe = regexp.MustCompile(`\s*[&/]\s*| and `)
	// tokenSepRe splits a clause into tokens.
	tokenSepRe = regexp.MustCompile(`[\s,.\-]+`)
)

// surname particles skipped when picking the surname token of a clause.
var particleTokens = map[string]bool{
	"De": true, "Da": true, "Van": true, "Von": true,
	"Van den": true, "Van der": true, "Von der": true,
}

// AuthorMatches reports whether the extracted author string is accounted
// for by a bibliography entry's author field, optionally extended with
// extra co-author surnames known for the entry's key.
//
// Matching is conjunctive: every author clause in extracted must match a
// candidate surname. "Smith & Jones" therefore matches "Smith, A. and
// Jones, B." but not "Smith, A." alone.
func AuthorMatches(extracted, entryAuthorField string, extraSurnames []string) bool {
	candidates := make(map[string]bool)
	for _, n := range bib.ParseAuthors(entryAuthorField) {
		if s := strings.ToLower(Undiacritic(n.Last)); s != "" {
			candidates[s] = true
		}
	}
	for _, s := range extraSurnames {
		if s = strings.ToLower(Undiacritic(s)); s != "" {
			candidates[s] = true
		}
	}
	if len(candidates) == 0 {
		return false
	}

	for _, clause := range authorSepRe.Split(extracted, -1) {
		if !clauseMatches(Undiacritic(clause), candidates) {
			return false
		}
	}
	return true
}

// clauseMatches checks one author clause against the candidate surnames.
// The clause's surname token must appear as a whole token of a candidate.
func clauseMatches(clause string, candidates map[string]bool) bool {
	tok := surnameToken(clause)
	if tok == "" {
		return false
	}
	tok = strings.ToLower(tok)
	for cand := range candidates {
		for _, ct := range tokenSepRe.Split(cand, -1) {
			if ct == tok {
				return true
			}
		}
	}
	return false
}

// surnameToken returns the clause's first capitalized token that is not a
// surname particle, or "" if there is none.
func surnameToken(clause string) string {
	for _, tok := range tokenSepRe.Split(clause, -1) {
		if tok == "" || particleTokens[tok] {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(tok); unicode.IsUpper(r) {
			return tok
		}
	}
	return ""
}
