package citation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/glottolab/gramsheet/internal/bib"
)

// Resolver resolves whole source fields against a bibliography. All
// inputs are read-only; Resolve allocates a fresh Result per call, so
// calls may run concurrently across language entries.
type Resolver struct {
	// Entries maps bibliography keys to entries.
	Entries map[string]*bib.Entry
	// Index maps a language code to its candidate bibliography keys. A
	// language missing from the index (as opposed to mapped to an empty
	// set) is a contract violation and surfaces as a LookupError.
	Index map[string][]string
	// Tokenizer used for splitting source fields; nil means a default
	// tokenizer with no drop observer.
	Tokenizer *Tokenizer
	// ExtraSurnames supplies additional co-author surnames per key;
	// nil defaults to bib.KeyAuthors.
	ExtraSurnames func(key string) []string
	// Diagnostic, if set, receives classification notices (currently the
	// "pageonly" tag). The resolver only classifies; formatting and
	// reporting belong to the caller.
	Diagnostic func(tag, message string)
}

// Reference is one resolved work with the pages cited for it across all
// fragments of the source field. Empty Pages means the whole work.
type Reference struct {
	Key   string   `json:"key"`
	Pages []string `json:"pages,omitempty"`
}

// Unresolved records a citation that matched no bibliography entry and
// was not classified as free text. Either Author/Year (a tokenized
// fragment) or Raw (the whole source field) is set.
type Unresolved struct {
	Author   string `json:"author,omitempty"`
	Year     string `json:"year,omitempty"`
	Raw      string `json:"raw,omitempty"`
	Language string `json:"language"`
}

// Result is the outcome of resolving one source field. For non-empty
// input exactly one of References, Comment, Unresolved, or PageOnly
// describes the outcome.
type Result struct {
	References []Reference  `json:"references,omitempty"`
	Comment    string       `json:"comment,omitempty"` // the source kept as free text
	Unresolved []Unresolved `json:"unresolved,omitempty"`
	// PageOnly marks sources consisting only of page numbers and filler
	// ("22-25; 31 et seq."), pointing into the language's default source.
	PageOnly bool `json:"page_only,omitempty"`
}

// LookupError reports a language code absent from the bibliography index.
type LookupError struct {
	Language string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no bibliography index for language %q", e.Language)
}

// pageOnlyRe matches sources that carry only page numbers and filler.
var pageOnlyRe = regexp.MustCompile(`^[\d+;\s\-etseqpassim.]+$`)

// unavailableMarkers flag works in progress, personal communications, and
// other sources that cannot be in any bibliography.
var unavailableMarkers = []string{
	"p.c", "personal communication", "ieldnotes", "ield notes",
	"forth", "Forth", "ubmitted", "o appear",
	"in press", "in prep", "in prog",
}

func hasUnavailableMarker(src string) bool {
	for _, m := range unavailableMarkers {
		if strings.Contains(src, m) {
			return true
		}
	}
	return false
}

// Resolve tokenizes source, disambiguates each fragment against the
// index pool for language, and aggregates (key, pages) pairs into
// deduplicated, sorted references. When nothing resolves, the source is
// classified as page-only, free-text comment, or unresolved.
func (r *Resolver) Resolve(source, language string) (*Result, error) {
	if language == "" {
		return nil, errors.New("citation: empty language code")
	}
	keys, ok := r.Index[language]
	if !ok {
		return nil, &LookupError{Language: language}
	}

	tok := r.Tokenizer
	if tok == nil {
		tok = &Tokenizer{}
	}
	extra := r.ExtraSurnames
	if extra == nil {
		extra = bib.KeyAuthors
	}

	frags := tok.Tokenize(source)

	type pair struct{ key, pages string }
	seen := make(map[pair]bool)
	var pairs []pair
	for _, f := range frags {
		for _, k := range Candidates(f, keys, r.Entries, extra) {
			p := pair{key: k, pages: f.Pages}
			if !seen[p] {
				seen[p] = true
				pairs = append(pairs, p)
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].pages < pairs[j].pages
	})

	res := &Result{}
	for _, p := range pairs {
		if n := len(res.References); n == 0 || res.References[n-1].Key != p.key {
			res.References = append(res.References, Reference{Key: p.key})
		}
		if p.pages != "" {
			ref := &res.References[len(res.References)-1]
			ref.Pages = append(ref.Pages, p.pages)
		}
	}
	if len(res.References) > 0 {
		return res, nil
	}

	switch {
	case source == "":
		res.Unresolved = []Unresolved{{Raw: source, Language: language}}
	case pageOnlyRe.MatchString(source):
		res.PageOnly = true
		if r.Diagnostic != nil {
			r.Diagnostic("pageonly", fmt.Sprintf("[%s] default source: %s", language, source))
		}
	case !hasUnavailableMarker(source) && !strings.HasPrefix(source, "http"):
		res.Comment = source
	default:
		if len(frags) > 0 {
			seenU := make(map[Unresolved]bool)
			for _, f := range frags {
				u := Unresolved{Author: f.AuthorText, Year: f.YearText, Language: language}
				if !seenU[u] {
					seenU[u] = true
					res.Unresolved = append(res.Unresolved, u)
				}
			}
		} else {
			res.Unresolved = []Unresolved{{Raw: source, Language: language}}
		}
	}
	return res, nil
}
