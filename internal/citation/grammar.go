package citation

import (
	"regexp"
	"strings"
)

// A grammar recognizes one citation writing convention in a source-field
// segment. Grammars are tried in a fixed order; the first match wins, so
// each stays independently testable.
type grammar struct {
	id        string
	re        *regexp.Regexp
	condensed bool
}

const pagesPattern = `(?::\s*(?P<p>[\d,\s\-]+))?`

var (
	// fullReference covers "Author, Some Title (1990: 12-15)" shapes:
	// a comma after the author, then non-digit filler, then a
	// parenthesized tail. The year group is empty by construction (it
	// captures the position before the pages), so this grammar accepts
	// any parenthesized tail regardless of the claimed year. That is
	// long-standing behavior which downstream matching depends on: an
	// empty year is a substring of every recorded year.
	fullReference = grammar{
		id: "full",
		re: regexp.MustCompile(`^(?P<a>[^,]+),[^(\d]+[\s(](?P<y>)\s*` + pagesPattern + `\)?`),
	}

	// inline covers informally written citations like "Smith 1990: 45-50"
	// or "Van der Berg (2004)": a capitalized author run directly followed
	// by a four-digit year or a no-date marker. The leading alternation
	// anchors the author at the segment start, after whitespace, or after
	// an opening parenthesis.
	inline = grammar{
		id: "inline",
		re: regexp.MustCompile(`(?:^|[\s(])(?P<a>[ÅŠŽA-Zvd][a-z]*\D*[^\d,.])\.?\s\(?(?P<y>\d\d\d\d|no date|n.d.|[Nn][Dd])` + pagesPattern + `\)?`),
	}

	// condensedReference is the fallback for citations written without
	// separators, e.g. "Gwynn&Krishnamurti1985, p.144".
	condensedReference = grammar{
		id:        "condensed",
		re:        regexp.MustCompile(`^(?P<a>[A-Z][a-zA-Z&]+)(?P<y>[0-9]{4}),\s+p\.\s*(?P<p>[\d,\s\-]+(?:ff?\.)?)$`),
		condensed: true,
	}

	// grammars in precedence order.
	grammars = []grammar{fullReference, inline, condensedReference}
)

// match applies the grammar to one trimmed segment.
func (g grammar) match(segment string) (Fragment, bool) {
	m := g.re.FindStringSubmatch(segment)
	if m == nil {
		return Fragment{}, false
	}
	frag := Fragment{
		AuthorText: m[g.re.SubexpIndex("a")],
		YearText:   m[g.re.SubexpIndex("y")],
		Pages:      strings.TrimSpace(m[g.re.SubexpIndex("p")]),
		Condensed:  g.condensed,
	}
	if g.condensed {
		// The condensed convention joins authors with "&"; expand it so
		// author matching sees the same separator as the other grammars.
		frag.AuthorText = strings.ReplaceAll(frag.AuthorText, "&", " and ")
	}
	return frag, true
}
