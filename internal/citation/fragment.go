// Package citation turns free-text source fields into structured
// bibliography references. It tokenizes a source string into citation
// fragments, matches extracted author names against bibliography entries,
// and disambiguates among candidate entries by source-type priority.
//
// The package never errors on malformed citation text; segments no grammar
// recognizes are dropped (observable via Tokenizer.OnDrop). The only error
// conditions are contract violations on the caller-supplied inputs.
package citation

// Fragment is one parsed citation extracted from a source field.
type Fragment struct {
	// AuthorText is the raw extracted author string; it may name several
	// authors ("Gwynn and Krishnamurti").
	AuthorText string
	// YearText is the extracted year. The full-reference grammar captures
	// an empty year by construction (see grammar.go); a fragment with an
	// empty YearText passes any year filter downstream.
	YearText string
	// Pages holds the extracted page specification; empty means the whole
	// work with no specific page.
	Pages string
	// TitleHint is a lowercased word the matching entry's title must
	// contain, taken from the "Author_titleword" convention.
	TitleHint string
	// Condensed marks fragments recognized by the condensed grammar
	// ("Gwynn&Krishnamurti1985, p.144").
	Condensed bool
}
