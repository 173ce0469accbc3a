package citation

import "strings"

// Tokenizer splits a raw source field into citation fragments.
//
// The zero value is ready to use. Tokenize is a pure function of its
// input; OnDrop only observes, it cannot alter the result.
type Tokenizer struct {
	// OnDrop, if set, is called with every non-empty segment that no
	// grammar recognized. Unparseable segments are dropped silently by
	// design: source text is uncontrolled human writing and extraction is
	// best-effort.
	OnDrop func(segment string)
}

// Tokenize splits source on ";" (after normalizing "), " separators) and
// parses each segment with the ordered grammars. Personal-communication
// segments ("pc ... p.c. ...") never become fragments.
//
// A title hint introduced by the "Author_titleword" convention carries
// over to the following fragments of the same source field.
func (t *Tokenizer) Tokenize(source string) []Fragment {
	var frags []Fragment
	hint := ""
	for _, seg := range strings.Split(strings.ReplaceAll(source, "), ", "); "), ";") {
		trimmed := strings.TrimSpace(seg)
		if strings.Contains(seg, "p.c.") && strings.HasPrefix(trimmed, "pc") {
			continue
		}

		frag, ok := matchSegment(trimmed)
		if !ok {
			if trimmed != "" && t.OnDrop != nil {
				t.OnDrop(trimmed)
			}
			continue
		}

		if i := strings.Index(frag.AuthorText, "_"); i != -1 {
			hint = strings.ToLower(frag.AuthorText[i+1:])
			frag.AuthorText = frag.AuthorText[:i]
		}
		frag.TitleHint = hint
		frags = append(frags, frag)
	}
	return frags
}

// matchSegment tries each grammar in precedence order.
func matchSegment(segment string) (Fragment, bool) {
	for _, g := range grammars {
		if frag, ok := g.match(segment); ok {
			return frag, true
		}
	}
	return Fragment{}, false
}
