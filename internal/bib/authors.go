package bib

import "strings"

// Name is one parsed author name from an entry's author field.
type Name struct {
	First string
	Last  string
}

// particles are lowercase surname particles that belong to the lastname
// when a name is written in "First Last" order.
var particles = map[string]bool{
	"van": true, "von": true, "de": true, "da": true, "den": true,
	"der": true, "del": true, "di": true, "la": true, "le": true,
	"ter": true, "ten": true,
}

// ParseAuthors parses a raw author field into name records. Authors are
// separated by " and "; each author is either "Last, First" or
// "First Last". Surname particles ("van", "de", ...) stay with the
// lastname in both orders.
func ParseAuthors(field string) []Name {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	var names []Name
	for _, part := range strings.Split(field, " and ") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		names = append(names, parseSingle(part))
	}
	return names
}

func parseSingle(s string) Name {
	if i := strings.Index(s, ","); i >= 0 {
		return Name{
			Last:  strings.TrimSpace(s[:i]),
			First: strings.TrimSpace(s[i+1:]),
		}
	}
	tokens := strings.Fields(s)
	if len(tokens) == 1 {
		return Name{Last: tokens[0]}
	}
	// "First Last": walk back from the final token, absorbing particles.
	start := len(tokens) - 1
	for start > 0 && particles[strings.ToLower(tokens[start-1])] {
		start--
	}
	return Name{
		First: strings.Join(tokens[:start], " "),
		Last:  strings.Join(tokens[start:], " "),
	}
}
