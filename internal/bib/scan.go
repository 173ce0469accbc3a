package bib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// The scanner is line-oriented rather than a full BibTeX grammar: it
// recognizes entry heads and "name = value" field lines and concatenates
// continuation lines until braces balance. That covers the reference
// bibliographies this tool consumes; full BibTeX compliance is a non-goal.
var (
	entryStartRe = regexp.MustCompile(`^\s*@(\w+)\s*\{\s*([^,\s]+)\s*,`)
	fieldStartRe = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z_]*)\s*=\s*(.*)$`)
)

// ScanFile reads a .bib file into entries keyed by bibliography key.
func ScanFile(path string) (map[string]*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bibliography: %w", err)
	}
	defer f.Close()
	entries, err := Scan(f)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return entries, nil
}

// Scan reads BibTeX-style entries from r.
func Scan(r io.Reader) (map[string]*Entry, error) {
	entries := make(map[string]*Entry)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		curKey    string
		curFields map[string]string
		fieldName string
		fieldBuf  string
	)

	flushField := func() {
		if fieldName != "" && curFields != nil {
			curFields[fieldName] = cleanFieldValue(fieldBuf)
		}
		fieldName, fieldBuf = "", ""
	}
	finishEntry := func() {
		flushField()
		if curKey != "" {
			entries[curKey] = entryFromFields(curKey, curFields)
		}
		curKey, curFields = "", nil
	}

	for scanner.Scan() {
		line := scanner.Text()

		if m := entryStartRe.FindStringSubmatch(line); m != nil {
			finishEntry()
			switch strings.ToLower(m[1]) {
			case "comment", "preamble", "string":
				// Not bibliographic entries.
			default:
				curKey = m[2]
				curFields = make(map[string]string)
			}
			continue
		}
		if curFields == nil {
			continue
		}

		if fieldName != "" {
			// Continuation of a multi-line field value.
			fieldBuf += " " + strings.TrimSpace(line)
			if braceBalance(fieldBuf) <= 0 {
				flushField()
			}
			continue
		}

		if m := fieldStartRe.FindStringSubmatch(line); m != nil {
			fieldName = strings.ToLower(m[1])
			fieldBuf = strings.TrimSpace(m[2])
			if braceBalance(fieldBuf) <= 0 {
				flushField()
			}
			continue
		}

		if strings.TrimSpace(line) == "}" {
			finishEntry()
		}
	}
	finishEntry()

	return entries, scanner.Err()
}

func entryFromFields(key string, fields map[string]string) *Entry {
	return &Entry{
		Key:    key,
		Author: fields["author"],
		Year:   fields["year"],
		Title:  fields["title"],
		HHType: fields["hhtype"],
		InLg:   fields["inlg"],
		Lgcode: fields["lgcode"],
	}
}

// braceBalance returns open minus close brace count.
func braceBalance(s string) int {
	return strings.Count(s, "{") - strings.Count(s, "}")
}

// cleanFieldValue strips the delimiters and trailing comma from a raw
// field value and collapses internal whitespace.
func cleanFieldValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, ",")
	v = strings.TrimSpace(v)
	if len(v) >= 2 {
		if (v[0] == '{' && v[len(v)-1] == '}') || (v[0] == '"' && v[len(v)-1] == '"') {
			v = v[1 : len(v)-1]
		}
	}
	// Protective braces inside values carry no meaning for matching.
	v = strings.ReplaceAll(v, "{", "")
	v = strings.ReplaceAll(v, "}", "")
	return strings.Join(strings.Fields(v), " ")
}
