// Package sheet reads and validates coded survey sheets: one file per
// coder team and language variety, carrying one feature coding per row.
package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// namePattern is the sheet filename contract: coder initials (hyphen
// separated for teams) followed by the glottocode of the coded variety.
var namePattern = regexp.MustCompile(`^([A-Z]+(?:-[A-Z]+)*)_([a-z0-9]{4}[0-9]{4})\.(?:tsv|csv|xlsx)$`)

// NameError reports a sheet filename that violates the naming contract.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("invalid sheet name %q (want CODERS_glottocode.tsv)", e.Name)
}

// Sheet is one coded survey sheet on disk.
type Sheet struct {
	Path       string
	Coders     []string
	Glottocode string

	table *Table // lazily read, cached
}

// New parses the filename contract and returns the sheet. The file is not
// read until Table or Records is called.
func New(path string) (*Sheet, error) {
	m := namePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return nil, &NameError{Name: filepath.Base(path)}
	}
	return &Sheet{
		Path:       path,
		Coders:     strings.Split(m[1], "-"),
		Glottocode: m[2],
	}, nil
}

func (s *Sheet) String() string {
	return s.Path
}

// Stem returns the sheet name without directory and extension, used to
// identify the sheet in reports.
func (s *Sheet) Stem() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Table reads the raw sheet content, caching it for subsequent calls.
func (s *Sheet) Table() (*Table, error) {
	if s.table == nil {
		t, err := ReadTable(s.Path)
		if err != nil {
			return nil, err
		}
		s.table = t
	}
	return s.table, nil
}

// Records returns the sheet's rows as normalized records with the
// canonical columns, Language_ID filled from the sheet name.
func (s *Sheet) Records() ([]map[string]string, error) {
	t, err := s.Table()
	if err != nil {
		return nil, err
	}
	var recs []map[string]string
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.Header))
		for j, col := range t.Header {
			rec[col] = row[j]
		}
		rec = NormalizeRecord(rec)
		rec["Language_ID"] = s.Glottocode
		recs = append(recs, rec)
	}
	return recs, nil
}

// Discover returns the sheets in dir whose names satisfy the naming
// contract, sorted by glottocode then path.
func Discover(dir string) ([]*Sheet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading sheet directory: %w", err)
	}
	var sheets []*Sheet
	for _, e := range entries {
		if e.IsDir() || !namePattern.MatchString(e.Name()) {
			continue
		}
		sh, err := New(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		sheets = append(sheets, sh)
	}
	sort.Slice(sheets, func(i, j int) bool {
		if sheets[i].Glottocode != sheets[j].Glottocode {
			return sheets[i].Glottocode < sheets[j].Glottocode
		}
		return sheets[i].Path < sheets[j].Path
	})
	return sheets, nil
}
