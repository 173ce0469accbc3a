// Package catalog loads the feature catalog: the features a sheet may
// code and the value domain of each.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Feature is one catalog entry.
type Feature struct {
	ID     string
	Name   string
	Domain map[string]bool // accepted coded values, "?" excluded
}

// Catalog indexes features by ID.
type Catalog struct {
	features map[string]*Feature
}

// New builds a catalog from features, for tests and callers that load
// from elsewhere.
func New(features ...*Feature) *Catalog {
	c := &Catalog{features: make(map[string]*Feature, len(features))}
	for _, f := range features {
		c.features[f.ID] = f
	}
	return c
}

// Feature returns the feature with the given ID, or nil.
func (c *Catalog) Feature(id string) *Feature {
	return c.features[id]
}

// Len returns the number of features.
func (c *Catalog) Len() int {
	return len(c.features)
}

// Load reads the catalog from a TSV file with Feature_ID, Name, and
// Domain columns. Domain cells list values as "0: absent; 1: present";
// the part before each colon is the coded value.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}

	col := make(map[string]int)
	for j, name := range records[0] {
		col[strings.TrimPrefix(name, "\ufeff")] = j
	}
	idCol, ok := col["Feature_ID"]
	if !ok {
		if idCol, ok = col["Grambank ID"]; !ok {
			return nil, fmt.Errorf("catalog %s has no Feature_ID column", path)
		}
	}
	nameCol, hasName := col["Name"]
	domainCol, hasDomain := col["Domain"]
	if !hasDomain {
		domainCol, hasDomain = col["Possible Values"]
	}

	c := &Catalog{features: make(map[string]*Feature)}
	for _, rec := range records[1:] {
		if idCol >= len(rec) || strings.TrimSpace(rec[idCol]) == "" {
			continue
		}
		feature := &Feature{
			ID:     strings.TrimSpace(rec[idCol]),
			Domain: make(map[string]bool),
		}
		if hasName && nameCol < len(rec) {
			feature.Name = strings.TrimSpace(rec[nameCol])
		}
		if hasDomain && domainCol < len(rec) {
			for v := range ParseDomain(rec[domainCol]) {
				feature.Domain[v] = true
			}
		}
		c.features[feature.ID] = feature
	}
	return c, nil
}

// ParseDomain parses a domain cell into its coded values. "?" never
// belongs to a domain; it is handled by validation directly.
func ParseDomain(cell string) map[string]bool {
	domain := make(map[string]bool)
	for _, part := range strings.Split(cell, ";") {
		v := part
		if i := strings.Index(part, ":"); i >= 0 {
			v = part[:i]
		}
		if v = strings.TrimSpace(v); v != "" && v != "?" {
			domain[v] = true
		}
	}
	return domain
}
