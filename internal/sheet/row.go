package sheet

import (
	"strings"

	"github.com/glottolab/gramsheet/internal/catalog"
)

// Row is one validated feature coding.
type Row struct {
	FeatureID     string
	Value         string
	Source        string
	Comment       string
	Contributors  []string
	SourceComment string
}

// RowFromRecord builds a Row from a normalized record. Any column whose
// name contains both "ontributed" and "atapoint" feeds the contributor
// list; sheets spell that header many ways.
func RowFromRecord(rec map[string]string) Row {
	row := Row{
		FeatureID: rec["Feature_ID"],
		Value:     rec["Value"],
		Source:    rec["Source"],
		Comment:   rec["Comment"],
	}
	for k, v := range rec {
		if strings.Contains(k, "ontributed") && strings.Contains(k, "atapoint") {
			row.Contributors = Contributors(v)
			break
		}
	}
	if v, ok := rec["Source_comment"]; ok {
		row.SourceComment = v
	}
	return row
}

// ValidRows returns the sheet's rows that pass validation, in sheet
// order.
func (s *Sheet) ValidRows(cat *catalog.Catalog) ([]Row, error) {
	recs, err := s.Records()
	if err != nil {
		return nil, err
	}
	var rows []Row
	for _, rec := range recs {
		if ValidRecord(rec, cat, nil, nil) {
			rows = append(rows, RowFromRecord(rec))
		}
	}
	return rows, nil
}
