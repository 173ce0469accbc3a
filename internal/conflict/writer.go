package conflict

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Header is the column layout of a merged review sheet. Classification
// and Select stay empty for the reviewer to fill in.
var Header = []string{
	"Feature_ID",
	"Value",
	"Conflict",
	"Classification of conflict",
	"Select",
	"Sheet",
	"Source",
	"Comment",
	"Warnings",
}

// WriteTSV writes the merged groups as a tab-separated review sheet.
func WriteTSV(w io.Writer, groups []Group) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, g := range groups {
		for _, o := range g.Rows {
			row := []string{
				g.FeatureID,
				o.Record["Value"],
				strconv.FormatBool(g.Conflict),
				"",
				"",
				o.Sheet,
				o.Record["Source"],
				o.Record["Comment"],
				o.Warnings,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing row for %s: %w", g.FeatureID, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
