package sheet

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is raw tabular sheet content: one header row plus data rows, each
// padded to the header width.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable reads a sheet file, dispatching on the extension. Supported
// formats are .tsv, .csv, and .xlsx.
func ReadTable(path string) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".tsv":
		return readDelimited(path, '\t')
	case ".csv":
		delim, err := sniffCSVDelimiter(path)
		if err != nil {
			return nil, err
		}
		return readDelimited(path, delim)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported sheet format %q", ext)
	}
}

func readDelimited(path string, delim rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	t := &Table{Header: header}
	for _, row := range records[1:] {
		t.Rows = append(t.Rows, padRow(row, len(header)))
	}
	return t, nil
}

// sniffCSVDelimiter picks ";" over "," when the header line uses it first.
func sniffCSVDelimiter(path string) (rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return ',', nil
	}
	semi, comma := strings.IndexByte(line, ';'), strings.IndexByte(line, ',')
	if semi != -1 && (comma == -1 || semi < comma) {
		return ';', nil
	}
	return ',', nil
}

// fillerColumnRe matches auto-generated "Column<N>" headers; a few sheets
// carry thousands of them.
var fillerColumnRe = regexp.MustCompile(`^Column[0-9]+$`)

// maxEmptyRows caps how many consecutive empty rows readXLSX tolerates
// before assuming the rest of the sheet is padding.
const maxEmptyRows = 1000

func readXLSX(path string) (*Table, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer wb.Close()

	name := wb.GetSheetName(wb.GetActiveSheetIndex())
	rows, err := wb.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	skip := make(map[int]bool)
	for j, cell := range rows[0] {
		if fillerColumnRe.MatchString(cell) {
			skip[j] = true
		}
	}

	t := &Table{Header: filterCells(rows[0], skip)}
	empty := 0
	for _, row := range rows[1:] {
		cells := padRow(filterCells(row, skip), len(t.Header))
		if isEmptyRow(cells) {
			if empty++; empty > maxEmptyRows {
				break
			}
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

func filterCells(row []string, skip map[int]bool) []string {
	if len(skip) == 0 {
		return row
	}
	out := make([]string, 0, len(row))
	for j, cell := range row {
		if !skip[j] {
			out = append(out, cell)
		}
	}
	return out
}

func padRow(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row[:width]
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
