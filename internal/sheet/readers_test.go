package sheet

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadTable_TSV(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, "JS_abcd1234.tsv",
		"Feature_ID\tValue\tSource\tComment\nGB020\t1\tSmith 1990\nGB021\t0\tJones 2001\textra note\n")

	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	want := &Table{
		Header: []string{"Feature_ID", "Value", "Source", "Comment"},
		Rows: [][]string{
			{"GB020", "1", "Smith 1990", ""}, // short row padded
			{"GB021", "0", "Jones 2001", "extra note"},
		},
	}
	if !reflect.DeepEqual(table, want) {
		t.Errorf("table = %+v, want %+v", table, want)
	}
}

func TestReadTable_TSVWithBOM(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, "JS_abcd1234.tsv",
		"\ufeffFeature_ID\tValue\tSource\tComment\n")

	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if table.Header[0] != "Feature_ID" {
		t.Errorf("header[0] = %q, want BOM stripped", table.Header[0])
	}
}

func TestReadTable_CSVComma(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, "JS_abcd1234.csv",
		"Feature_ID,Value,Source,Comment\nGB020,1,\"Smith, John 1990\",\n")

	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if len(table.Rows) != 1 || table.Rows[0][2] != "Smith, John 1990" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestReadTable_CSVSemicolonSniffed(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, "JS_abcd1234.csv",
		"Feature_ID;Value;Source;Comment\nGB020;1;Smith 1990;\n")

	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	want := []string{"Feature_ID", "Value", "Source", "Comment"}
	if !reflect.DeepEqual(table.Header, want) {
		t.Errorf("header = %v, want %v", table.Header, want)
	}
	if len(table.Rows) != 1 || table.Rows[0][0] != "GB020" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestReadTable_XLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "JS_abcd1234.xlsx")

	wb := excelize.NewFile()
	rows := [][]interface{}{
		{"Feature_ID", "Value", "Source", "Column4"},
		{"GB020", "1", "Smith 1990", "filler"},
		{}, // empty row skipped
		{"GB021", "0", "Jones 2001"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := wb.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("saving workbook: %v", err)
	}
	if err := wb.Close(); err != nil {
		t.Fatal(err)
	}

	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	wantHeader := []string{"Feature_ID", "Value", "Source"}
	if !reflect.DeepEqual(table.Header, wantHeader) {
		t.Errorf("header = %v, want filler column dropped: %v", table.Header, wantHeader)
	}
	wantRows := [][]string{
		{"GB020", "1", "Smith 1990"},
		{"GB021", "0", "Jones 2001"},
	}
	if !reflect.DeepEqual(table.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", table.Rows, wantRows)
	}
}

func TestReadTable_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, "JS_abcd1234.txt", "Feature_ID\n")
	if _, err := ReadTable(path); err == nil {
		t.Error("want error for unsupported extension")
	}
}
