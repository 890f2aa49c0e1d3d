package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"benchgate/domain/core"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoad_CommaDelimited(t *testing.T) {
	path := writeFixture(t, "data.csv",
		"Date,kWh,Therms,Demand\n2024-01-15,1000,50,75\n")

	tbl, err := NewDataReader(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tbl.ColumnCount() != 4 || tbl.RowCount() != 1 {
		t.Errorf("Expected 4 columns and 1 row, got %d and %d",
			tbl.ColumnCount(), tbl.RowCount())
	}
}

func TestLoad_AlternateDelimiters(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"semi.csv", "Date;kWh;Therms;Demand\n2024-01-15;1000;50;75\n"},
		{"tab.tsv", "Date\tkWh\tTherms\tDemand\n2024-01-15\t1000\t50\t75\n"},
		{"pipe.csv", "Date|kWh|Therms|Demand\n2024-01-15|1000|50|75\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFixture(t, tc.name, tc.content)
			tbl, err := NewDataReader(path).Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if tbl.ColumnCount() != 4 {
				t.Errorf("Expected 4 columns, got %d: %v", tbl.ColumnCount(), tbl.Headers())
			}
			if !tbl.HasColumn("kWh") {
				t.Errorf("Expected kWh column, headers %v", tbl.Headers())
			}
		})
	}
}

func TestLoad_DelimiterPriorityOrder(t *testing.T) {
	// Both comma and semicolon would yield multiple columns; comma is
	// tried first so the semicolons stay inside the cells.
	path := writeFixture(t, "mixed.csv", "a;x,b\n1;2,3\n")

	tbl, err := NewDataReader(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tbl.ColumnCount() != 2 {
		t.Fatalf("Expected comma split into 2 columns, got %d", tbl.ColumnCount())
	}
	if tbl.Headers()[0] != "a;x" {
		t.Errorf("Expected first header %q, got %q", "a;x", tbl.Headers()[0])
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")
	_, err := NewDataReader(path).Load()
	if !errors.Is(err, core.ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestLoad_SingleColumnRejected(t *testing.T) {
	path := writeFixture(t, "one.csv", "header\nvalue\n")
	_, err := NewDataReader(path).Load()
	if !errors.Is(err, core.ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat, got %v", err)
	}
}

func TestLoad_EmptyFileRejected(t *testing.T) {
	path := writeFixture(t, "empty.csv", "")
	_, err := NewDataReader(path).Load()
	if !errors.Is(err, core.ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat, got %v", err)
	}
}

func TestLoad_CellWhitespaceTrimmed(t *testing.T) {
	path := writeFixture(t, "spaced.csv",
		"Date , kWh\n2024-01-15 , 1000 \n")

	tbl, err := NewDataReader(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	col, ok := tbl.Column("kWh")
	if !ok {
		t.Fatalf("Expected trimmed header kWh, got %v", tbl.Headers())
	}
	if col[0] != "1000" {
		t.Errorf("Expected trimmed cell %q, got %q", "1000", col[0])
	}
}

func TestLoad_RaggedRowsNormalized(t *testing.T) {
	path := writeFixture(t, "ragged.csv",
		"Date,kWh,Therms\n2024-01-15,1000\n2024-02-15,1100,55,extra\n")

	tbl, err := NewDataReader(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	col, _ := tbl.Column("Therms")
	if col[0] != "" || col[1] != "55" {
		t.Errorf("Expected padded/truncated Therms column [\"\" 55], got %v", col)
	}
}

func TestLoad_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	rows := [][]any{
		{"Date", "kWh", "Therms", "Demand"},
		{"2024-01-15", 1000, 50, 75},
		{"2024-02-15", 1100, 55, 80},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	tbl, err := NewDataReader(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tbl.RowCount() != 2 || tbl.ColumnCount() != 4 {
		t.Errorf("Expected 2 rows and 4 columns, got %d and %d",
			tbl.RowCount(), tbl.ColumnCount())
	}
	col, ok := tbl.Column("kWh")
	if !ok || col[0] != "1000" {
		t.Errorf("Expected kWh column with first value 1000, got %v", col)
	}
}

func TestNewDataReader_TypeDetection(t *testing.T) {
	if r := NewDataReader("report.XLSX"); r.fileType != "xlsx" {
		t.Errorf("Expected xlsx detection to be case-insensitive, got %s", r.fileType)
	}
	if r := NewDataReader("report.csv"); r.fileType != "delimited" {
		t.Errorf("Expected delimited for .csv, got %s", r.fileType)
	}
	if r := NewDataReader("report.txt"); r.fileType != "delimited" {
		t.Errorf("Expected delimited fallback for unknown extensions, got %s", r.fileType)
	}
}
