package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")

	if err := ExportXLSX(path, buildTestResult()); err != nil {
		t.Fatalf("ExportXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{"Summary", "Sticks", "Cut List", "Offcuts", "Unassigned"}
	if len(sheets) != len(want) {
		t.Fatalf("expected sheets %v, got %v", want, sheets)
	}
	for _, name := range want {
		if idx, _ := f.GetSheetIndex(name); idx < 0 {
			t.Errorf("missing sheet %s", name)
		}
	}

	// Summary sheet carries the headline numbers.
	val, err := f.GetCellValue("Summary", "B2")
	if err != nil {
		t.Fatal(err)
	}
	if val != "1" {
		t.Errorf("expected 1 stick used, got %q", val)
	}

	// Cut list has a header plus one row per placed part.
	rows, err := f.GetRows("Cut List")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Errorf("expected header and 3 cut rows, got %d rows", len(rows))
	}
}

func TestExportXLSX_NoUnassignedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")

	result := buildTestResult()
	result.Unassigned = nil
	if err := ExportXLSX(path, result); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex("Unassigned"); idx >= 0 {
		t.Error("unassigned sheet should be omitted when everything placed")
	}
}
