package sheet

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestBuildWorkbook_LayoutAndTombstones(t *testing.T) {
	in := baseInput()
	prev := Reconcile(in, nil)
	in.Days = in.Days[:1] // Udaipur becomes a tombstone
	s := Reconcile(in, prev)

	data, err := BuildWorkbook(s, ExportMeta{
		ClientName: "Asha Verma",
		Mobile:     "9876500000",
		Travelers:  4,
		Reference:  "RT007",
		TravelDate: "10-01-2025",
	})
	if err != nil {
		t.Fatalf("BuildWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	if f.GetSheetName(0) != "Tour Sheet" {
		t.Fatalf("sheet name = %q, want Tour Sheet", f.GetSheetName(0))
	}
	if v, _ := f.GetCellValue("Tour Sheet", "A1"); v != "Client Name: Asha Verma" {
		t.Fatalf("A1 = %q", v)
	}
	if v, _ := f.GetCellValue("Tour Sheet", "A4"); v != "Booking ID: #RT007" {
		t.Fatalf("A4 = %q", v)
	}
	// column header row follows the 7-line client block
	if v, _ := f.GetCellValue("Tour Sheet", "A8"); v != "Date" {
		t.Fatalf("A8 = %q, want Date header", v)
	}

	rows, err := f.GetRows("Tour Sheet")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	var flat []string
	for _, row := range rows {
		flat = append(flat, strings.Join(row, "|"))
	}
	body := strings.Join(flat, "\n")
	if !strings.Contains(body, "Hotel Amber") {
		t.Fatalf("day row missing from export:\n%s", body)
	}
	if strings.Contains(body, "Lake Palace") {
		t.Fatalf("tombstoned row leaked into export:\n%s", body)
	}
	if !strings.Contains(body, "Grand Total") {
		t.Fatalf("summary rows missing from export:\n%s", body)
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC)
	got := ExportFilename("Asha Verma", now)
	if got != "Tour-Sheet-Asha-Verma-2025-02-01.xlsx" {
		t.Fatalf("ExportFilename() = %q", got)
	}
	if got := ExportFilename("", now); got != "Tour-Sheet-client-2025-02-01.xlsx" {
		t.Fatalf("ExportFilename(empty) = %q", got)
	}
}
