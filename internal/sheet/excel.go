package sheet

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportMeta is the client block printed at the top of the workbook.
type ExportMeta struct {
	ClientName string
	Mobile     string
	Travelers  int
	Reference  string
	TravelDate string
}

var exportHeaders = []string{
	"Date", "Place", "Hotel Name", "Category", "Meal Type",
	"Room Price (₹)", "Room Count", "Total Room (₹)",
	"Extra Bed Count", "Extra Bed Price (₹)", "Total Extra (₹)", "Notes",
}

var exportColWidths = []float64{12, 16, 28, 12, 12, 16, 12, 18, 15, 18, 18, 35}

// ExportFilename derives the download filename from the client name.
func ExportFilename(clientName string, now time.Time) string {
	if clientName == "" {
		clientName = "client"
	}
	safe := make([]rune, 0, len(clientName))
	for _, r := range clientName {
		if r == ' ' {
			r = '-'
		}
		safe = append(safe, r)
	}
	return fmt.Sprintf("Tour-Sheet-%s-%s.xlsx", string(safe), now.Format("2006-01-02"))
}

// BuildWorkbook renders the worksheet as an xlsx file: client block, the day
// rows excluding removed tombstones, the transport block, and the summary
// rows.  It returns the encoded file bytes.
func BuildWorkbook(s *Sheet, meta ExportMeta) ([]byte, error) {
	f := excelize.NewFile()
	name := f.GetSheetName(0)
	if err := f.SetSheetName(name, "Tour Sheet"); err != nil {
		return nil, err
	}
	name = "Tour Sheet"

	rowIdx := 1
	writeRow := func(values ...any) error {
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return err
			}
		}
		rowIdx++
		return nil
	}

	travelers := meta.Travelers
	if travelers <= 0 {
		travelers = s.Budget.Pax
	}
	header := [][]any{
		{fmt.Sprintf("Client Name: %s", orNA(meta.ClientName))},
		{fmt.Sprintf("Mobile: %s", orNA(meta.Mobile))},
		{fmt.Sprintf("Total Travelers: %d", travelers)},
		{fmt.Sprintf("Booking ID: #%s", meta.Reference)},
		{fmt.Sprintf("Trip Dates: %s", meta.TravelDate)},
		{},
		{},
	}
	for _, values := range header {
		if err := writeRow(values...); err != nil {
			return nil, err
		}
	}

	headerRow := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		headerRow[i] = h
	}
	headerRowIdx := rowIdx
	if err := writeRow(headerRow...); err != nil {
		return nil, err
	}

	for _, row := range s.Rows {
		if row.Type != RowDay || row.Removed {
			continue
		}
		err := writeRow(
			row.Date, row.Place, row.HotelName, row.Category, row.MealType,
			row.DoubleRoomPrice, row.RoomCount, row.TotalRoomPrice,
			row.ExtraBedCount, row.ExtraBedPrice, row.TotalExtraPrice,
			row.HotelNotes,
		)
		if err != nil {
			return nil, err
		}
	}

	sections := [][]any{
		{},
		{"Transport Details"},
		{},
	}
	for _, values := range sections {
		if err := writeRow(values...); err != nil {
			return nil, err
		}
	}
	if t := s.transportRow(); t != nil && t.Transport != nil {
		td := t.Transport
		transportLines := [][]any{
			{"Vehicle KM", td.VehicleKm},
			{"Price per KM (₹)", td.VehiclePricePerKm},
			{"Calculated Vehicle Cost (₹)", td.CalculatedVehicleTotal},
			{"Additional Charges Total (₹)", s.Budget.AdditionalChargesTotal},
			{"Total Transport Cost (₹)", s.Budget.TransportTotal},
		}
		for _, values := range transportLines {
			if err := writeRow(values...); err != nil {
				return nil, err
			}
		}
	}

	summarySections := [][]any{
		{},
		{"Summary"},
		{},
	}
	for _, values := range summarySections {
		if err := writeRow(values...); err != nil {
			return nil, err
		}
	}
	for _, row := range s.Rows {
		if row.Type != RowSummary {
			continue
		}
		if err := writeRow(row.Label, row.Value); err != nil {
			return nil, err
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "1E40AF"},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(name, "A1", "A5", titleStyle); err != nil {
		return nil, err
	}
	headStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E40AF"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	first, err := excelize.CoordinatesToCellName(1, headerRowIdx)
	if err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(exportHeaders), headerRowIdx)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(name, first, last, headStyle); err != nil {
		return nil, err
	}

	for i, w := range exportColWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(name, col, col, w); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
