package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const allocationSheet = "Allocation"

type AllocationRow struct {
	SalesPageID string
	Weight      float64
	ExactShare  float64
	FloorCount  int
	Remainder   float64
	Count       int
	Percentage  float64
}

type AllocationReport struct {
	Channel     string
	Total       int
	GeneratedAt time.Time
	Rows        []AllocationRow
}

var allocationHeaders = []string{
	"Sales Page", "Weight", "Exact Share", "Floor", "Remainder", "Allocated", "Percentage",
}

// WriteAllocationExcel renders the report as a single sheet workbook.
func WriteAllocationExcel(w io.Writer, report *AllocationReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", allocationSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := fillAllocationSheet(f, allocationSheet, report); err != nil {
		return fmt.Errorf("failed to create allocation sheet: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write allocation workbook: %w", err)
	}
	return nil
}

func fillAllocationSheet(f *excelize.File, sheet string, report *AllocationReport) error {
	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "G", 14)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	row := 1
	f.SetCellValue(sheet, cell("A", row), "Traffic Allocation Report")
	f.SetCellStyle(sheet, cell("A", row), cell("G", row), titleStyle)
	f.MergeCell(sheet, cell("A", row), cell("G", row))
	row += 2

	for _, meta := range [][2]interface{}{
		{"Channel:", report.Channel},
		{"Total Visitors:", report.Total},
		{"Generated:", report.GeneratedAt.Format("2006-01-02 15:04:05")},
	} {
		f.SetCellValue(sheet, cell("A", row), meta[0])
		f.SetCellStyle(sheet, cell("A", row), cell("A", row), labelStyle)
		f.SetCellValue(sheet, cell("B", row), meta[1])
		row++
	}
	row++

	headerRow := row
	for i, h := range allocationHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, cell(col, row), h)
	}
	f.SetCellStyle(sheet, cell("A", row), cell("G", row), headerStyle)
	row++

	allocated := 0
	for _, r := range report.Rows {
		f.SetCellValue(sheet, cell("A", row), r.SalesPageID)
		f.SetCellValue(sheet, cell("B", row), r.Weight)
		f.SetCellValue(sheet, cell("C", row), fmt.Sprintf("%.4f", r.ExactShare))
		f.SetCellValue(sheet, cell("D", row), r.FloorCount)
		f.SetCellValue(sheet, cell("E", row), fmt.Sprintf("%.4f", r.Remainder))
		f.SetCellValue(sheet, cell("F", row), r.Count)
		f.SetCellValue(sheet, cell("G", row), fmt.Sprintf("%.2f%%", r.Percentage))
		allocated += r.Count
		row++
	}

	f.SetCellValue(sheet, cell("A", row), "Total")
	f.SetCellStyle(sheet, cell("A", row), cell("A", row), labelStyle)
	f.SetCellValue(sheet, cell("F", row), allocated)

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: cell("A", headerRow+1),
		ActivePane:  "bottomLeft",
	})
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
