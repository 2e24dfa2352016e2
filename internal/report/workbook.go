package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"reportengine.dev/internal/dataset"
)

// WriteWorkbook writes the evaluated table and summary to an XLSX workbook
// with a Results sheet and a Summary sheet, as a spreadsheet-friendly
// companion to the PDF.
func WriteWorkbook(path string, table dataset.Table, summary dataset.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	const results = "Results"
	f.SetSheetName("Sheet1", results)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("workbook style: %w", err)
	}
	failStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Color: "CC0000"}})
	if err != nil {
		return fmt.Errorf("workbook style: %w", err)
	}

	for col, name := range detailHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(results, cell, name)
		f.SetCellStyle(results, cell, cell, headerStyle)
	}

	for i, row := range table {
		r := i + 2
		values := []interface{}{row.SampleID, row.TestName, row.Value, row.LowerLimit, row.UpperLimit, row.Unit, string(row.Status)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			f.SetCellValue(results, cell, v)
		}
		if row.Status == dataset.StatusFail {
			cell, _ := excelize.CoordinatesToCellName(len(values), r)
			f.SetCellStyle(results, cell, cell, failStyle)
		}
	}

	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("workbook sheet: %w", err)
	}
	pairs := []struct {
		key   string
		value interface{}
	}{
		{"Total Measurements", summary.Total},
		{"Pass Count", summary.PassCount},
		{"Fail Count", summary.FailCount},
		{"Pass Rate", fmt.Sprintf("%.2f%%", summary.PassRate)},
		{"Overall Verdict", string(summary.OverallVerdict)},
	}
	for i, p := range pairs {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valCell, _ := excelize.CoordinatesToCellName(2, i+1)
		f.SetCellValue(sheet, keyCell, p.key)
		f.SetCellValue(sheet, valCell, p.value)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
