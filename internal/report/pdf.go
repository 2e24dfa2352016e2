// Package report assembles the three-page PDF test report and the companion
// XLSX results workbook from an uploaded measurement CSV.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"reportengine.dev/internal/charts"
	"reportengine.dev/internal/dataset"
)

// Options carries the optional form fields that shape the report.
type Options struct {
	Title   string
	Company string
}

// DefaultTitle is used when the upload form leaves the title blank.
const DefaultTitle = "Automated Test Report"

// maxDetailRows caps the detail table; datasets beyond this get a truncation
// note instead of extra pages.
const maxDetailRows = 200

const (
	marginSide     = 18.0
	marginTop      = 16.0
	marginBottom   = 16.0
	chartImageW    = 170.0
	chartImageH    = 85.0
	timestampLayout = "2006-01-02 15:04:05"
)

var detailHeader = []string{"Sample", "Test", "Value", "Lower", "Upper", "Unit", "Status"}
var detailWidths = []float64{26, 35, 24, 24, 24, 18, 23}

// Build runs the full pipeline: load and validate the CSV, evaluate verdicts,
// render both charts next to the output PDF, and assemble the document.
// Validator and evaluator failures propagate unmodified and no partial PDF is
// written. The evaluated table and summary are returned so callers can derive
// further artifacts without reloading the input.
func Build(csvPath, pdfPath string, opts Options) (dataset.Table, dataset.Summary, error) {
	table, err := dataset.LoadFile(csvPath)
	if err != nil {
		return nil, dataset.Summary{}, err
	}
	evaluated, summary, err := dataset.Evaluate(table)
	if err != nil {
		return nil, dataset.Summary{}, err
	}

	outDir := filepath.Dir(pdfPath)
	histPath := filepath.Join(outDir, "histogram.png")
	scatterPath := filepath.Join(outDir, "scatter.png")
	if err := charts.WriteHistogram(evaluated, histPath); err != nil {
		return nil, dataset.Summary{}, err
	}
	if err := charts.WriteScatter(evaluated, scatterPath); err != nil {
		return nil, dataset.Summary{}, err
	}

	if err := writePDF(pdfPath, evaluated, summary, opts, histPath, scatterPath, time.Now()); err != nil {
		return nil, dataset.Summary{}, err
	}
	return evaluated, summary, nil
}

func writePDF(path string, table dataset.Table, summary dataset.Summary, opts Options, histPath, scatterPath string, now time.Time) error {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	generated := now.Format(timestampLayout)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginSide, marginTop, marginSide)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetTitle(title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	overviewPage(pdf, tr, title, generated, summary, opts.Company)
	chartsPage(pdf, histPath, scatterPath)
	detailPage(pdf, tr, table, generated)

	if pdf.Err() {
		return fmt.Errorf("assemble pdf: %w", pdf.Error())
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func overviewPage(pdf *fpdf.Fpdf, tr func(string) string, title, generated string, summary dataset.Summary, company string) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")

	if company != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(company), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	rows := [][2]string{
		{"Generated", generated},
		{"Total Measurements", fmt.Sprintf("%d", summary.Total)},
		{"Pass Count", fmt.Sprintf("%d", summary.PassCount)},
		{"Fail Count", fmt.Sprintf("%d", summary.FailCount)},
		{"Pass Rate", fmt.Sprintf("%.2f%%", summary.PassRate)},
		{"Overall Verdict", string(summary.OverallVerdict)},
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetDrawColor(200, 200, 200)
	for i, row := range rows {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(55, 8, row[0], "1", 0, "L", false, 0, "")

		if i == len(rows)-1 {
			// Verdict cell gets the color treatment.
			pdf.SetFont("Helvetica", "B", 10)
			setVerdictColor(pdf, summary.OverallVerdict)
		}
		pdf.CellFormat(110, 8, tr(row[1]), "1", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr("This report was generated automatically from the uploaded CSV dataset. "+
		"Pass/Fail is evaluated per measurement using the provided limits."), "", "L", false)
}

func chartsPage(pdf *fpdf.Fpdf, histPath, scatterPath string) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Charts", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	placeChart(pdf, "Measurement Distribution", histPath)
	placeChart(pdf, "Value vs Sample ID", scatterPath)
}

// placeChart adds a captioned chart image, skipping it entirely when the file
// is missing.
func placeChart(pdf *fpdf.Fpdf, caption, path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, caption, "", 1, "L", false, 0, "")
	pdf.Ln(1)
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.ImageOptions(path, marginSide, -1, chartImageW, chartImageH, true, opts, 0, "")
	pdf.Ln(4)
}

func detailPage(pdf *fpdf.Fpdf, tr func(string) string, table dataset.Table, generated string) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Detailed Results", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	_, pageH := pdf.GetPageSize()
	breakAt := pageH - marginBottom - 8

	detailHeaderRow(pdf)

	shown := table
	if len(shown) > maxDetailRows {
		shown = shown[:maxDetailRows]
	}

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range shown {
		if pdf.GetY() > breakAt {
			pdf.AddPage()
			detailHeaderRow(pdf)
			pdf.SetFont("Helvetica", "", 8)
		}

		cells := []string{
			row.SampleID,
			row.TestName,
			fmt.Sprintf("%.6g", row.Value),
			fmt.Sprintf("%.6g", row.LowerLimit),
			fmt.Sprintf("%.6g", row.UpperLimit),
			row.Unit,
			string(row.Status),
		}
		for i, cell := range cells {
			last := i == len(cells)-1
			if last && row.Status == dataset.StatusFail {
				pdf.SetFont("Helvetica", "B", 8)
				setVerdictColor(pdf, dataset.StatusFail)
			}
			ln := 0
			if last {
				ln = 1
			}
			pdf.CellFormat(detailWidths[i], 6, tr(cell), "1", ln, "L", false, 0, "")
			if last {
				pdf.SetFont("Helvetica", "", 8)
				pdf.SetTextColor(0, 0, 0)
			}
		}
	}

	if len(table) > maxDetailRows {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, fmt.Sprintf("Note: Showing first %d of %d rows only.", maxDetailRows, len(table)), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, tr("Generated by Report Engine • "+generated), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func detailHeaderRow(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetDrawColor(200, 200, 200)
	for i, name := range detailHeader {
		ln := 0
		if i == len(detailHeader)-1 {
			ln = 1
		}
		pdf.CellFormat(detailWidths[i], 7, name, "1", ln, "L", true, 0, "")
	}
}

func setVerdictColor(pdf *fpdf.Fpdf, verdict dataset.Status) {
	if verdict == dataset.StatusPass {
		pdf.SetTextColor(0, 128, 0)
	} else {
		pdf.SetTextColor(204, 0, 0)
	}
}
