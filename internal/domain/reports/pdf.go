package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// SummaryPDF renders a one-page period summary and returns the raw bytes
// so the handler can stream it without touching disk.
func SummaryPDF(data SummaryData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", data.PeriodName))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Unit Averages")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	if len(data.Units) == 0 {
		pdf.Cell(0, 7, "No evaluations recorded.")
		pdf.Ln(7)
	}
	for _, u := range data.Units {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %.1f (%d evaluated)", u.Unit, u.Average, u.Count))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Top Performers")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for i, p := range data.Top {
		pdf.Cell(0, 7, fmt.Sprintf("%d. %s (%s) %.1f", i+1, p.FullName, p.Unit, p.FinalScore))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "At Risk")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	if len(data.Risk) == 0 {
		pdf.Cell(0, 7, "None below threshold.")
		pdf.Ln(7)
	}
	for _, r := range data.Risk {
		pdf.Cell(0, 7, fmt.Sprintf("%s (%s, %s) %.1f", r.FullName, r.Unit, r.JobTitle, r.FinalScore))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
