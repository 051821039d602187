package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/goregular"

	"shiftpay/internal/domain/payroll"
)

const pdfFont = "goregular"

// WritePDF renders the payroll report as an A4 PDF.
func (f *Formatter) WritePDF(w io.Writer, start, end time.Time, summary payroll.Summary, lang string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(pdfFont, "", goregular.TTF)
	pdf.AddPage()
	pdf.SetFont(pdfFont, "", 16)
	pdf.Cell(0, 10, f.Title(start, end, lang))
	pdf.Ln(14)

	headers := []string{
		f.tr.T("employee", lang),
		f.tr.T("position", lang),
		f.tr.T("shifts", lang),
		f.tr.T("rate", lang),
		f.tr.T("adjustment", lang),
		f.tr.T("total", lang),
	}
	widths := []float64{50, 35, 20, 25, 30, 30}

	pdf.SetFont(pdfFont, "", 10)
	pdf.SetFillColor(0xe9, 0xec, 0xef)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	lines := f.Lines(summary, lang)
	for _, line := range lines {
		adjustment := ""
		if line.Adjustment != 0 {
			adjustment = fmt.Sprintf("%+d", line.Adjustment)
		}
		cells := []string{line.DisplayName, line.Position, line.Shifts, line.Rate, adjustment, fmt.Sprintf("%d", line.Total)}
		for i, cell := range cells {
			align := "R"
			if i < 2 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
	pdf.SetFont(pdfFont, "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s: %d", f.tr.T("grand_total", lang), summary.GrandTotal))
	pdf.Ln(10)

	pdf.SetFont(pdfFont, "", 9)
	for _, line := range lines {
		if line.Adjustment == 0 {
			continue
		}
		pdf.MultiCell(0, 5, fmt.Sprintf("%s: %s", line.DisplayName, line.Note), "", "L", false)
	}

	return pdf.Output(w)
}
