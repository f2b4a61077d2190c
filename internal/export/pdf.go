package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/altinukshini/truelies-tui/internal/model"
)

// Page geometry in millimetres (A4 portrait).
const (
	pdfMargin    = 15.0
	pdfRowHeight = 7.0
	pdfFooter    = 12.0
)

type pdfColumn struct {
	title string
	width float64
	align string
	value func(rec model.Record, row model.Row) string
}

var pdfColumns = []pdfColumn{
	{"#", 10, "R", func(rec model.Record, _ model.Row) string { return fmt.Sprint(rec.ID) }},
	{"Test", 62, "L", func(_ model.Record, r model.Row) string { return r.TestName }},
	{"Status", 28, "L", func(rec model.Record, _ model.Row) string { return rec.Status }},
	{"Score", 20, "R", func(_ model.Record, r model.Row) string { return r.ScoreLabel() }},
	{"Date", 42, "L", func(_ model.Record, r model.Row) string { return r.Date }},
	{"Facts", 18, "C", func(rec model.Record, _ model.Row) string { return rec.Facts }},
}

// WritePDF renders the snapshot rows as a paginated table. A new page starts
// whenever the next row would cross the footer; every page repeats the
// column header.
func WritePDF(out io.Writer, s model.Snapshot) error {
	pdf := buildPDF(s)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(out)
}

func buildPDF(s model.Snapshot) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, tr(s.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Generated %s - %d of %d results",
			s.CreatedAt.Format("2006-01-02 15:04:05"), len(s.Rows), s.Total)), "", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range pdfColumns {
			pdf.CellFormat(c.width, pdfRowHeight, c.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfFooter)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(120, 5, fmt.Sprintf("Snapshot %s", s.ID), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()
	limit := pageHeight - pdfMargin - pdfFooter

	records := s.Records
	if len(records) != len(s.Rows) {
		records = model.RecordsFor(s.Rows)
	}
	for i, row := range s.Rows {
		if pdf.GetY()+pdfRowHeight > limit {
			pdf.AddPage()
		}
		for _, c := range pdfColumns {
			text := fitText(pdf, tr(c.value(records[i], row)), c.width-2)
			pdf.CellFormat(c.width, pdfRowHeight, text, "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(s.Rows) == 0 {
		pdf.CellFormat(0, pdfRowHeight, "No visible results", "", 1, "C", false, 0, "")
	}
	return pdf
}

// fitText trims s until it fits width, marking the cut with "..".
func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"..") > width {
		s = s[:len(s)-1]
	}
	return strings.TrimSpace(s) + ".."
}
