// Package pdfdoc wraps fpdf with the page layout shared by the customer list,
// the statistics export and the investor reports: A4 portrait, a numbered
// footer and tables that repeat their header after a page break.
package pdfdoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	margin     = 15.0
	lineHeight = 6.0
	font       = "Helvetica"
)

// The core fonts are cp1252; these Turkish letters have no glyph there.
var turkishFold = strings.NewReplacer(
	"ş", "s", "Ş", "S",
	"ğ", "g", "Ğ", "G",
	"ı", "i", "İ", "I",
)

// Column is one table column.
type Column struct {
	Title string
	Width float64 // mm
}

// Document is a single PDF being built.
type Document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// New starts a document. footer is printed left of the page number on every
// page; it may be empty.
func New(footer string) *Document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AliasNbPages("")

	d := &Document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin)
		pdf.SetFont(font, "I", 8)
		pdf.SetTextColor(120, 120, 120)
		if footer != "" {
			pdf.CellFormat(0, 10, d.Text(footer), "", 0, "L", false, 0, "")
			pdf.SetX(margin)
		}
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.AddPage()
	return d
}

// Text converts s to the encoding of the core fonts.
func (d *Document) Text(s string) string {
	return d.tr(turkishFold.Replace(s))
}

// Title writes a large centred heading.
func (d *Document) Title(s string) {
	d.pdf.SetFont(font, "B", 18)
	d.pdf.CellFormat(0, 12, d.Text(s), "", 1, "C", false, 0, "")
	d.pdf.Ln(2)
}

// Subtitle writes a small centred grey line.
func (d *Document) Subtitle(s string) {
	d.pdf.SetFont(font, "", 10)
	d.pdf.SetTextColor(90, 90, 90)
	d.pdf.CellFormat(0, lineHeight, d.Text(s), "", 1, "C", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
}

// Section writes a shaded section heading.
func (d *Document) Section(s string) {
	d.pdf.Ln(4)
	d.pdf.SetFont(font, "B", 12)
	d.pdf.SetFillColor(230, 243, 255)
	d.pdf.CellFormat(0, 8, d.Text(s), "", 1, "L", true, 0, "")
	d.pdf.Ln(1)
}

// Field writes a "label: value" line.
func (d *Document) Field(label, value string) {
	d.pdf.SetFont(font, "B", 10)
	d.pdf.CellFormat(55, lineHeight, d.Text(label+":"), "", 0, "L", false, 0, "")
	d.pdf.SetFont(font, "", 10)
	d.pdf.MultiCell(0, lineHeight, d.Text(value), "", "L", false)
}

// Paragraph writes wrapped body text.
func (d *Document) Paragraph(s string) {
	d.pdf.SetFont(font, "", 10)
	d.pdf.MultiCell(0, lineHeight, d.Text(s), "", "L", false)
}

// Gap adds vertical space.
func (d *Document) Gap(h float64) { d.pdf.Ln(h) }

// Table writes a bordered table. Cells wider than their column are cut with
// "..." and the header is repeated on every new page.
func (d *Document) Table(cols []Column, rows [][]string) {
	d.tableHeader(cols)
	d.pdf.SetFont(font, "", 9)

	_, pageHeight := d.pdf.GetPageSize()
	for _, row := range rows {
		if d.pdf.GetY()+lineHeight > pageHeight-margin {
			d.pdf.AddPage()
			d.tableHeader(cols)
			d.pdf.SetFont(font, "", 9)
		}
		for i, col := range cols {
			var v string
			if i < len(row) {
				v = row[i]
			}
			d.pdf.CellFormat(col.Width, lineHeight, d.fit(d.Text(v), col.Width-2), "1", 0, "L", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

func (d *Document) tableHeader(cols []Column) {
	d.pdf.SetFont(font, "B", 9)
	d.pdf.SetFillColor(230, 243, 255)
	for _, col := range cols {
		d.pdf.CellFormat(col.Width, 7, d.Text(col.Title), "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)
}

// fit shortens an already translated string to width mm.
func (d *Document) fit(s string, width float64) string {
	if d.pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && d.pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// PageCount returns the number of pages so far.
func (d *Document) PageCount() int { return d.pdf.PageCount() }

// Write renders the document to w.
func (d *Document) Write(w io.Writer) error {
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
