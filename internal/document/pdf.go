package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

type rgb struct{ r, g, b int }

var (
	colorBlue      = rgb{25, 118, 210}
	colorLightBlue = rgb{66, 165, 245}
	colorGrey      = rgb{100, 100, 100}
	colorRule      = rgb{200, 200, 200}
	colorBlack     = rgb{0, 0, 0}
	colorInk       = rgb{33, 33, 33}
	colorWhite     = rgb{255, 255, 255}
	colorZebra     = rgb{245, 245, 245}
)

// page wraps fpdf with the handful of primitives the documents use. Text is
// positioned by baseline, like the Text primitive of fpdf.
type page struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newPage(orientation string, created time.Time) *page {
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetCreationDate(created)
	pdf.SetCreator("donasi", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	return &page{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (p *page) font(style string, size float64) {
	p.pdf.SetFont("Helvetica", style, size)
}

func (p *page) color(c rgb) {
	p.pdf.SetTextColor(c.r, c.g, c.b)
}

func (p *page) text(x, y float64, s string) {
	p.pdf.Text(x, y, p.tr(s))
}

func (p *page) centered(x, y float64, s string) {
	s = p.tr(s)
	p.pdf.Text(x-p.pdf.GetStringWidth(s)/2, y, s)
}

func (p *page) rule(x1, y, x2 float64, c rgb) {
	p.pdf.SetLineWidth(0.5)
	p.pdf.SetDrawColor(c.r, c.g, c.b)
	p.pdf.Line(x1, y, x2, y)
}

func (p *page) image(name string, png []byte, x, y, w, h float64) {
	if len(png) == 0 {
		return
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	p.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	p.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

type tableStyle struct {
	head      rgb
	fontSize  float64
	rowHeight float64
	zebra     bool
}

// table draws a header row and body rows starting at (x, y) and returns the y
// below the last row. Cell text that does not fit is shortened.
func (p *page) table(x, y float64, widths []float64, head []string, rows [][]string, st tableStyle) float64 {
	p.pdf.SetXY(x, y)
	p.pdf.SetLineWidth(0.1)
	p.pdf.SetDrawColor(colorRule.r, colorRule.g, colorRule.b)

	p.font("B", st.fontSize)
	p.color(colorWhite)
	p.pdf.SetFillColor(st.head.r, st.head.g, st.head.b)

	for i, h := range head {
		p.pdf.CellFormat(widths[i], st.rowHeight, p.fit(h, widths[i]), "1", 0, "L", true, 0, "")
	}

	p.pdf.Ln(-1)

	p.font("", st.fontSize)
	p.color(colorInk)

	for n, row := range rows {
		fill := st.zebra && n%2 == 0
		p.pdf.SetFillColor(colorZebra.r, colorZebra.g, colorZebra.b)
		p.pdf.SetX(x)

		for i, cell := range row {
			p.pdf.CellFormat(widths[i], st.rowHeight, p.fit(cell, widths[i]), "1", 0, "L", fill, 0, "")
		}

		p.pdf.Ln(-1)
	}

	return p.pdf.GetY()
}

func (p *page) fit(s string, width float64) string {
	s = p.tr(s)
	limit := width - 2*p.pdf.GetCellMargin()

	if p.pdf.GetStringWidth(s) <= limit {
		return s
	}

	for len(s) > 0 && p.pdf.GetStringWidth(s+"...") > limit {
		s = s[:len(s)-1]
	}

	return s + "..."
}

func (p *page) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}

	return buf.Bytes(), nil
}
