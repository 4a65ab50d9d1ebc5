// Package pdf renders render blocks with github.com/go-pdf/fpdf.
package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/KaramelBytes/edaexport/internal/render"
)

const (
	margin     = 50.0 // points, all sides
	lineFactor = 1.35 // line height as a multiple of font size
)

// Fonts maps logical families to PDF core fonts.
var Fonts = map[render.Font]string{
	render.Sans: "Helvetica",
	render.Mono: "Courier",
}

// Builder draws blocks straight onto an fpdf document.
type Builder struct {
	pdf       *fpdf.Fpdf
	tr        func(string) string
	decorator *PageDecorator
}

var _ render.Builder = (*Builder)(nil)

// New starts an A4 portrait document with its first page already added.
// A nil decorator disables page furniture.
func New(meta render.Meta, decorator *PageDecorator) *Builder {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(meta.Title, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetCreator(meta.Creator, true)
	if meta.ReportID != "" {
		pdf.SetKeywords("report-id:"+meta.ReportID, true)
	}
	if !meta.Created.IsZero() {
		pdf.SetCreationDate(meta.Created)
		pdf.SetModificationDate(meta.Created)
	}
	b := &Builder{pdf: pdf, decorator: decorator}
	b.tr = pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	return b
}

// substitutes maps glyphs missing from cp1252 to the closest available one.
var substitutes = map[rune]string{
	'●': "•", '■': "•", '▪': "•", '▸': "›", '►': "›", '▶': "›",
	'━': "-", '─': "-", '═': "=", '✓': "", '✔': "",
	'\u202f': " ",
}

// encode converts UTF-8 text to the cp1252 bytes the core fonts expect.
// Runes with no cp1252 code point (emoji, box drawing) are substituted or
// dropped instead of being printed as '.'.
func (b *Builder) encode(s string) string {
	var out strings.Builder
	leading, dropped, tail := true, false, false
	for _, r := range s {
		if sub, ok := substitutes[r]; ok {
			if sub == "" {
				dropped = dropped || leading
				tail = true
				continue
			}
			out.WriteString(sub)
			leading, tail = false, false
			continue
		}
		if r >= 0x80 && b.tr(string(r)) == "." {
			dropped = dropped || leading
			tail = true
			continue
		}
		if r == ' ' {
			if leading && dropped {
				continue
			}
		} else {
			tail = false
		}
		leading = false
		out.WriteRune(r)
	}
	text := collapseSpaces(out.String())
	if tail {
		// Spaces that only separated a dropped trailing glyph.
		text = strings.TrimRight(text, " ")
	}
	return b.tr(text)
}

// collapseSpaces folds runs of spaces left behind by dropped glyphs.
func collapseSpaces(s string) string {
	for strings.Contains(s, "   ") {
		s = strings.ReplaceAll(s, "   ", "  ")
	}
	return s
}

func (b *Builder) setStyle(st render.TextStyle) {
	style := ""
	if st.Bold {
		style += "B"
	}
	if st.Italic {
		style += "I"
	}
	size := st.Size
	if size <= 0 {
		size = 10
	}
	b.pdf.SetFont(Fonts[st.Font], style, size)
	b.pdf.SetTextColor(st.Color.RGB())
}

func alignStr(a render.Align) string {
	switch a {
	case render.AlignCenter:
		return "C"
	case render.AlignRight:
		return "R"
	default:
		return "L"
	}
}

func lineHeight(p render.Paragraph) float64 {
	size := 0.0
	for _, r := range p.Runs {
		if r.Style.Size > size {
			size = r.Style.Size
		}
	}
	if size <= 0 {
		size = 10
	}
	return size * lineFactor
}

func (b *Builder) textWidth() float64 {
	w, _ := b.pdf.GetPageSize()
	left, _, right, _ := b.pdf.GetMargins()
	return w - left - right
}

func (b *Builder) Heading(_ int, p render.Paragraph) {
	// Keep a heading with at least a couple of lines of what follows.
	_, h := b.pdf.GetPageSize()
	if b.pdf.GetY()+lineHeight(p)*3 > h-margin {
		b.pdf.AddPage()
	}
	b.Paragraph(p)
}

func (b *Builder) Paragraph(p render.Paragraph) {
	if len(p.Runs) == 0 {
		return
	}
	if p.SpaceBefore > 0 {
		b.pdf.Ln(p.SpaceBefore)
	}
	left, _, _, _ := b.pdf.GetMargins()
	avail := b.textWidth() - p.Indent
	h := lineHeight(p)

	if len(p.Runs) == 1 {
		r := p.Runs[0]
		b.setStyle(r.Style)
		b.pdf.SetX(left + p.Indent)
		b.pdf.MultiCell(avail, h, b.encode(r.Text), "", alignStr(p.Align), false)
	} else {
		b.mixed(p, left, avail, h)
	}
	if p.SpaceAfter > 0 {
		b.pdf.Ln(p.SpaceAfter)
	}
}

// mixed lays out differently styled runs on one line, aligned as a group.
// When the group is wider than the line it falls back to flowing text.
func (b *Builder) mixed(p render.Paragraph, left, avail, h float64) {
	widths := make([]float64, len(p.Runs))
	total := 0.0
	for i, r := range p.Runs {
		b.setStyle(r.Style)
		widths[i] = b.pdf.GetStringWidth(b.encode(r.Text))
		total += widths[i]
	}
	if total > avail {
		b.pdf.SetX(left + p.Indent)
		for _, r := range p.Runs {
			b.setStyle(r.Style)
			b.pdf.Write(h, b.encode(r.Text))
		}
		b.pdf.Ln(h)
		return
	}
	x := left + p.Indent
	switch p.Align {
	case render.AlignCenter:
		x += (avail - total) / 2
	case render.AlignRight:
		x += avail - total
	}
	b.pdf.SetX(x)
	for i, r := range p.Runs {
		b.setStyle(r.Style)
		b.pdf.CellFormat(widths[i], h, b.encode(r.Text), "", 0, "L", false, 0, "")
	}
	b.pdf.Ln(h)
}

func (b *Builder) Rule(r render.Rule) {
	left, _, _, _ := b.pdf.GetMargins()
	full := b.textWidth()
	length := full
	if r.Length > 0 && r.Length < 1 {
		length = full * r.Length
	}
	x := left
	switch r.Align {
	case render.AlignCenter:
		x += (full - length) / 2
	case render.AlignRight:
		x += full - length
	}
	width := r.Width
	if width <= 0 {
		width = 1
	}
	y := b.pdf.GetY() + 4
	b.pdf.SetDrawColor(r.Color.RGB())
	b.pdf.SetLineWidth(width)
	b.pdf.Line(x, y, x+length, y)
	b.pdf.SetY(y + width + 6)
}

func (b *Builder) Spacer(pt float64) {
	if pt <= 0 {
		return
	}
	_, h := b.pdf.GetPageSize()
	if b.pdf.GetY()+pt > h-margin {
		// Whitespace never spills onto a fresh page.
		return
	}
	b.pdf.Ln(pt)
}

func (b *Builder) PageBreak() {
	b.pdf.AddPage()
}

func (b *Builder) Table(t render.Table) {
	if len(t.Columns) == 0 {
		return
	}
	left, _, _, _ := b.pdf.GetMargins()
	_, pageH := b.pdf.GetPageSize()
	full := b.textWidth()
	frac := t.Width
	if frac <= 0 || frac > 1 {
		frac = 1
	}
	total := full * frac
	x0 := left + (full-total)/2

	var weight float64
	for _, c := range t.Columns {
		weight += c.Width
	}
	widths := make([]float64, len(t.Columns))
	for i, c := range t.Columns {
		if weight <= 0 {
			widths[i] = total / float64(len(t.Columns))
			continue
		}
		widths[i] = total * c.Width / weight
	}

	const hpad = 10.0
	type cell struct {
		text  string
		style render.TextStyle
		align render.Align
		fill  *render.Color
	}
	var rows [][]cell
	if len(t.Header) > 0 {
		hdr := make([]cell, len(t.Columns))
		for i := range t.Columns {
			fill := t.HeaderFill
			hdr[i] = cell{style: t.HeaderStyle, align: render.AlignCenter, fill: &fill}
			if i < len(t.Header) {
				hdr[i].text = t.Header[i]
			}
		}
		rows = append(rows, hdr)
	}
	for ri, row := range t.Rows {
		cells := make([]cell, len(t.Columns))
		for i, col := range t.Columns {
			c := cell{style: col.Style, align: col.Align, fill: col.Fill}
			if c.fill == nil && t.AltFill != nil && ri%2 == 1 {
				c.fill = t.AltFill
			}
			if i < len(row) {
				c.text = row[i]
			}
			cells[i] = c
		}
		rows = append(rows, cells)
	}

	b.pdf.SetAutoPageBreak(false, margin)
	defer b.pdf.SetAutoPageBreak(true, margin)

	top := b.pdf.GetY()
	for _, cells := range rows {
		// Measure the row: the tallest wrapped cell decides its height.
		lines := make([][]string, len(cells))
		rowH := 0.0
		for i, c := range cells {
			b.setStyle(c.style)
			lines[i] = b.pdf.SplitText(b.encode(c.text), widths[i]-2*hpad)
			if len(lines[i]) == 0 {
				lines[i] = []string{""}
			}
			h := float64(len(lines[i]))*c.style.Size*lineFactor + 2*t.Padding
			if h > rowH {
				rowH = h
			}
		}
		y := b.pdf.GetY()
		if y+rowH > pageH-margin {
			b.box(t, x0, top, total, y-top)
			b.pdf.AddPage()
			y = b.pdf.GetY()
			top = y
		}
		x := x0
		for i, c := range cells {
			if c.fill != nil {
				b.pdf.SetFillColor(c.fill.RGB())
				b.pdf.Rect(x, y, widths[i], rowH, "F")
			}
			if t.GridWidth > 0 {
				b.pdf.SetDrawColor(t.Grid.RGB())
				b.pdf.SetLineWidth(t.GridWidth)
				b.pdf.Rect(x, y, widths[i], rowH, "D")
			}
			b.setStyle(c.style)
			lh := c.style.Size * lineFactor
			ty := y + (rowH-float64(len(lines[i]))*lh)/2
			for _, ln := range lines[i] {
				b.pdf.SetXY(x+hpad, ty)
				b.pdf.CellFormat(widths[i]-2*hpad, lh, ln, "", 0, alignStr(c.align), false, 0, "")
				ty += lh
			}
			x += widths[i]
		}
		b.pdf.SetXY(left, y+rowH)
	}
	b.box(t, x0, top, total, b.pdf.GetY()-top)
	b.pdf.Ln(6)
}

func (b *Builder) box(t render.Table, x, y, w, h float64) {
	if t.BorderWidth <= 0 || h <= 0 {
		return
	}
	b.pdf.SetDrawColor(t.Border.RGB())
	b.pdf.SetLineWidth(t.BorderWidth)
	b.pdf.Rect(x, y, w, h, "D")
}

// Pages reports the current page count.
func (b *Builder) Pages() int {
	return b.pdf.PageCount()
}

// Save applies the page decorator and writes the document.
func (b *Builder) Save(w io.Writer) error {
	if b.decorator != nil {
		b.decorator.Apply(b.pdf, b.encode)
	}
	if err := b.pdf.Output(w); err != nil {
		return fmt.Errorf("pdf output: %w", err)
	}
	return nil
}
