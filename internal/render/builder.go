// Package render defines the format-neutral document model shared by the DOCX
// and PDF builders: a small Builder interface, the blocks it accepts and the
// style table both formats draw from.
package render

import (
	"io"
	"time"
)

// Builder constructs one document. Blocks are appended in call order and the
// result is emitted by Save. Implementations are not safe for concurrent use.
type Builder interface {
	// Heading adds an outline-level heading (1 = section, 2 = subsection).
	Heading(level int, p Paragraph)
	Paragraph(p Paragraph)
	Rule(r Rule)
	Table(t Table)
	// Spacer adds vertical whitespace, in points.
	Spacer(pt float64)
	PageBreak()
	Save(w io.Writer) error
}

// Meta is written to the document properties.
type Meta struct {
	Title    string
	Subject  string
	Author   string
	Creator  string
	ReportID string
	Created  time.Time
}

// Run is a span of uniformly styled text. A newline inside a single-run
// paragraph is a line break; multi-run paragraphs must stay on one line.
type Run struct {
	Text  string
	Style TextStyle
}

// Paragraph is a block of runs.
type Paragraph struct {
	Runs        []Run
	Align       Align
	Indent      float64 // left indent, points
	SpaceBefore float64
	SpaceAfter  float64
}

// Para is shorthand for a single-run paragraph.
func Para(text string, st TextStyle, align Align) Paragraph {
	return Paragraph{Runs: []Run{{Text: text, Style: st}}, Align: align}
}

// Text returns the concatenated run text.
func (p Paragraph) Text() string {
	var s string
	for _, r := range p.Runs {
		s += r.Text
	}
	return s
}

// Rule is a horizontal line. Length is a fraction of the text width (0 = full).
type Rule struct {
	Color  Color
	Width  float64 // stroke, points
	Length float64
	Align  Align
}

// Column styles one table column (body rows only).
type Column struct {
	Width float64 // relative weight
	Style TextStyle
	Align Align
	Fill  *Color
}

// Table is a grid of text cells. Header is optional; Rows may be empty.
// AltFill, when set, shades every second body row of unfilled columns.
type Table struct {
	Columns     []Column
	Header      []string
	HeaderStyle TextStyle
	HeaderFill  Color
	Rows        [][]string
	AltFill     *Color
	Grid        Color
	GridWidth   float64
	Border      Color
	BorderWidth float64
	Padding     float64 // vertical cell padding, points
	Width       float64 // fraction of the text width (0 = full)
}
