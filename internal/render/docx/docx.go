// Package docx writes WordprocessingML (.docx) documents from render blocks.
//
// The package is assembled by hand: a handful of XML parts zipped together.
// Only the subset of the format needed by the report is emitted: styled runs,
// paragraph borders for rules, shaded tables, page breaks and a page-number
// footer that is suppressed on the first page.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/KaramelBytes/edaexport/internal/render"
)

// A4 portrait in twentieths of a point, with 50pt margins.
const (
	pageWidthTw  = 11906
	pageHeightTw = 16838
	marginTw     = 1000
	textWidthTw  = pageWidthTw - 2*marginTw
)

// Fonts maps logical families to the faces named in run properties.
var Fonts = map[render.Font]string{
	render.Sans: "Calibri",
	render.Mono: "Consolas",
}

// Options tunes output that has no equivalent in the block model.
type Options struct {
	// PageNumbers adds a "brand · Page X / Y" footer on every page but the first.
	PageNumbers bool
	// Brand is the footer label.
	Brand string
}

// Builder accumulates document.xml body content.
type Builder struct {
	meta render.Meta
	opt  Options
	body bytes.Buffer
}

var _ render.Builder = (*Builder)(nil)

// New returns an empty DOCX builder.
func New(meta render.Meta, opt Options) *Builder {
	return &Builder{meta: meta, opt: opt}
}

func twips(pt float64) int { return int(pt*20 + 0.5) }

func halfPoints(pt float64) int { return int(pt*2 + 0.5) }

func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func jc(a render.Align) string {
	switch a {
	case render.AlignCenter:
		return "center"
	case render.AlignRight:
		return "right"
	default:
		return "left"
	}
}

func (b *Builder) Heading(level int, p render.Paragraph) {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	b.paragraph(p, fmt.Sprintf("Heading%d", level))
}

func (b *Builder) Paragraph(p render.Paragraph) {
	b.paragraph(p, "")
}

func (b *Builder) paragraph(p render.Paragraph, style string) {
	b.body.WriteString("<w:p><w:pPr>")
	if style != "" {
		fmt.Fprintf(&b.body, `<w:pStyle w:val="%s"/>`, style)
	}
	fmt.Fprintf(&b.body, `<w:spacing w:before="%d" w:after="%d"/>`, twips(p.SpaceBefore), twips(p.SpaceAfter))
	if p.Indent > 0 {
		fmt.Fprintf(&b.body, `<w:ind w:left="%d"/>`, twips(p.Indent))
	}
	fmt.Fprintf(&b.body, `<w:jc w:val="%s"/>`, jc(p.Align))
	b.body.WriteString("</w:pPr>")
	for _, r := range p.Runs {
		writeRun(&b.body, r)
	}
	b.body.WriteString("</w:p>")
}

func runProps(st render.TextStyle) string {
	var b strings.Builder
	b.WriteString("<w:rPr>")
	face := Fonts[st.Font]
	if face != "" {
		fmt.Fprintf(&b, `<w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:cs="%[1]s"/>`, face)
	}
	if st.Bold {
		b.WriteString("<w:b/><w:bCs/>")
	}
	if st.Italic {
		b.WriteString("<w:i/><w:iCs/>")
	}
	fmt.Fprintf(&b, `<w:color w:val="%s"/>`, st.Color.Hex())
	if st.Size > 0 {
		fmt.Fprintf(&b, `<w:sz w:val="%[1]d"/><w:szCs w:val="%[1]d"/>`, halfPoints(st.Size))
	}
	b.WriteString("</w:rPr>")
	return b.String()
}

func writeRun(buf *bytes.Buffer, r render.Run) {
	buf.WriteString("<w:r>")
	buf.WriteString(runProps(r.Style))
	for i, part := range strings.Split(r.Text, "\n") {
		if i > 0 {
			buf.WriteString("<w:br/>")
		}
		fmt.Fprintf(buf, `<w:t xml:space="preserve">%s</w:t>`, esc(part))
	}
	buf.WriteString("</w:r>")
}

// Rule is an empty paragraph with a bottom border. Partial lengths are
// emulated with symmetric indents.
func (b *Builder) Rule(r render.Rule) {
	width := r.Width
	if width <= 0 {
		width = 1
	}
	ppr := fmt.Sprintf(`<w:pBdr><w:bottom w:val="single" w:sz="%d" w:space="1" w:color="%s"/></w:pBdr>`,
		int(width*8+0.5), r.Color.Hex())
	ppr += `<w:spacing w:before="0" w:after="120"/>`
	if r.Length > 0 && r.Length < 1 {
		gap := int(float64(textWidthTw) * (1 - r.Length))
		left, right := gap/2, gap-gap/2
		switch r.Align {
		case render.AlignLeft:
			left, right = 0, gap
		case render.AlignRight:
			left, right = gap, 0
		}
		ppr += fmt.Sprintf(`<w:ind w:left="%d" w:right="%d"/>`, left, right)
	}
	fmt.Fprintf(&b.body, `<w:p><w:pPr>%s</w:pPr></w:p>`, ppr)
}

func (b *Builder) Spacer(pt float64) {
	if pt <= 0 {
		return
	}
	// An empty paragraph whose exact line height is the requested space.
	fmt.Fprintf(&b.body, `<w:p><w:pPr><w:spacing w:before="0" w:after="0" w:line="%d" w:lineRule="exact"/></w:pPr></w:p>`, twips(pt))
}

func (b *Builder) PageBreak() {
	b.body.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
}

func border(name string, c render.Color, width float64) string {
	if width <= 0 {
		return fmt.Sprintf(`<w:%s w:val="nil"/>`, name)
	}
	return fmt.Sprintf(`<w:%s w:val="single" w:sz="%d" w:space="0" w:color="%s"/>`, name, int(width*8+0.5), c.Hex())
}

func (b *Builder) Table(t render.Table) {
	if len(t.Columns) == 0 {
		return
	}
	frac := t.Width
	if frac <= 0 || frac > 1 {
		frac = 1
	}
	total := int(float64(textWidthTw) * frac)
	var weight float64
	for _, c := range t.Columns {
		weight += c.Width
	}
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		w := c.Width
		if weight <= 0 {
			w, weight = 1, float64(len(t.Columns))
		}
		widths[i] = int(float64(total) * w / weight)
	}

	buf := &b.body
	buf.WriteString("<w:tbl><w:tblPr>")
	fmt.Fprintf(buf, `<w:tblW w:w="%d" w:type="dxa"/><w:jc w:val="center"/>`, total)
	buf.WriteString("<w:tblBorders>")
	for _, side := range []string{"top", "left", "bottom", "right"} {
		buf.WriteString(border(side, t.Border, t.BorderWidth))
	}
	buf.WriteString(border("insideH", t.Grid, t.GridWidth))
	buf.WriteString(border("insideV", t.Grid, t.GridWidth))
	buf.WriteString("</w:tblBorders>")
	buf.WriteString(`<w:tblLayout w:type="fixed"/>`)
	buf.WriteString(`<w:tblCellMar><w:left w:w="170" w:type="dxa"/><w:right w:w="170" w:type="dxa"/></w:tblCellMar>`)
	buf.WriteString("</w:tblPr><w:tblGrid>")
	for _, w := range widths {
		fmt.Fprintf(buf, `<w:gridCol w:w="%d"/>`, w)
	}
	buf.WriteString("</w:tblGrid>")

	pad := twips(t.Padding)
	if len(t.Header) > 0 {
		buf.WriteString(`<w:tr><w:trPr><w:tblHeader/></w:trPr>`)
		for i := range t.Columns {
			text := ""
			if i < len(t.Header) {
				text = t.Header[i]
			}
			fill := t.HeaderFill
			writeCell(buf, widths[i], &fill, render.AlignCenter, pad, render.Run{Text: text, Style: t.HeaderStyle})
		}
		buf.WriteString("</w:tr>")
	}
	for ri, row := range t.Rows {
		buf.WriteString("<w:tr>")
		for i, col := range t.Columns {
			text := ""
			if i < len(row) {
				text = row[i]
			}
			fill := col.Fill
			if fill == nil && t.AltFill != nil && ri%2 == 1 {
				fill = t.AltFill
			}
			writeCell(buf, widths[i], fill, col.Align, pad, render.Run{Text: text, Style: col.Style})
		}
		buf.WriteString("</w:tr>")
	}
	buf.WriteString("</w:tbl>")
	// Word requires a paragraph between a table and whatever follows it.
	buf.WriteString(`<w:p><w:pPr><w:spacing w:before="0" w:after="0"/></w:pPr></w:p>`)
}

func writeCell(buf *bytes.Buffer, width int, fill *render.Color, align render.Align, pad int, r render.Run) {
	buf.WriteString("<w:tc><w:tcPr>")
	fmt.Fprintf(buf, `<w:tcW w:w="%d" w:type="dxa"/>`, width)
	if fill != nil {
		fmt.Fprintf(buf, `<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, fill.Hex())
	}
	buf.WriteString(`<w:vAlign w:val="center"/></w:tcPr>`)
	fmt.Fprintf(buf, `<w:p><w:pPr><w:spacing w:before="%d" w:after="%d"/><w:jc w:val="%s"/></w:pPr>`, pad, pad, jc(align))
	writeRun(buf, r)
	buf.WriteString("</w:p></w:tc>")
}

type part struct {
	name string
	data string
}

// Save writes the zipped package.
func (b *Builder) Save(w io.Writer) error {
	created := b.meta.Created
	if created.IsZero() {
		created = time.Now()
	}
	parts := []part{
		{"[Content_Types].xml", contentTypes(b.opt.PageNumbers)},
		{"_rels/.rels", packageRels},
		{"docProps/core.xml", coreProps(b.meta, created)},
		{"docProps/app.xml", appProps(b.meta)},
		{"word/_rels/document.xml.rels", documentRels(b.opt.PageNumbers)},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", b.document()},
	}
	if b.opt.PageNumbers {
		parts = append(parts, part{"word/footer1.xml", footerXML(b.opt.Brand)})
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: created})
		if err != nil {
			return fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := io.WriteString(fw, p.data); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close docx: %w", err)
	}
	return nil
}

func (b *Builder) document() string {
	var s strings.Builder
	s.WriteString(xmlHeader)
	s.WriteString(`<w:document xmlns:w="` + nsW + `" xmlns:r="` + nsR + `"><w:body>`)
	s.Write(b.body.Bytes())
	s.WriteString("<w:sectPr>")
	if b.opt.PageNumbers {
		s.WriteString(`<w:footerReference w:type="default" r:id="rId2"/>`)
	}
	fmt.Fprintf(&s, `<w:pgSz w:w="%d" w:h="%d"/>`, pageWidthTw, pageHeightTw)
	fmt.Fprintf(&s, `<w:pgMar w:top="%[1]d" w:right="%[1]d" w:bottom="%[1]d" w:left="%[1]d" w:header="567" w:footer="567" w:gutter="0"/>`, marginTw)
	if b.opt.PageNumbers {
		s.WriteString("<w:titlePg/>")
	}
	s.WriteString("</w:sectPr></w:body></w:document>")
	return s.String()
}
