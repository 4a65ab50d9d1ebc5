package pdf

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/KaramelBytes/edaexport/internal/render"
)

// PageDecorator draws running page furniture once the document is complete,
// so "Page n / N" can use the final page count. Pages up to and including
// SkipFirst are left untouched (the cover).
type PageDecorator struct {
	Brand     string
	SkipFirst int
	RuleColor render.Color
	RuleWidth float64
}

// NewPageDecorator returns the standard decorator: blue top rule, brand on
// the left, page counter on the right, cover page excluded.
func NewPageDecorator(brand string) *PageDecorator {
	return &PageDecorator{
		Brand:     brand,
		SkipFirst: 1,
		RuleColor: render.ColorRule,
		RuleWidth: 2,
	}
}

// Apply revisits every page of pdf. encode converts UTF-8 labels to the
// document's font encoding.
func (d *PageDecorator) Apply(pdf *fpdf.Fpdf, encode func(string) string) {
	if encode == nil {
		encode = func(s string) string { return s }
	}
	// Footer text sits inside the bottom margin; it must not trigger a new page.
	pdf.SetAutoPageBreak(false, 0)
	defer pdf.SetAutoPageBreak(true, margin)

	total := pdf.PageCount()
	for i := d.SkipFirst + 1; i <= total; i++ {
		pdf.SetPage(i)
		w, h := pdf.GetPageSize()

		pdf.SetDrawColor(d.RuleColor.RGB())
		pdf.SetLineWidth(d.RuleWidth)
		pdf.Line(margin, margin-8, w-margin, margin-8)

		num := render.Style(render.RolePageNumber)
		forceFont(pdf, Fonts[num.Font], "", num.Size)
		pdf.SetTextColor(num.Color.RGB())
		pdf.SetXY(margin, h-margin+12)
		pdf.CellFormat(w-2*margin, 12, d.Label(i, total), "", 0, "R", false, 0, "")

		if d.Brand != "" {
			brand := render.Style(render.RolePageBrand)
			forceFont(pdf, Fonts[brand.Font], "I", brand.Size)
			pdf.SetTextColor(brand.Color.RGB())
			pdf.SetXY(margin, h-margin+12)
			pdf.CellFormat(w-2*margin, 12, encode(d.Brand), "", 0, "L", false, 0, "")
		}
	}
}

// forceFont always emits a font selection. fpdf skips a SetFont that matches
// its current state, but a revisited page's stream may end on another font.
func forceFont(pdf *fpdf.Fpdf, family, style string, size float64) {
	pdf.SetFont(family, style, size+1)
	pdf.SetFont(family, style, size)
}

// Label is the page counter text for page n of total.
func (d *PageDecorator) Label(n, total int) string {
	return fmt.Sprintf("Page %d / %d", n, total)
}
