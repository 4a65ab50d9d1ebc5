package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an sRGB triple.
type Color struct {
	R, G, B uint8
}

// MustHex parses "#RRGGBB" (leading '#' optional) and panics on malformed input.
// Only used for the static style table.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHex parses "#RRGGBB" or "RRGGBB".
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the upper-case "RRGGBB" form used by WordprocessingML.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// RGB returns the components as ints, the form fpdf expects.
func (c Color) RGB() (int, int, int) {
	return int(c.R), int(c.G), int(c.B)
}

var (
	White = Color{255, 255, 255}
	Black = Color{0, 0, 0}
)

// Font is a logical font family; builders map it to a concrete face.
type Font int

const (
	Sans Font = iota
	Mono
)

// Align is horizontal alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle describes a run of text.
type TextStyle struct {
	Font   Font
	Size   float64 // points
	Color  Color
	Bold   bool
	Italic bool
}

// Role names a semantic slot in the style table.
type Role string

const (
	RoleTitle          Role = "title"
	RoleSubtitle       Role = "subtitle"
	RoleFileInfo       Role = "file-info"
	RoleDate           Role = "date"
	RoleBrand          Role = "brand"
	RoleCoverFooter    Role = "cover-footer"
	RoleSectionHeading Role = "section-heading"
	RoleTableHeader    Role = "table-header"
	RoleMetricLabel    Role = "metric-label"
	RoleMetricValue    Role = "metric-value"
	RoleGrade          Role = "grade"
	RoleScore          Role = "score"
	RoleAnalysisNumber Role = "analysis-number"
	RoleAnalysisTitle  Role = "analysis-title"
	RoleContent        Role = "content"
	RoleFooter         Role = "footer"
	RoleFooterDate     Role = "footer-date"
	RoleVersion        Role = "version"
	RoleCopyright      Role = "copyright"
	RolePageNumber     Role = "page-number"
	RolePageBrand      Role = "page-brand"
)

// Text is the shared style table consumed by every builder.
var Text = map[Role]TextStyle{
	RoleTitle:          {Size: 36, Color: MustHex("#19376D"), Bold: true},
	RoleSubtitle:       {Size: 18, Color: MustHex("#4682B4"), Italic: true},
	RoleFileInfo:       {Size: 14, Color: MustHex("#2C3E50"), Bold: true},
	RoleDate:           {Size: 12, Color: MustHex("#6C757D")},
	RoleBrand:          {Size: 11, Color: MustHex("#2980B9"), Bold: true},
	RoleCoverFooter:    {Size: 11, Color: MustHex("#95A5A6"), Italic: true},
	RoleSectionHeading: {Size: 22, Color: MustHex("#19376D"), Bold: true},
	RoleTableHeader:    {Size: 11, Color: White, Bold: true},
	RoleMetricLabel:    {Size: 10, Color: MustHex("#2C3E50"), Bold: true},
	RoleMetricValue:    {Size: 10, Color: MustHex("#2980B9"), Bold: true},
	RoleGrade:          {Size: 17, Bold: true},
	RoleScore:          {Size: 13, Color: MustHex("#34495E"), Bold: true},
	RoleAnalysisNumber: {Size: 10, Color: MustHex("#2980B9"), Bold: true},
	RoleAnalysisTitle:  {Size: 15, Color: MustHex("#2980B9"), Bold: true},
	RoleContent:        {Font: Mono, Size: 9, Color: MustHex("#2C3E50")},
	RoleFooter:         {Size: 12, Color: MustHex("#7F8C8D"), Italic: true},
	RoleFooterDate:     {Size: 10, Color: MustHex("#95A5A6"), Italic: true},
	RoleVersion:        {Size: 9, Color: MustHex("#BDC3C7")},
	RoleCopyright:      {Size: 8, Color: MustHex("#BDC3C7"), Italic: true},
	RolePageNumber:     {Size: 9, Color: Color{128, 128, 128}},
	RolePageBrand:      {Size: 8, Color: Color{179, 179, 179}, Italic: true},
}

// Line and fill colours shared by both formats.
var (
	ColorRule      = MustHex("#2980B9")
	ColorDivider   = MustHex("#AED6F1")
	ColorHeaderBar = MustHex("#19376D")
	ColorLabelFill = MustHex("#EBF5FB")
	ColorAltRow    = MustHex("#F8F9FA")
	ColorGrid      = MustHex("#BDC3C7")
	ColorBox       = MustHex("#2980B9")
)

// Style returns the table entry for r, falling back to a plain 10pt black style.
func Style(r Role) TextStyle {
	if st, ok := Text[r]; ok {
		return st
	}
	return TextStyle{Size: 10, Color: Black}
}
