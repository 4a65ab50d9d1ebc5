package docx

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/edaexport/internal/render"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsRel     = "http://schemas.openxmlformats.org/package/2006/relationships"
)

func contentTypes(footer bool) string {
	var s strings.Builder
	s.WriteString(xmlHeader)
	s.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	s.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	s.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	s.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	s.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	if footer {
		s.WriteString(`<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>`)
	}
	s.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	s.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	s.WriteString(`</Types>`)
	return s.String()
}

const packageRels = xmlHeader + `<Relationships xmlns="` + nsRel + `">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

func documentRels(footer bool) string {
	s := xmlHeader + `<Relationships xmlns="` + nsRel + `">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`
	if footer {
		s += `<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>`
	}
	return s + `</Relationships>`
}

func coreProps(m render.Meta, created time.Time) string {
	ts := created.UTC().Format(time.RFC3339)
	var s strings.Builder
	s.WriteString(xmlHeader)
	s.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	fmt.Fprintf(&s, "<dc:title>%s</dc:title>", esc(m.Title))
	fmt.Fprintf(&s, "<dc:subject>%s</dc:subject>", esc(m.Subject))
	fmt.Fprintf(&s, "<dc:creator>%s</dc:creator>", esc(m.Author))
	fmt.Fprintf(&s, "<dc:identifier>%s</dc:identifier>", esc(m.ReportID))
	fmt.Fprintf(&s, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`, ts)
	fmt.Fprintf(&s, `<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, ts)
	s.WriteString(`</cp:coreProperties>`)
	return s.String()
}

func appProps(m render.Meta) string {
	return xmlHeader + `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
		"<Application>" + esc(m.Creator) + "</Application></Properties>"
}

func footerXML(brand string) string {
	st := render.Style(render.RolePageNumber)
	brandSt := render.Style(render.RolePageBrand)
	field := func(instr string) string {
		return `<w:r>` + runProps(st) + `<w:fldChar w:fldCharType="begin"/></w:r>` +
			`<w:r>` + runProps(st) + `<w:instrText xml:space="preserve"> ` + instr + ` </w:instrText></w:r>` +
			`<w:r>` + runProps(st) + `<w:fldChar w:fldCharType="separate"/></w:r>` +
			`<w:r>` + runProps(st) + `<w:t>1</w:t></w:r>` +
			`<w:r>` + runProps(st) + `<w:fldChar w:fldCharType="end"/></w:r>`
	}
	text := func(s string, ts render.TextStyle) string {
		return `<w:r>` + runProps(ts) + `<w:t xml:space="preserve">` + esc(s) + `</w:t></w:r>`
	}
	return xmlHeader + `<w:ftr xmlns:w="` + nsW + `" xmlns:r="` + nsR + `"><w:p><w:pPr>` +
		`<w:tabs><w:tab w:val="right" w:pos="` + fmt.Sprint(textWidthTw) + `"/></w:tabs></w:pPr>` +
		text(brand, brandSt) + `<w:r><w:tab/></w:r>` +
		text("Page ", st) + field("PAGE") + text(" / ", st) + field("NUMPAGES") +
		`</w:p></w:ftr>`
}

// stylesXML declares the heading styles so the outline shows up in the
// navigation pane. Visual formatting is carried by direct run properties.
const stylesXML = xmlHeader + `<w:styles xmlns:w="` + nsW + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/>` +
	`<w:sz w:val="22"/><w:szCs w:val="22"/><w:lang w:val="fr-FR"/></w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="120" w:line="264" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/>` +
	`<w:qFormat/><w:pPr><w:keepNext/><w:outlineLvl w:val="0"/></w:pPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/>` +
	`<w:qFormat/><w:pPr><w:keepNext/><w:outlineLvl w:val="1"/></w:pPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/>` +
	`<w:qFormat/><w:pPr><w:keepNext/><w:outlineLvl w:val="2"/></w:pPr></w:style>` +
	`</w:styles>`
