package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoDocument is returned when the archive has no word/document.xml part.
var ErrNoDocument = errors.New("document.xml not found in DOCX")

// PlainText returns the text of word/document.xml, one line per paragraph.
// Table cells are separated by " | ".
func PlainText(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		docXML, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		break
	}
	if len(docXML) == 0 {
		return "", ErrNoDocument
	}

	dec := xml.NewDecoder(bytes.NewReader(docXML))
	var out, line strings.Builder
	inText := false
	tblDepth, cell := 0, 0
	flush := func() {
		out.WriteString(line.String())
		out.WriteString("\n")
		line.Reset()
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br":
				if !isPageBreak(t) {
					line.WriteString("\n")
				}
			case "tbl":
				tblDepth++
			case "tr":
				cell = 0
			case "tc":
				if cell > 0 {
					line.WriteString(" | ")
				}
				cell++
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "tbl":
				tblDepth--
			case "tr":
				flush()
			case "p":
				if tblDepth == 0 && line.Len() > 0 {
					flush()
				}
			}
		case xml.CharData:
			if inText {
				line.Write(t)
			}
		}
	}
	return strings.TrimRight(out.String(), "\n"), nil
}

func isPageBreak(e xml.StartElement) bool {
	for _, a := range e.Attr {
		if a.Name.Local == "type" && a.Value == "page" {
			return true
		}
	}
	return false
}
