package report

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// SectionMarker starts a new analysis section wherever it appears in a line.
const SectionMarker = "ANALYSE #"

// Section is one titled block of the accumulated analysis log.
type Section struct {
	// Number is the 1-based position of the section in the log.
	Number int    `json:"number"`
	Title  string `json:"title"`
	// Paragraphs groups content lines; a divider line in the log closes a group.
	Paragraphs [][]string `json:"paragraphs"`
}

// Lines returns every content line of the section in order.
func (s Section) Lines() []string {
	var out []string
	for _, p := range s.Paragraphs {
		out = append(out, p...)
	}
	return out
}

const (
	// dividerGlyphs open a pure separator line.
	dividerGlyphs = "═─━╔╗╚╝╠╣╦╩╬╒╓╕╖╘╙╛╜┌┐└┘├┤┬┴┼"
	// sideGlyphs frame a content line.
	sideGlyphs = "║│┃"
)

var (
	// markerNumber is the marker and the counter written right after it.
	markerNumber = regexp.MustCompile(regexp.QuoteMeta(SectionMarker) + `\d*`)
	// timestampSuffix matches " (à 10:32:07)" or " (at 10:32:07)" and anything after it.
	timestampSuffix = regexp.MustCompile(`\s*\((?:à|at)\s+\d.*$`)
)

// Segment splits accumulated analysis output into sections.
//
// Lines are classified in order: section marker, divider, framed content,
// plain content. Blank lines are skipped. Lines seen before the first marker
// belong to no section and are dropped, so input without markers yields no
// sections.
func Segment(content string) []Section {
	var (
		out  []Section
		cur  *Section
		para []string
	)
	closePara := func() {
		if cur != nil && len(para) > 0 {
			cur.Paragraphs = append(cur.Paragraphs, para)
		}
		para = nil
	}
	flush := func() {
		closePara()
		if cur != nil {
			out = append(out, *cur)
		}
		cur = nil
	}

	content = norm.NFC.String(content)
	count := 0
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			continue
		}
		switch {
		case strings.Contains(line, SectionMarker):
			count++
			flush()
			cur = &Section{Number: count, Title: sectionTitle(line)}
		case startsWithAny(line, dividerGlyphs), isRule(line):
			closePara()
		case startsWithAny(line, sideGlyphs):
			text := strings.TrimSpace(stripRunes(line, sideGlyphs))
			switch {
			case text == "":
			case isRule(text):
				closePara()
			case cur != nil:
				para = append(para, text)
			}
		default:
			if cur != nil {
				para = append(para, line)
			}
		}
	}
	flush()
	return out
}

// sectionTitle cleans a marker line down to its human-readable title.
func sectionTitle(line string) string {
	t := strings.Map(func(r rune) rune {
		if isBox(r) {
			return -1
		}
		return r
	}, line)
	t = markerNumber.ReplaceAllString(t, "")
	t = timestampSuffix.ReplaceAllString(t, "")
	return strings.TrimFunc(t, func(r rune) bool {
		return r == '=' || unicode.IsSpace(r)
	})
}

// isBox reports whether r is in the Unicode box-drawing block.
func isBox(r rune) bool {
	return r >= 0x2500 && r <= 0x257F
}

// isRule reports whether s is made only of box-drawing runes and spaces.
func isRule(s string) bool {
	seen := false
	for _, r := range s {
		switch {
		case isBox(r):
			seen = true
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return seen
}

func startsWithAny(s, glyphs string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && strings.ContainsRune(glyphs, r)
}

func stripRunes(s, glyphs string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(glyphs, r) {
			return -1
		}
		return r
	}, s)
}

// ShouldRenderAnalyses reports whether the detailed analyses view applies:
// content is present, the record declares at least one analysis, and at
// least one section was parsed. Otherwise the diagnostic view is used.
func ShouldRenderAnalyses(m Metrics, content *string, sections []Section) bool {
	return content != nil && strings.TrimSpace(*content) != "" && m.AnalysesCount > 0 && len(sections) > 0
}
