package report_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/KaramelBytes/edaexport/internal/report"
)

func TestSegmentNoMarker(t *testing.T) {
	got := report.Segment("just some text\nno sections here\n")
	if len(got) != 0 {
		t.Fatalf("expected no sections, got %+v", got)
	}
	if got := report.Segment(""); len(got) != 0 {
		t.Fatalf("expected no sections for empty input, got %+v", got)
	}
}

func TestSegmentTwoSections(t *testing.T) {
	content := "ANALYSE #1 Stats\nline a\nline b\nANALYSE #2 Corr\nline c\n"
	want := []report.Section{
		{Number: 1, Title: "Stats", Paragraphs: [][]string{{"line a", "line b"}}},
		{Number: 2, Title: "Corr", Paragraphs: [][]string{{"line c"}}},
	}
	if diff := cmp.Diff(want, report.Segment(content)); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentStripsTimestampAndCounter(t *testing.T) {
	got := report.Segment("ANALYSE #3 Distribution (à 10:32:07)\nx\n")
	if len(got) != 1 {
		t.Fatalf("expected one section, got %d", len(got))
	}
	if got[0].Title != "Distribution" {
		t.Fatalf("title = %q, want %q", got[0].Title, "Distribution")
	}
	if strings.Contains(got[0].Title, "10:32") || strings.Contains(got[0].Title, "3") {
		t.Fatalf("title kept timestamp or counter: %q", got[0].Title)
	}
}

func TestSegmentKeepsDigitsInTitle(t *testing.T) {
	got := report.Segment("ANALYSE #1 Top 10 variables\nx\n")
	if len(got) != 1 || got[0].Title != "Top 10 variables" {
		t.Fatalf("unexpected sections: %+v", got)
	}
}

func TestSegmentSkipsBlankLines(t *testing.T) {
	with := report.Segment("ANALYSE #1 A\n\nfoo\n\n\nbar\n   \n")
	without := report.Segment("ANALYSE #1 A\nfoo\nbar\n")
	if diff := cmp.Diff(without, with); diff != "" {
		t.Fatalf("blank lines changed output (-want +got):\n%s", diff)
	}
}

func TestSegmentFramedLog(t *testing.T) {
	content := strings.Join([]string{
		"preamble dropped",
		"╔══════════════════════════╗",
		"║ ANALYSE #1 Résumé (à 09:00:00) ║",
		"╚══════════════════════════╝",
		"║ Lignes : 1,000",
		"│ Colonnes : 5 │",
		"────────────────",
		"Suite du texte",
		"║   ║",
		"=== ANALYSE #2 Corrélations ===",
		"r = 0.87",
	}, "\r\n")
	want := []report.Section{
		{Number: 1, Title: "Résumé", Paragraphs: [][]string{
			{"Lignes : 1,000", "Colonnes : 5"},
			{"Suite du texte"},
		}},
		{Number: 2, Title: "Corrélations", Paragraphs: [][]string{{"r = 0.87"}}},
	}
	if diff := cmp.Diff(want, report.Segment(content)); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentBoxOnlyLinesAreDividers(t *testing.T) {
	for _, rule := range []string{
		"║═══════║",
		"│ ─── │",
		"┃━━━┃",
		"╟───╢",
	} {
		got := report.Segment("ANALYSE #1 A\nx\n" + rule + "\ny")
		if len(got) != 1 {
			t.Fatalf("%s: expected one section, got %+v", rule, got)
		}
		if diff := cmp.Diff([][]string{{"x"}, {"y"}}, got[0].Paragraphs); diff != "" {
			t.Fatalf("%s: paragraphs mismatch (-want +got):\n%s", rule, diff)
		}
	}
}

func TestSegmentTitleCleanup(t *testing.T) {
	cases := []struct{ line, want string }{
		{"ANALYSE # 2020 ventes", "2020 ventes"},
		{"ANALYSE #12 2020 ventes", "2020 ventes"},
		{"ANALYSE #1 Analyse C#", "Analyse C#"},
		{"ANALYSE #4 Top-10 * ventes :", "Top-10 * ventes :"},
		{"== ANALYSE #5 Ratio_x ==", "Ratio_x"},
		{"┃ ANALYSE #6 Tendance (at 8:01:02) ┃", "Tendance"},
	}
	for _, c := range cases {
		got := report.Segment(c.line + "\nx\n")
		if len(got) != 1 || got[0].Title != c.want {
			t.Fatalf("%q: got %+v, want title %q", c.line, got, c.want)
		}
	}
}

func TestSegmentTimestampedLog(t *testing.T) {
	content := "=== ANALYSE #1 Résumé ===\nligne A\nligne B\n=== ANALYSE #2 Corrélations (à 10:00:00) ===\nligne C"
	want := []report.Section{
		{Number: 1, Title: "Résumé", Paragraphs: [][]string{{"ligne A", "ligne B"}}},
		{Number: 2, Title: "Corrélations", Paragraphs: [][]string{{"ligne C"}}},
	}
	got := report.Segment(content)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
	if len(got[0].Lines()) != 2 || len(got[1].Lines()) != 1 {
		t.Fatalf("unexpected line counts: %+v", got)
	}
}

func TestSegmentEmptyTitleAndEmptyBody(t *testing.T) {
	got := report.Segment("ANALYSE #1\nANALYSE #2 B\n")
	want := []report.Section{
		{Number: 1, Title: ""},
		{Number: 2, Title: "B"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentNormalizesNFC(t *testing.T) {
	// Decomposed input, precomposed title.
	got := report.Segment("ANALYSE #1 Re\u0301sume\u0301\n")
	if len(got) != 1 || got[0].Title != "R\u00e9sum\u00e9" {
		t.Fatalf("unexpected title: %+v", got)
	}
}

func TestSectionLines(t *testing.T) {
	s := report.Section{Paragraphs: [][]string{{"a", "b"}, {"c"}}}
	if diff := cmp.Diff([]string{"a", "b", "c"}, s.Lines()); diff != "" {
		t.Fatalf("Lines mismatch:\n%s", diff)
	}
}

func TestShouldRenderAnalyses(t *testing.T) {
	content := "ANALYSE #1 A\nx\n"
	blank := "  \n"
	secs := report.Segment(content)
	withCount := report.Metrics{AnalysesCount: 1}

	cases := []struct {
		name    string
		m       report.Metrics
		content *string
		secs    []report.Section
		want    bool
	}{
		{"all present", withCount, &content, secs, true},
		{"nil content", withCount, nil, secs, false},
		{"blank content", withCount, &blank, nil, false},
		{"zero count", report.Metrics{}, &content, secs, false},
		{"no sections", withCount, &content, nil, false},
	}
	for _, c := range cases {
		if got := report.ShouldRenderAnalyses(c.m, c.content, c.secs); got != c.want {
			t.Fatalf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}
