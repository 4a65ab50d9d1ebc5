package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/KaramelBytes/edaexport/internal/render/docx"
)

// runCmd executes the root command with args and returns its stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Reset sticky flag state between invocations
	for _, c := range []*pflag.FlagSet{exportCmd.Flags(), sectionsCmd.Flags(), rootCmd.PersistentFlags()} {
		c.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	cfg = nil
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const metricsYAML = `filename: ventes.csv
rows: 1500
columns: 8
numeric_vars: 5
categorical_vars: 2
boolean_vars: 1
quality_score: 82
missing_pct: 1.5
outliers_count: 4
constant_vars: 0
analyses_count: 2
`

func TestCLI_ExportAllFormats(t *testing.T) {
	home := isolateHome(t)
	metrics := filepath.Join(home, "metrics.yaml")
	writeFile(t, metrics, metricsYAML)
	content := filepath.Join(home, "log.txt")
	writeFile(t, content, "ANALYSE #1 Statistiques\nmoyenne = 41.2\nANALYSE #2 Corrélations\nr = 0.87\n")
	stats := filepath.Join(home, "stats.json")
	writeFile(t, stats, `{"mean": {"age": 41.2}}`)

	out, err := runCmd(t, "export", metrics, "--content", content, "--stats", stats, "-o", filepath.Join(home, "rapport"))
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}
	for _, ext := range []string{".docx", ".pdf"} {
		p := filepath.Join(home, "rapport"+ext)
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("missing %s: %v", p, err)
		}
		if !strings.Contains(out, "✓ Wrote") || !strings.Contains(out, p) {
			t.Fatalf("no confirmation for %s in output:\n%s", p, out)
		}
	}
	data, err := os.ReadFile(filepath.Join(home, "rapport.docx"))
	if err != nil {
		t.Fatalf("read docx: %v", err)
	}
	text, err := docx.PlainText(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "Statistiques") || !strings.Contains(text, "ANALYSES DÉTAILLÉES") {
		t.Fatalf("analyses missing from docx text:\n%s", text)
	}
}

func TestCLI_ExportSingleFormatDefaultName(t *testing.T) {
	home := isolateHome(t)
	metrics := filepath.Join(home, "metrics.json")
	writeFile(t, metrics, `{"filename": "ventes 2024.csv", "quality_score": 55}`)
	outDir := filepath.Join(home, "reports")
	if _, err := runCmd(t, "config", "set", "output_dir", outDir); err != nil {
		t.Fatalf("config set: %v", err)
	}

	if _, err := runCmd(t, "export", metrics, "--format", "pdf"); err != nil {
		t.Fatalf("export: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(outDir, "rapport_eda_ventes_2024_*.pdf"))
	if len(matches) != 1 {
		t.Fatalf("expected one pdf in %s, got %v", outDir, matches)
	}
}

func TestCLI_ExportWriteFailure(t *testing.T) {
	home := isolateHome(t)
	metrics := filepath.Join(home, "metrics.yaml")
	writeFile(t, metrics, metricsYAML)
	out, err := runCmd(t, "export", metrics, "--format", "docx", "-o", filepath.Join(home, "missing", "r.docx"))
	if err == nil {
		t.Fatalf("expected error writing into a missing directory")
	}
	if !strings.Contains(out, "⚠ Warning:") {
		t.Fatalf("expected recoverable warning, got:\n%s", out)
	}
}

func TestCLI_ExportRejectsBadFormat(t *testing.T) {
	home := isolateHome(t)
	metrics := filepath.Join(home, "metrics.yaml")
	writeFile(t, metrics, metricsYAML)
	if _, err := runCmd(t, "export", metrics, "--format", "odt"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestCLI_Grade(t *testing.T) {
	isolateHome(t)
	out, err := runCmd(t, "grade", "89.9")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if !strings.Contains(out, "BON") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := runCmd(t, "grade", "abc"); err == nil {
		t.Fatalf("expected error for non-numeric score")
	}
}

func TestCLI_Sections(t *testing.T) {
	home := isolateHome(t)
	p := filepath.Join(home, "log.txt")
	writeFile(t, p, "ANALYSE #1 Stats (à 10:00:00)\na\nb\nANALYSE #2 Corr\nc\n")

	out, err := runCmd(t, "sections", p)
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	if !strings.Contains(out, "1. Stats (2 lines") || !strings.Contains(out, "2. Corr (1 lines") {
		t.Fatalf("unexpected outline:\n%s", out)
	}

	out, err = runCmd(t, "sections", "--json", p)
	if err != nil {
		t.Fatalf("sections --json: %v", err)
	}
	if !strings.Contains(out, `"title": "Stats"`) {
		t.Fatalf("unexpected json:\n%s", out)
	}
}

func TestCLI_ConfigShowAndSet(t *testing.T) {
	home := isolateHome(t)
	if _, err := runCmd(t, "config", "set", "product", "Acme EDA"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".edaexport", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out, err := runCmd(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "product: Acme EDA") {
		t.Fatalf("unexpected config:\n%s", out)
	}
	if _, err := runCmd(t, "config", "set", "bogus", "x"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}
