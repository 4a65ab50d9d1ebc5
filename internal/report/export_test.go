package report_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KaramelBytes/edaexport/internal/render/docx"
	"github.com/KaramelBytes/edaexport/internal/report"
)

func pdfText(t *testing.T, path string) (string, int) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	plain, err := r.GetPlainText()
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = io.Copy(&buf, plain)
	require.NoError(t, err)
	return buf.String(), r.NumPage()
}

func docxText(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text, err := docx.PlainText(data)
	require.NoError(t, err)
	return text
}

func TestExportFallbackBothFormats(t *testing.T) {
	dir := t.TempDir()
	m := sample()
	m.QualityScore = 82
	exp := report.NewExporter(nil, report.DefaultBranding())

	wordPath := filepath.Join(dir, "r.docx")
	require.NoError(t, exp.Word(report.Request{Metrics: m, OutputPath: wordPath, Now: day}))
	text := docxText(t, wordPath)
	assert.Contains(t, text, "BON")
	assert.Contains(t, text, "DIAGNOSTIC DE QUALITÉ")
	assert.Contains(t, text, "1,234,567 lignes × 12 colonnes")
	assert.NotContains(t, text, "ANALYSES DÉTAILLÉES")

	pdfPath := filepath.Join(dir, "r.pdf")
	require.NoError(t, exp.PDF(report.Request{Metrics: m, OutputPath: pdfPath, Now: day}))
	ptext, pages := pdfText(t, pdfPath)
	assert.Equal(t, 4, pages)
	assert.Contains(t, ptext, "BON")
	assert.Contains(t, ptext, "DIAGNOSTIC")
}

func TestExportAnalysesBothFormats(t *testing.T) {
	dir := t.TempDir()
	content := "ANALYSE #1 Statistiques\nmoyenne = 41.2\nANALYSE #2 Corrélations (à 10:32:07)\nr = 0.87\n"
	req := report.Request{Metrics: sample(), Content: &content, Now: day}
	exp := report.NewExporter(nil, report.Branding{})

	req.OutputPath = filepath.Join(dir, "r.docx")
	require.NoError(t, exp.Export(report.FormatDOCX, req))
	text := docxText(t, req.OutputPath)
	first := strings.Index(text, "Statistiques")
	second := strings.Index(text, "Corrélations")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
	assert.Contains(t, text, "moyenne = 41.2")
	assert.NotContains(t, text, "10:32:07")
	assert.NotContains(t, text, "DIAGNOSTIC DE QUALITÉ")

	req.OutputPath = filepath.Join(dir, "r.pdf")
	require.NoError(t, exp.Export(report.FormatPDF, req))
	ptext, pages := pdfText(t, req.OutputPath)
	assert.Equal(t, 4, pages)
	assert.Contains(t, ptext, "Statistiques")
	assert.Contains(t, ptext, "r = 0.87")
	assert.Less(t, strings.Index(ptext, "Statistiques"), strings.Index(ptext, "r = 0.87"))
}

func TestExportTimestampedLogBothFormats(t *testing.T) {
	dir := t.TempDir()
	content := "=== ANALYSE #1 Résumé ===\nligne A\nligne B\n=== ANALYSE #2 Corrélations (à 10:00:00) ===\nligne C"
	req := report.Request{Metrics: sample(), Content: &content, Now: day}
	exp := report.NewExporter(nil, report.Branding{})

	req.OutputPath = filepath.Join(dir, "r.docx")
	require.NoError(t, exp.Word(req))
	text := docxText(t, req.OutputPath)
	last := -1
	for _, s := range []string{"Résumé", "ligne A", "ligne B", "Corrélations", "ligne C"} {
		i := strings.Index(text, s)
		require.NotEqual(t, -1, i, "missing %q", s)
		require.Greater(t, i, last, "%q out of order", s)
		last = i
	}
	assert.NotContains(t, text, "10:00:00")

	req.OutputPath = filepath.Join(dir, "r.pdf")
	require.NoError(t, exp.PDF(req))
	ptext, _ := pdfText(t, req.OutputPath)
	a, c := strings.Index(ptext, "ligne A"), strings.Index(ptext, "ligne C")
	require.NotEqual(t, -1, a)
	require.NotEqual(t, -1, c)
	assert.Less(t, a, c)
	assert.NotContains(t, ptext, "10:00:00")
}

func TestExportReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.docx")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	exp := report.NewExporter(nil, report.Branding{})
	require.NoError(t, exp.Word(report.Request{Metrics: sample(), OutputPath: path, Now: day}))
	assert.Contains(t, docxText(t, path), "SYNTHÈSE EXÉCUTIVE")
}

func TestExportWriteFailureIsRecoverable(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	exp := report.NewExporter(zap.New(core), report.Branding{})

	for _, f := range report.Formats {
		path := filepath.Join(t.TempDir(), "missing", "dir", "r"+f.Ext())
		err := exp.Export(f, report.Request{Metrics: sample(), OutputPath: path, Now: day})
		require.Error(t, err)
		assert.True(t, errors.Is(err, report.ErrWrite), "format %s: %v", f, err)
		assert.False(t, errors.Is(err, report.ErrRender))

		var xerr *report.ExportError
		require.True(t, errors.As(err, &xerr))
		assert.True(t, xerr.Recoverable())
		assert.Equal(t, f, xerr.Format)
		assert.Equal(t, path, xerr.Path)

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	}
	assert.Equal(t, 2, logs.FilterMessage("export failed").Len())
}

func TestExportEmptyPath(t *testing.T) {
	err := report.NewExporter(nil, report.Branding{}).PDF(report.Request{Metrics: sample()})
	require.ErrorIs(t, err, report.ErrWrite)
}

func TestExportUnknownFormatIsRenderError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.odt")
	err := report.NewExporter(nil, report.Branding{}).Export(report.Format("odt"), report.Request{Metrics: sample(), OutputPath: path})
	require.ErrorIs(t, err, report.ErrRender)
	var xerr *report.ExportError
	require.ErrorAs(t, err, &xerr)
	assert.False(t, xerr.Recoverable())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportLogsSuccess(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	exp := report.NewExporter(zap.New(core), report.Branding{})
	req := report.Request{
		Metrics:    sample(),
		Stats:      report.Stats{"mean": 1.0, "std": 2.0},
		OutputPath: filepath.Join(t.TempDir(), "r.pdf"),
		Now:        day,
	}
	require.NoError(t, exp.PDF(req))

	stats := logs.FilterMessage("stats record accepted").All()
	require.Len(t, stats, 1)
	assert.EqualValues(t, 2, stats[0].ContextMap()["keys"])

	written := logs.FilterMessage("report written").All()
	require.Len(t, written, 1)
	assert.NotEmpty(t, written[0].ContextMap()["report_id"])
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]report.Format{"docx": report.FormatDOCX, "Word": report.FormatDOCX, " PDF ": report.FormatPDF} {
		got, err := report.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := report.ParseFormat("odt")
	assert.Error(t, err)
}
