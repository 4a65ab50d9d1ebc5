package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KaramelBytes/edaexport/internal/render"
	"github.com/KaramelBytes/edaexport/internal/render/docx"
	"github.com/KaramelBytes/edaexport/internal/render/pdf"
	"github.com/KaramelBytes/edaexport/internal/utils"
)

// Format is an output document format.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format in export order.
var Formats = []Format{FormatDOCX, FormatPDF}

// ParseFormat accepts "docx", "word", or "pdf", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "docx", "word":
		return FormatDOCX, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected docx or pdf)", s)
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string { return "." + string(f) }

var (
	// ErrRender means the document could not be built; retrying the same
	// request will fail the same way.
	ErrRender = errors.New("render document")
	// ErrWrite means the finished document could not be stored; another
	// destination may succeed.
	ErrWrite = errors.New("write document")
)

// ExportError reports a failed export. Err wraps ErrRender or ErrWrite.
type ExportError struct {
	Format Format
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s to %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Recoverable reports whether the caller can retry with another path.
func (e *ExportError) Recoverable() bool { return errors.Is(e.Err, ErrWrite) }

// Request is one export job.
type Request struct {
	Metrics    Metrics
	Stats      Stats
	OutputPath string
	// Content is the accumulated analysis log; nil means none was produced.
	Content *string
	// Now dates the report. Zero means time.Now().
	Now time.Time
}

// Exporter renders reports. It holds no per-request state and is safe for
// concurrent use.
type Exporter struct {
	log         *zap.Logger
	brand       Branding
	PageNumbers bool
	newID       func() string
}

// NewExporter returns an exporter that logs to logger (nil discards) and
// prints brand on its pages. Empty branding fields take their defaults.
func NewExporter(logger *zap.Logger, brand Branding) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		log:         logger,
		brand:       brand.withDefaults(),
		PageNumbers: true,
		newID:       uuid.NewString,
	}
}

// Word writes req as a DOCX document.
func (e *Exporter) Word(req Request) error { return e.Export(FormatDOCX, req) }

// PDF writes req as a PDF document.
func (e *Exporter) PDF(req Request) error { return e.Export(FormatPDF, req) }

// Export renders req in format f and writes it to req.OutputPath. The
// destination is either left untouched or replaced by a complete document.
func (e *Exporter) Export(f Format, req Request) error {
	log := e.log.With(zap.String("format", string(f)), zap.String("path", req.OutputPath))
	fail := func(kind error, err error) error {
		xerr := &ExportError{Format: f, Path: req.OutputPath, Err: fmt.Errorf("%w: %w", kind, err)}
		log.Error("export failed", zap.Error(err), zap.Bool("recoverable", xerr.Recoverable()))
		return xerr
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return fail(ErrWrite, errors.New("empty output path"))
	}
	if req.Stats != nil {
		log.Debug("stats record accepted", zap.Int("keys", len(req.Stats)))
	}

	plan := NewPlan(req.Metrics, req.Content, req.Now, e.brand)
	id := e.newID()
	log.Debug("layout planned",
		zap.String("report_id", id),
		zap.Int("sections", len(plan.Sections)),
		zap.Bool("analyses", plan.UseAnalyses),
		zap.String("grade", plan.Grade.Band.String()),
	)

	var buf bytes.Buffer
	if err := e.render(f, plan, plan.Meta(id), &buf); err != nil {
		return fail(ErrRender, err)
	}
	err := utils.AtomicWriteFile(req.OutputPath, func(w io.Writer) error {
		_, err := w.Write(buf.Bytes())
		return err
	})
	if err != nil {
		return fail(ErrWrite, err)
	}
	log.Info("report written",
		zap.String("report_id", id),
		zap.Int("bytes", buf.Len()),
	)
	return nil
}

// render builds the whole document in memory so nothing reaches the
// destination before construction succeeded.
func (e *Exporter) render(f Format, plan *Plan, meta render.Meta, w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("build %s: %v", f, r)
		}
	}()
	var b render.Builder
	switch f {
	case FormatDOCX:
		b = docx.New(meta, docx.Options{PageNumbers: e.PageNumbers, Brand: e.brand.Product})
	case FormatPDF:
		var deco *pdf.PageDecorator
		if e.PageNumbers {
			deco = pdf.NewPageDecorator(e.brand.Product)
		}
		b = pdf.New(meta, deco)
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
	plan.Render(b)
	return b.Save(w)
}
